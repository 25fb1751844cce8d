// Package tower owns the endpoint role.
//
// Ownership boundary:
// - the visit log and the lock serializing access to it
// - the identity/log command protocol
// - one-shot startup registration with the mapper
package tower
