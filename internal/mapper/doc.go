// Package mapper owns the name-registry role.
//
// Ownership boundary:
// - the name table and the lock serializing access to it
// - the ?/!/@ command protocol
//
// The mapper never closes a client connection; sessions end when the peer
// disconnects.
package mapper
