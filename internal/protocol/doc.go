// Package protocol owns the wire contract shared by the mapper, tower, and
// flight roles.
//
// Ownership boundary:
// - line validity rules and size bound
// - mapper command wire forms
// - line-oriented connection primitives
package protocol
