// Package session manages conversation session lifetime: per-identity
// serialization of turns, the inactivity timeout, and the lazy sweep of
// expired sessions across all identities.
package session
