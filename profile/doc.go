// Package profile houses concrete implementations of core.ProfileStore. The
// interface itself (and the Profile struct) live in the core package to
// centralize domain contracts.
//
// The SQLite store is the durable production backend; the in-memory store
// backs tests and guest-only demo setups.
package profile
