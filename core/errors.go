package core

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownSession is returned when a session id does not reference an
	// open session. Closed sessions are removed from the live table, so a
	// second end call on the same id also yields this error.
	ErrUnknownSession = errors.New("unknown or closed session")

	// ErrUnknownProfile is returned when a user id references no loaded profile.
	ErrUnknownProfile = errors.New("unknown profile")

	// ErrProfileExists is returned when registration derives a user id that is
	// already taken.
	ErrProfileExists = errors.New("profile already exists")

	// ErrInvalidInput is returned when a required caller input is missing.
	ErrInvalidInput = errors.New("missing required input")
)

// GenerationError reports a failed or unparseable content-generation call.
// It never escapes the engine's public operations; the engine substitutes the
// deterministic fallback for the failed task and logs the cause.
type GenerationError struct {
	Task string
	Err  error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed for task %q: %v", e.Task, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *GenerationError) Unwrap() error { return e.Err }

// PersistenceError reports a storage read/write failure. Profile-save
// failures are surfaced to callers wrapped in this type; they are never
// silently dropped.
type PersistenceError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *PersistenceError) Unwrap() error { return e.Err }
