package core

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Identity derivation is deterministic hashing over canonical input tuples.
// No counter is involved, so identities remain unique across processes and
// restarts without shared mutable state.

// SessionID derives a collision-resistant session identity from the owning
// user, the subject and the creation instant. Nanosecond precision in the
// hashed tuple makes a repeat practically impossible without a counter.
func SessionID(userID, subject string, at time.Time) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s%s%s", userID, subject, at.Format(time.RFC3339Nano))))
	return hex.EncodeToString(sum[:])
}

// UserID derives a stable short user identity from the registration name.
func UserID(name string) string {
	sum := sha256.Sum256([]byte(name))
	return hex.EncodeToString(sum[:])[:8]
}

// ResourceID derives the catalog identity of a resource from its title.
// Re-ingesting the same title therefore lands on the same row (upsert).
func ResourceID(title string) string {
	sum := md5.Sum([]byte(title))
	return hex.EncodeToString(sum[:])
}

// SubjectID derives the catalog identity of a subject from its name.
func SubjectID(name string) string {
	sum := md5.Sum([]byte(name))
	return hex.EncodeToString(sum[:])
}
