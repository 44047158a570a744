package core

import "context"

// ProfileStore persists learner profiles keyed by user id.
//
// Implementations MUST:
//   - Treat Save as a full-row idempotent upsert (no partial-field update)
//   - Tolerate sequential non-concurrent writers; the engine never issues
//     concurrent writes to the same profile
type ProfileStore interface {
	// LoadAll returns every stored profile. An empty store yields an empty
	// slice, not an error.
	LoadAll(ctx context.Context) ([]*Profile, error)

	// Save upserts the full profile record.
	Save(ctx context.Context, profile *Profile) error
}

// KnowledgeBase is the polymorphic capability over resource catalogs (local
// today, remote backends later).
//
// Contract:
//   - SubjectResources never fails: absence of data, and any underlying read
//     failure, is represented as an empty slice (failures are logged by the
//     implementation, not returned)
//   - UpsertResource creates the subject entry on first ingestion of an
//     unseen subject name and returns false (not an error) on storage failure
type KnowledgeBase interface {
	SubjectResources(ctx context.Context, subject string) []Resource
	UpsertResource(ctx context.Context, subject string, resource Resource) bool
}

// Speaker is a voice-synthesis capability. Speak blocks until playback
// completes; failures are logged and swallowed (best-effort).
type Speaker interface {
	Speak(ctx context.Context, text string)
}

// Listener is a speech-capture capability. Listen blocks until one utterance
// is captured and transcribed; it reports ok=false on transcription failure
// or timeout rather than returning an error.
type Listener interface {
	Listen(ctx context.Context) (text string, ok bool)
}
