// Package engine implements the session and knowledge orchestration core of
// TutorMesh. The Engine owns the live session table and the loaded profile
// table for the process lifetime, exposes the operations the presentation
// layer calls (start/end session, ask, quiz, whiteboard) plus profile
// registration and lookup, and coordinates the pluggable capabilities:
// content generation, knowledge lookup and speech I/O.
//
// Failure policy: only caller-contract violations (unknown session or profile
// ids) propagate as hard errors. Generation failures degrade to deterministic
// fallbacks selected from the generator's Defaults, so a tutoring session
// never dead-ends on a provider outage. Profile-save failures are surfaced as
// a *core.PersistenceError, never silently dropped.
package engine
