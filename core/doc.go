// Package core provides the foundational domain types, interfaces and identity
// helpers used by TutorMesh. It defines the core abstractions for:
//
//   - Profiles (a learner's durable identity, preferences and history)
//   - Sessions (bounded tutoring interactions with an ordered message log)
//   - Resources (subject-indexed knowledge catalog entries)
//   - Generated content shapes (quizzes, whiteboard content, session summaries)
//   - Pluggable stores and capabilities (profile persistence, knowledge lookup,
//     speech synthesis and capture)
//
// The package intentionally keeps implementation concerns (persistence,
// generation providers, engine orchestration) out of scope, exposing small
// interfaces to enable custom backends and deterministic test doubles.
package core
