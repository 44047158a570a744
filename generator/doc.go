// Package generator defines the provider-agnostic abstractions and concrete
// helpers for producing educational content inside TutorMesh.
//
// Core goals:
//   - Unify all generation tasks (objectives, answers, follow-ups, quizzes,
//     whiteboard content, session summaries) behind a single Model interface
//   - Bound prompt size: at most three resource excerpts, each truncated, and
//     a short recent-message window supplied by the caller
//   - Parse the two supported response shapes: free text split into lines and
//     strict JSON decoded into the task-specific schema
//   - Keep every task's deterministic fallback configurable (Defaults) so a
//     tutoring session never dead-ends on a provider outage
//   - Facilitate lightweight mocking for tests (MockModel)
//
// Providers (e.g. OpenAI, Anthropic) implement the Model interface from this
// package so the engine remains decoupled from vendor SDKs. Task methods on
// Adapter return an explicit *core.GenerationError instead of panicking or
// hiding failures; the engine pattern-matches on it to select the fallback.
package generator
