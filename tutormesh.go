// Package tutormesh provides a high-level façade over the session engine and
// capability abstractions (content generation, knowledge catalog, profile
// persistence, speech I/O) enabling rapid construction of tutoring
// applications. Most applications interact with this package by:
//  1. Creating a TutorMesh via New() (optionally overriding default in-memory services)
//  2. Registering or loading learner profiles
//  3. Running tutoring sessions (StartSession, Ask, GenerateQuiz, EndSession)
//
// The façade delegates orchestration to engine.Engine while keeping setup and
// usage ergonomics concise. All defaults are safe for local development and
// testing; production deployments typically supply the SQLite stores, a real
// generation provider and a structured logger.
package tutormesh

import (
	"context"

	"github.com/hupe1980/tutormesh/core"
	"github.com/hupe1980/tutormesh/engine"
	"github.com/hupe1980/tutormesh/generator"
	"github.com/hupe1980/tutormesh/knowledge"
	"github.com/hupe1980/tutormesh/logging"
	"github.com/hupe1980/tutormesh/profile"
	"github.com/hupe1980/tutormesh/speech"
)

// Options configure the TutorMesh instance.
type Options struct {
	// Model drives content generation (defaults to a mock model).
	Model generator.Model

	// GeneratorOptions tune the adapter wrapped around Model (fallback
	// templates, excerpt bounds, logger).
	GeneratorOptions []func(o *generator.Options)

	// Stores and capabilities (default to in-memory / no-op implementations
	// if not provided)
	KnowledgeBase core.KnowledgeBase
	ProfileStore  core.ProfileStore
	Speaker       core.Speaker
	Listener      core.Listener

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// TutorMesh is the high-level façade aggregating the underlying engine and services.
type TutorMesh struct {
	opts      Options
	engine    *engine.Engine
	knowledge core.KnowledgeBase
}

// New creates a new TutorMesh instance with optional overrides, loading the
// stored profiles into the live table. Any unset service falls back to an
// in-memory default.
func New(ctx context.Context, optFns ...func(o *Options)) (*TutorMesh, error) {
	opts := Options{
		Model:         generator.NewMockModel("mock", "mock"),
		KnowledgeBase: knowledge.NewInMemory(),
		ProfileStore:  profile.NewInMemoryStore(),
		Speaker:       speech.NoOpSpeaker{},
		Listener:      speech.NoOpListener{},
		Logger:        logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	genOpts := append([]func(o *generator.Options){
		func(o *generator.Options) { o.Logger = opts.Logger },
	}, opts.GeneratorOptions...)
	adapter := generator.NewAdapter(opts.Model, genOpts...)

	eng := engine.New(func(o *engine.Options) {
		o.Generator = adapter
		o.KnowledgeBase = opts.KnowledgeBase
		o.ProfileStore = opts.ProfileStore
		o.Speaker = opts.Speaker
		o.Listener = opts.Listener
		o.Logger = opts.Logger
	})
	if err := eng.LoadProfiles(ctx); err != nil {
		return nil, err
	}

	return &TutorMesh{opts: opts, engine: eng, knowledge: opts.KnowledgeBase}, nil
}

// Engine exposes the underlying session engine for advanced use.
func (t *TutorMesh) Engine() *engine.Engine { return t.engine }

// Register creates and persists a new learner profile.
func (t *TutorMesh) Register(ctx context.Context, name, learningStyle, proficiencyLevel string, preferredSubjects []string) (*core.Profile, error) {
	return t.engine.Register(ctx, name, learningStyle, proficiencyLevel, preferredSubjects)
}

// Guest creates an ephemeral, never-persisted profile.
func (t *TutorMesh) Guest(name string) *core.Profile { return t.engine.Guest(name) }

// Lookup returns the profile for a user id.
func (t *TutorMesh) Lookup(userID string) (*core.Profile, error) { return t.engine.Lookup(userID) }

// UpdateSettings applies preference changes and persists the profile.
func (t *TutorMesh) UpdateSettings(ctx context.Context, userID string, s engine.Settings) error {
	return t.engine.UpdateSettings(ctx, userID, s)
}

// StartSession opens a tutoring session for a user and subject.
func (t *TutorMesh) StartSession(ctx context.Context, userID, subject string) (*core.Session, error) {
	return t.engine.StartSession(ctx, userID, subject)
}

// Ask answers a learner query within an open session.
func (t *TutorMesh) Ask(ctx context.Context, sessionID, query string) (string, []string, error) {
	return t.engine.Ask(ctx, sessionID, query)
}

// AskAsync runs Ask off the calling goroutine, delivering the completed result.
func (t *TutorMesh) AskAsync(ctx context.Context, sessionID, query string) <-chan engine.AskResult {
	return t.engine.AskAsync(ctx, sessionID, query)
}

// GenerateQuiz produces a quiz question for an open session.
func (t *TutorMesh) GenerateQuiz(ctx context.Context, sessionID, difficulty string) (core.Quiz, error) {
	return t.engine.GenerateQuiz(ctx, sessionID, difficulty)
}

// GenerateWhiteboard produces whiteboard content for a concept.
func (t *TutorMesh) GenerateWhiteboard(ctx context.Context, concept string) core.WhiteboardContent {
	return t.engine.GenerateWhiteboard(ctx, concept)
}

// RecordWhiteboard logs a drawn element against an open session.
func (t *TutorMesh) RecordWhiteboard(sessionID string, el core.WhiteboardElement) error {
	return t.engine.RecordWhiteboard(sessionID, el)
}

// EndSession closes and summarizes a session, folding the record into the
// owning profile.
func (t *TutorMesh) EndSession(ctx context.Context, sessionID string) (core.SessionSummary, error) {
	return t.engine.EndSession(ctx, sessionID)
}

// IngestResource upserts a resource into the knowledge catalog.
func (t *TutorMesh) IngestResource(ctx context.Context, subject string, res core.Resource) bool {
	return t.knowledge.UpsertResource(ctx, subject, res)
}

// SubjectResources lists the catalog entries for a subject.
func (t *TutorMesh) SubjectResources(ctx context.Context, subject string) []core.Resource {
	return t.knowledge.SubjectResources(ctx, subject)
}

// VoiceLoop runs continuous voice tutoring for an open session until ctx is
// cancelled or the session closes.
func (t *TutorMesh) VoiceLoop(ctx context.Context, sessionID string) error {
	return t.engine.VoiceLoop(ctx, sessionID)
}
