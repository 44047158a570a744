package engine

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hupe1980/tutormesh/core"
	"github.com/hupe1980/tutormesh/generator"
	"github.com/hupe1980/tutormesh/knowledge"
	"github.com/hupe1980/tutormesh/logging"
	"github.com/hupe1980/tutormesh/profile"
	"github.com/hupe1980/tutormesh/speech"
)

// Options holds dependency + configuration overrides passed to New().
type Options struct {
	// Generator produces educational content. Defaults to an adapter around
	// a mock model, suitable for development and tests only.
	Generator *generator.Adapter

	// KnowledgeBase supplies subject resources for prompt context.
	// Defaults to an in-memory catalog.
	KnowledgeBase core.KnowledgeBase

	// ProfileStore persists learner profiles. Defaults to in-memory storage.
	ProfileStore core.ProfileStore

	// Speaker voices tutor answers. Defaults to a no-op.
	Speaker core.Speaker

	// Listener captures learner utterances. Defaults to a no-op.
	Listener core.Listener

	// HistoryWindow bounds how many recent transcript entries feed a prompt.
	HistoryWindow int

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// liveSession pairs an open session with its ask lock. At most one ask may be
// in flight per session; the lock serializes the whole round-trip so context
// windows never interleave and appends never duplicate.
type liveSession struct {
	*core.Session
	askMu sync.Mutex
}

// Engine coordinates tutoring sessions, profiles and generation capabilities.
//
// Concurrency model:
//   - A single Engine instance owns the live session table and the loaded
//     profile table; both are guarded for concurrent access
//   - Asks on the same session are serialized via a per-session lock; asks on
//     different sessions run independently
//   - Blocking work (generation, audio) happens on the calling goroutine;
//     AskAsync dispatches it off the caller and delivers the completed result
//     through a channel, never partial state
type Engine struct {
	gen       *generator.Adapter
	knowledge core.KnowledgeBase
	store     core.ProfileStore
	speaker   core.Speaker
	listener  core.Listener
	logger    logging.Logger

	historyWindow int

	sessions   map[string]*liveSession
	sessionsMu sync.RWMutex

	profiles   map[string]*core.Profile
	profilesMu sync.RWMutex
}

// New constructs an Engine with optional overrides.
func New(optFns ...func(o *Options)) *Engine {
	opts := Options{
		Generator:     generator.NewAdapter(generator.NewMockModel("mock", "mock")),
		KnowledgeBase: knowledge.NewInMemory(),
		ProfileStore:  profile.NewInMemoryStore(),
		Speaker:       speech.NoOpSpeaker{},
		Listener:      speech.NoOpListener{},
		HistoryWindow: 5,
		Logger:        logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Engine{
		gen:           opts.Generator,
		knowledge:     opts.KnowledgeBase,
		store:         opts.ProfileStore,
		speaker:       opts.Speaker,
		listener:      opts.Listener,
		logger:        opts.Logger,
		historyWindow: opts.HistoryWindow,
		sessions:      make(map[string]*liveSession),
		profiles:      make(map[string]*core.Profile),
	}
}

// LoadProfiles populates the live profile table from the store. Call once at
// startup before serving operations.
func (e *Engine) LoadProfiles(ctx context.Context) error {
	profiles, err := e.store.LoadAll(ctx)
	if err != nil {
		return &core.PersistenceError{Op: "load profiles", Err: err}
	}
	e.profilesMu.Lock()
	defer e.profilesMu.Unlock()
	for _, p := range profiles {
		e.profiles[p.UserID] = p
	}
	e.logger.Info("Profiles loaded", "count", len(profiles))
	return nil
}

// Register creates and persists a new profile. The user id derives
// deterministically from the name, so registering the same name twice fails
// with core.ErrProfileExists.
func (e *Engine) Register(ctx context.Context, name, learningStyle, proficiencyLevel string, preferredSubjects []string) (*core.Profile, error) {
	if strings.TrimSpace(name) == "" {
		return nil, core.ErrInvalidInput
	}
	userID := core.UserID(name)

	e.profilesMu.Lock()
	if _, exists := e.profiles[userID]; exists {
		e.profilesMu.Unlock()
		return nil, core.ErrProfileExists
	}
	p := &core.Profile{
		UserID:            userID,
		Name:              name,
		LearningStyle:     learningStyle,
		ProficiencyLevel:  proficiencyLevel,
		PreferredSubjects: append([]string{}, preferredSubjects...),
		SessionHistory:    []core.HistoryRecord{},
	}
	e.profiles[userID] = p
	e.profilesMu.Unlock()

	if err := e.store.Save(ctx, p); err != nil {
		e.logger.Error("Profile save failed", "user_id", userID, "error", err)
		return p.Clone(), &core.PersistenceError{Op: "save profile", Err: err}
	}
	e.logger.Info("Profile registered", "user_id", userID)
	return p.Clone(), nil
}

// Guest creates an ephemeral profile that lives only in process memory and is
// never persisted. Sessions run against it normally; its history vanishes
// with the process.
func (e *Engine) Guest(name string) *core.Profile {
	if name == "" {
		name = "Guest User"
	}
	p := &core.Profile{
		UserID:            "guest_" + uuid.NewString()[:8],
		Name:              name,
		LearningStyle:     "unknown",
		ProficiencyLevel:  "unknown",
		PreferredSubjects: []string{},
		SessionHistory:    []core.HistoryRecord{},
		Ephemeral:         true,
	}
	e.profilesMu.Lock()
	e.profiles[p.UserID] = p
	e.profilesMu.Unlock()
	e.logger.Info("Guest profile created", "user_id", p.UserID)
	return p.Clone()
}

// Lookup returns a copy of the profile for a user id.
func (e *Engine) Lookup(userID string) (*core.Profile, error) {
	e.profilesMu.RLock()
	defer e.profilesMu.RUnlock()
	p, ok := e.profiles[userID]
	if !ok {
		return nil, core.ErrUnknownProfile
	}
	return p.Clone(), nil
}

// Settings carries the mutable profile preferences for UpdateSettings.
// Zero-valued fields are left unchanged; the resulting profile is persisted
// as a full overwrite.
type Settings struct {
	LearningStyle     string
	ProficiencyLevel  string
	PreferredSubjects []string
	AvatarPath        string
}

// UpdateSettings applies preference changes and persists the full profile.
func (e *Engine) UpdateSettings(ctx context.Context, userID string, s Settings) error {
	e.profilesMu.Lock()
	p, ok := e.profiles[userID]
	if !ok {
		e.profilesMu.Unlock()
		return core.ErrUnknownProfile
	}
	if s.LearningStyle != "" {
		p.LearningStyle = s.LearningStyle
	}
	if s.ProficiencyLevel != "" {
		p.ProficiencyLevel = s.ProficiencyLevel
	}
	if s.PreferredSubjects != nil {
		p.PreferredSubjects = append([]string{}, s.PreferredSubjects...)
	}
	if s.AvatarPath != "" {
		p.AvatarPath = s.AvatarPath
	}
	snapshot := p.Clone()
	e.profilesMu.Unlock()

	if snapshot.Ephemeral {
		return nil
	}
	if err := e.store.Save(ctx, snapshot); err != nil {
		e.logger.Error("Settings save failed", "user_id", userID, "error", err)
		return &core.PersistenceError{Op: "save profile", Err: err}
	}
	return nil
}

// StartSession opens a new tutoring session for a known (or guest) profile,
// seeding it with freshly generated learning objectives. The session id is a
// collision-resistant hash over user, subject and the creation instant.
func (e *Engine) StartSession(ctx context.Context, userID, subject string) (*core.Session, error) {
	e.profilesMu.RLock()
	_, known := e.profiles[userID]
	e.profilesMu.RUnlock()
	if !known {
		return nil, core.ErrUnknownProfile
	}

	sessionID := core.SessionID(userID, subject, time.Now().UTC())

	objectives, err := e.gen.Objectives(ctx, subject)
	if err != nil {
		e.logger.Warn("Objective generation failed, using fallback", "session_id", sessionID, "error", err)
		objectives = e.gen.Defaults().Objectives(subject)
	}

	sess := core.NewSession(sessionID, userID, subject, objectives)
	e.sessionsMu.Lock()
	e.sessions[sessionID] = &liveSession{Session: sess}
	e.sessionsMu.Unlock()

	e.logger.Info("Session started", "session_id", sessionID, "user_id", userID, "subject", subject)
	return sess, nil
}

// Ask answers a learner query within an open session. On success the learner
// query and tutor answer are appended to the transcript atomically and up to
// three follow-up questions are returned (best-effort; their failure never
// fails the ask). On generation failure the configured fallback answer is
// returned with no follow-ups and nothing is appended.
func (e *Engine) Ask(ctx context.Context, sessionID, query string) (string, []string, error) {
	ls, err := e.liveSession(sessionID)
	if err != nil {
		return "", nil, err
	}

	ls.askMu.Lock()
	defer ls.askMu.Unlock()

	// The session may have been closed while waiting on the lock.
	if !ls.Open() {
		return "", nil, core.ErrUnknownSession
	}

	answer, err := e.gen.Answer(ctx, e.promptContext(ctx, ls), query)
	if err != nil {
		e.logger.Warn("Answer generation failed, returning fallback", "session_id", sessionID, "error", err)
		return e.gen.Defaults().Answer(), e.gen.Defaults().Followups(), nil
	}
	ls.AppendExchange(query, answer)

	followups, err := e.gen.Followups(ctx, ls.Subject, answer)
	if err != nil {
		e.logger.Warn("Follow-up generation failed", "session_id", sessionID, "error", err)
		followups = e.gen.Defaults().Followups()
	}
	return answer, followups, nil
}

// AskResult is the completed outcome of an asynchronous ask.
type AskResult struct {
	Answer    string
	Followups []string
	Err       error
}

// AskAsync runs Ask off the calling goroutine and delivers the completed
// result through the returned channel. The channel is buffered and closed
// after the single result, so the caller's foreground loop only ever observes
// finished state.
func (e *Engine) AskAsync(ctx context.Context, sessionID, query string) <-chan AskResult {
	ch := make(chan AskResult, 1)
	go func() {
		defer close(ch)
		answer, followups, err := e.Ask(ctx, sessionID, query)
		ch <- AskResult{Answer: answer, Followups: followups, Err: err}
	}()
	return ch
}

// GenerateQuiz produces a multiple-choice question for the session subject.
// On generation failure a deterministic placeholder quiz is returned; the
// only hard error is an unknown session.
func (e *Engine) GenerateQuiz(ctx context.Context, sessionID, difficulty string) (core.Quiz, error) {
	ls, err := e.liveSession(sessionID)
	if err != nil {
		return core.Quiz{}, err
	}
	if difficulty == "" {
		difficulty = "medium"
	}

	quiz, err := e.gen.Quiz(ctx, generator.PromptContext{
		Subject:    ls.Subject,
		Objectives: ls.Objectives,
	}, difficulty)
	if err != nil {
		e.logger.Warn("Quiz generation failed, returning fallback", "session_id", sessionID, "error", err)
		return e.gen.Defaults().Quiz(ls.Subject), nil
	}
	return quiz, nil
}

// GenerateWhiteboard produces whiteboard content for a concept. It is
// stateless with respect to sessions and never fails: generation failure
// yields the deterministic fallback payload.
func (e *Engine) GenerateWhiteboard(ctx context.Context, concept string) core.WhiteboardContent {
	wb, err := e.gen.Whiteboard(ctx, concept)
	if err != nil {
		e.logger.Warn("Whiteboard generation failed, returning fallback", "concept", concept, "error", err)
		return e.gen.Defaults().Whiteboard(concept)
	}
	return wb
}

// RecordWhiteboard logs a drawn element against an open session.
func (e *Engine) RecordWhiteboard(sessionID string, el core.WhiteboardElement) error {
	ls, err := e.liveSession(sessionID)
	if err != nil {
		return err
	}
	ls.RecordWhiteboard(el)
	return nil
}

// EndSession closes a session: it removes the session from the live table,
// stamps the end time, summarizes the full transcript (fallback on failure),
// folds a compact history record into the owning profile and persists it.
// The closed session is no longer addressable; only its summary survives.
//
// A save failure still returns the summary alongside a
// *core.PersistenceError so the caller can react.
func (e *Engine) EndSession(ctx context.Context, sessionID string) (core.SessionSummary, error) {
	e.sessionsMu.Lock()
	ls, ok := e.sessions[sessionID]
	if !ok {
		e.sessionsMu.Unlock()
		return core.SessionSummary{}, core.ErrUnknownSession
	}
	delete(e.sessions, sessionID)
	e.sessionsMu.Unlock()

	// Wait for any in-flight ask to finish before closing the transcript.
	ls.askMu.Lock()
	ls.Close()
	ls.askMu.Unlock()

	summary, err := e.gen.Summary(ctx, generator.PromptContext{
		Subject:    ls.Subject,
		Objectives: ls.Objectives,
	}, ls.Transcript())
	if err != nil {
		e.logger.Warn("Summary generation failed, using fallback", "session_id", sessionID, "error", err)
		summary = e.gen.Defaults().Summary(ls.Subject)
	}

	record := core.HistoryRecord{
		SessionID:         sessionID,
		Subject:           ls.Subject,
		StartTime:         ls.StartTime.Format(time.RFC3339),
		EndTime:           ls.EndTime.Format(time.RFC3339),
		Objectives:        ls.Objectives,
		TopicsCovered:     summary.TopicsCovered,
		PerformanceRating: summary.PerformanceRating,
	}

	e.profilesMu.Lock()
	p, known := e.profiles[ls.UserID]
	var snapshot *core.Profile
	if known {
		p.SessionHistory = append(p.SessionHistory, record)
		snapshot = p.Clone()
	}
	e.profilesMu.Unlock()

	e.logger.Info("Session ended", "session_id", sessionID, "user_id", ls.UserID, "messages", ls.MessageCount())

	if snapshot == nil || snapshot.Ephemeral {
		return summary, nil
	}
	if err := e.store.Save(ctx, snapshot); err != nil {
		e.logger.Error("Profile save failed on session end", "user_id", ls.UserID, "error", err)
		return summary, &core.PersistenceError{Op: "save profile", Err: err}
	}
	return summary, nil
}

// Speak voices text through the configured speaker (best-effort).
func (e *Engine) Speak(ctx context.Context, text string) {
	e.speaker.Speak(ctx, text)
}

// Listen captures and transcribes one utterance through the configured
// listener. ok is false on capture or transcription failure.
func (e *Engine) Listen(ctx context.Context) (string, bool) {
	return e.listener.Listen(ctx)
}

// VoiceLoop runs continuous voice tutoring for an open session: each captured
// utterance is asked and the answer is spoken back. The loop exits when ctx
// is cancelled (between utterances) or the session closes; re-enabling voice
// input means calling VoiceLoop again.
func (e *Engine) VoiceLoop(ctx context.Context, sessionID string) error {
	if _, err := e.liveSession(sessionID); err != nil {
		return err
	}
	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	loop := speech.NewLoop(e.listener, func(ctx context.Context, text string) {
		answer, _, err := e.Ask(ctx, sessionID, text)
		if err != nil {
			// Session closed under the loop; stop capturing.
			cancel()
			return
		}
		e.speaker.Speak(ctx, answer)
	}, func(o *speech.LoopOptions) { o.Logger = e.logger })
	loop.Run(loopCtx)
	return nil
}

// SessionCount reports the number of currently open sessions.
func (e *Engine) SessionCount() int {
	e.sessionsMu.RLock()
	defer e.sessionsMu.RUnlock()
	return len(e.sessions)
}

func (e *Engine) liveSession(sessionID string) (*liveSession, error) {
	e.sessionsMu.RLock()
	defer e.sessionsMu.RUnlock()
	ls, ok := e.sessions[sessionID]
	if !ok {
		return nil, core.ErrUnknownSession
	}
	return ls, nil
}

// promptContext assembles the bounded generation context for a session: the
// recent message window, up to three subject resources and the asking
// profile's learning style.
func (e *Engine) promptContext(ctx context.Context, ls *liveSession) generator.PromptContext {
	style := ""
	e.profilesMu.RLock()
	if p, ok := e.profiles[ls.UserID]; ok {
		style = p.LearningStyle
	}
	e.profilesMu.RUnlock()

	return generator.PromptContext{
		Subject:       ls.Subject,
		Objectives:    ls.Objectives,
		LearningStyle: style,
		Resources:     e.knowledge.SubjectResources(ctx, ls.Subject),
		History:       ls.RecentMessages(e.historyWindow),
	}
}
