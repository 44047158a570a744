package core

import (
	"sync"
	"time"
)

// Message roles within a session transcript.
const (
	RoleLearner = "user"
	RoleTutor   = "assistant"
)

// Message is a single role-tagged entry in a session's transcript.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// WhiteboardElement is one drawn element recorded against an open session.
// The shape is presentation-defined; the core only logs it.
type WhiteboardElement map[string]any

// Session represents one bounded tutoring interaction for a subject, from
// open to close. It is safe for concurrent reads; writes are serialized by
// the owning engine.
//
// Contract:
//   - A session is open while EndTime is nil and closed (immutable) after
//   - Objectives are generated once at start and never change
//   - Messages is append-only; an exchange appends learner and tutor entries
//     together, never one without the other
//   - Reader methods return defensive copies
type Session struct {
	ID         string              `json:"session_id"`
	UserID     string              `json:"user_id"`
	Subject    string              `json:"subject"`
	StartTime  time.Time           `json:"start_time"`
	EndTime    *time.Time          `json:"end_time,omitempty"`
	Objectives []string            `json:"learning_objectives"`
	Messages   []Message           `json:"messages"`
	Whiteboard []WhiteboardElement `json:"whiteboard_data,omitempty"`
	mu         sync.RWMutex
}

// NewSession creates an open session for the given identity tuple. The
// session id must already be derived via SessionID.
func NewSession(id, userID, subject string, objectives []string) *Session {
	return &Session{
		ID:         id,
		UserID:     userID,
		Subject:    subject,
		StartTime:  time.Now().UTC(),
		Objectives: append([]string(nil), objectives...),
		Messages:   []Message{},
	}
}

// Open reports whether the session still accepts exchanges.
func (s *Session) Open() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.EndTime == nil
}

// Close stamps the end time. Closing an already closed session is a no-op.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.EndTime == nil {
		now := time.Now().UTC()
		s.EndTime = &now
	}
}

// AppendExchange atomically appends a learner query and the tutor answer.
func (s *Session) AppendExchange(query, answer string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Messages = append(s.Messages,
		Message{Role: RoleLearner, Content: query},
		Message{Role: RoleTutor, Content: answer},
	)
}

// RecentMessages returns a copy of the last n transcript entries.
func (s *Session) RecentMessages(n int) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	start := len(s.Messages) - n
	if start < 0 {
		start = 0
	}
	recent := make([]Message, len(s.Messages)-start)
	copy(recent, s.Messages[start:])
	return recent
}

// Transcript returns a copy of the full ordered message log.
func (s *Session) Transcript() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]Message, len(s.Messages))
	copy(all, s.Messages)
	return all
}

// MessageCount returns the current transcript length.
func (s *Session) MessageCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.Messages)
}

// RecordWhiteboard appends a drawn element to the session's whiteboard log.
func (s *Session) RecordWhiteboard(el WhiteboardElement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Whiteboard = append(s.Whiteboard, el)
}
