package generator

import (
	"context"
	"fmt"
	"sync"

	"github.com/hupe1980/tutormesh/core"
)

// Task identifies a generation task kind. Each kind maps to one request shape
// and one response parse strategy (line-split text or strict JSON).
type Task string

const (
	// TaskObjectives generates 3-5 learning objectives at session start.
	TaskObjectives Task = "objectives"
	// TaskAnswer generates a tutoring answer for a learner query.
	TaskAnswer Task = "answer"
	// TaskFollowups generates up to three follow-up questions.
	TaskFollowups Task = "followups"
	// TaskQuiz generates a multiple-choice quiz question (JSON).
	TaskQuiz Task = "quiz"
	// TaskWhiteboard generates whiteboard content for a concept (JSON).
	TaskWhiteboard Task = "whiteboard"
	// TaskSummary generates a session summary over the transcript (JSON).
	TaskSummary Task = "summary"
)

// Request captures the normalized model input produced by the adapter.
type Request struct {
	Task         Task           `json:"task"`
	Instructions string         `json:"instructions"` // System instructions for the model
	History      []core.Message `json:"history,omitempty"`
	Prompt       string         `json:"prompt"` // Final user turn
	Temperature  float64        `json:"temperature"`
	JSON         bool           `json:"json"` // Require a JSON object response
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Model is the minimal interface required by the adapter to drive generation.
// Complete blocks until the provider returns the full completion text.
type Model interface {
	Complete(ctx context.Context, req Request) (string, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests & examples. It
// records every request it receives for later inspection.
type MockModel struct {
	mu        sync.Mutex
	info      Info
	responses map[Task]string
	failures  map[Task]error
	failAll   error
	requests  []Request
}

// NewMockModel constructs a MockModel.
func NewMockModel(name, provider string) *MockModel {
	return &MockModel{
		info:      Info{Name: name, Provider: provider},
		responses: make(map[Task]string),
		failures:  make(map[Task]error),
	}
}

// AddResponse registers a deterministic canned completion for a task kind.
func (m *MockModel) AddResponse(task Task, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[task] = response
}

// FailTask makes a single task kind return the given error.
func (m *MockModel) FailTask(task Task, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[task] = err
}

// FailAll makes every completion return the given error.
func (m *MockModel) FailAll(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failAll = err
}

// Requests returns a copy of all requests seen so far, in order.
func (m *MockModel) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	reqs := make([]Request, len(m.requests))
	copy(reqs, m.requests)
	return reqs
}

// Complete implements Model.
func (m *MockModel) Complete(_ context.Context, req Request) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	if m.failAll != nil {
		return "", m.failAll
	}
	if err, ok := m.failures[req.Task]; ok {
		return "", err
	}
	if resp, ok := m.responses[req.Task]; ok {
		return resp, nil
	}
	return fmt.Sprintf("Mock response to: %s", req.Prompt), nil
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }
