package profile

import (
	"context"
	"sync"

	"github.com/hupe1980/tutormesh/core"
)

// InMemoryStore is a volatile ProfileStore keeping clones in a process local
// map. It is safe for concurrent access and best suited for tests.
type InMemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]*core.Profile
}

var _ core.ProfileStore = (*InMemoryStore)(nil)

// NewInMemoryStore constructs an empty in-memory profile store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{profiles: make(map[string]*core.Profile)}
}

// LoadAll returns clones of every stored profile.
func (s *InMemoryStore) LoadAll(_ context.Context) ([]*core.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profiles := make([]*core.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		profiles = append(profiles, p.Clone())
	}
	return profiles, nil
}

// Save stores a clone of the profile, replacing any prior record.
func (s *InMemoryStore) Save(_ context.Context, profile *core.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.UserID] = profile.Clone()
	return nil
}
