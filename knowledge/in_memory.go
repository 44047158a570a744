package knowledge

import (
	"context"
	"sort"
	"sync"

	"github.com/hupe1980/tutormesh/core"
)

// InMemoryKnowledgeBase is a volatile catalog storing resources in process
// local maps. It is safe for concurrent access and best suited for tests or
// ephemeral demos. Identity semantics match the SQLite implementation:
// resources are keyed by their title-derived id, so re-ingestion overwrites.
type InMemoryKnowledgeBase struct {
	mu       sync.RWMutex
	subjects map[string]map[string]core.Resource // subject name -> resource id -> resource
}

var _ core.KnowledgeBase = (*InMemoryKnowledgeBase)(nil)

// NewInMemory constructs an empty in-memory knowledge base.
func NewInMemory() *InMemoryKnowledgeBase {
	return &InMemoryKnowledgeBase{subjects: make(map[string]map[string]core.Resource)}
}

// SubjectResources returns the resources for a subject ordered by title, or
// an empty slice when the subject is unknown.
func (kb *InMemoryKnowledgeBase) SubjectResources(_ context.Context, subject string) []core.Resource {
	kb.mu.RLock()
	defer kb.mu.RUnlock()
	byID, ok := kb.subjects[subject]
	if !ok {
		return []core.Resource{}
	}
	resources := make([]core.Resource, 0, len(byID))
	for _, res := range byID {
		resources = append(resources, res)
	}
	sort.Slice(resources, func(i, j int) bool { return resources[i].Title < resources[j].Title })
	return resources
}

// UpsertResource ingests a resource under the given subject.
func (kb *InMemoryKnowledgeBase) UpsertResource(_ context.Context, subject string, resource core.Resource) bool {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	byID, ok := kb.subjects[subject]
	if !ok {
		byID = make(map[string]core.Resource)
		kb.subjects[subject] = byID
	}
	if resource.ContentType == "" {
		resource.ContentType = "text"
	}
	if resource.Difficulty == "" {
		resource.Difficulty = core.LevelIntermediate
	}
	byID[core.ResourceID(resource.Title)] = resource
	return true
}
