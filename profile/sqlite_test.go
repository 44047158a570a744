package profile

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/hupe1980/tutormesh/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLite(filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLite_LoadAllEmpty(t *testing.T) {
	store := newTestStore(t)
	profiles, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestSQLite_SaveAndLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	p := &core.Profile{
		UserID:            core.UserID("Ada"),
		Name:              "Ada",
		LearningStyle:     core.StyleVisual,
		ProficiencyLevel:  core.LevelBeginner,
		PreferredSubjects: []string{"Physics", "Math"},
		SessionHistory: []core.HistoryRecord{{
			SessionID:         "s1",
			Subject:           "Physics",
			StartTime:         "2025-01-02T10:00:00Z",
			EndTime:           "2025-01-02T10:30:00Z",
			Objectives:        []string{"Understand forces"},
			TopicsCovered:     []string{"forces"},
			PerformanceRating: 4,
		}},
		AvatarPath: "avatars/ada.png",
	}
	require.NoError(t, store.Save(ctx, p))

	profiles, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, p, profiles[0])
}

func TestSQLite_SaveIsUpsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	p := &core.Profile{UserID: "u1", Name: "Ada", LearningStyle: core.StyleVisual}
	require.NoError(t, store.Save(ctx, p))

	p.LearningStyle = core.StyleAuditory
	p.SessionHistory = append(p.SessionHistory, core.HistoryRecord{SessionID: "s1"})
	require.NoError(t, store.Save(ctx, p))

	profiles, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, core.StyleAuditory, profiles[0].LearningStyle)
	assert.Len(t, profiles[0].SessionHistory, 1)
}

func TestSQLite_NilSlicesNormalized(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &core.Profile{UserID: "u1", Name: "Ada"}))

	profiles, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.NotNil(t, profiles[0].PreferredSubjects)
	assert.NotNil(t, profiles[0].SessionHistory)
}

func TestSQLite_SurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "users.db")
	ctx := context.Background()

	store, err := NewSQLite(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, &core.Profile{UserID: "u1", Name: "Ada"}))
	require.NoError(t, store.Close())

	store, err = NewSQLite(dbPath)
	require.NoError(t, err)
	defer store.Close()

	profiles, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, profiles, 1)
}
