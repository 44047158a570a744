package knowledge

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/hupe1980/tutormesh/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKB(t *testing.T) *SQLiteKnowledgeBase {
	t.Helper()
	kb, err := NewSQLite(filepath.Join(t.TempDir(), "knowledge.db"))
	require.NoError(t, err)
	t.Cleanup(func() { kb.Close() })
	return kb
}

func TestSQLite_EmptyCatalog(t *testing.T) {
	kb := newTestKB(t)
	resources := kb.SubjectResources(context.Background(), "Physics")
	assert.NotNil(t, resources)
	assert.Empty(t, resources)
}

func TestSQLite_UpsertAndList(t *testing.T) {
	kb := newTestKB(t)
	ctx := context.Background()

	require.True(t, kb.UpsertResource(ctx, "Physics", core.Resource{
		Title:       "Waves",
		ContentType: "text",
		Content:     "waves carry energy",
		Difficulty:  core.LevelBeginner,
	}))
	require.True(t, kb.UpsertResource(ctx, "Physics", core.Resource{
		Title:   "Forces",
		Content: "forces change motion",
	}))
	require.True(t, kb.UpsertResource(ctx, "Chemistry", core.Resource{
		Title:   "Atoms",
		Content: "matter is made of atoms",
	}))

	resources := kb.SubjectResources(ctx, "Physics")
	require.Len(t, resources, 2)
	assert.Equal(t, "Forces", resources[0].Title)
	assert.Equal(t, "Waves", resources[1].Title)
	// Column defaults applied on ingest.
	assert.Equal(t, "text", resources[0].ContentType)
	assert.Equal(t, core.LevelIntermediate, resources[0].Difficulty)

	assert.Len(t, kb.SubjectResources(ctx, "Chemistry"), 1)
}

func TestSQLite_ReingestOverwrites(t *testing.T) {
	kb := newTestKB(t)
	ctx := context.Background()

	require.True(t, kb.UpsertResource(ctx, "Physics", core.Resource{Title: "Waves", Content: "old"}))
	require.True(t, kb.UpsertResource(ctx, "Physics", core.Resource{Title: "Waves", Content: "new"}))

	resources := kb.SubjectResources(ctx, "Physics")
	require.Len(t, resources, 1)
	assert.Equal(t, "new", resources[0].Content)
}

func TestSQLite_SurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "knowledge.db")
	ctx := context.Background()

	kb, err := NewSQLite(dbPath)
	require.NoError(t, err)
	require.True(t, kb.UpsertResource(ctx, "Physics", core.Resource{Title: "Waves", Content: "c"}))
	require.NoError(t, kb.Close())

	kb, err = NewSQLite(dbPath)
	require.NoError(t, err)
	defer kb.Close()
	assert.Len(t, kb.SubjectResources(ctx, "Physics"), 1)
}

func TestSQLite_ClosedHandleFailsSoft(t *testing.T) {
	kb := newTestKB(t)
	require.NoError(t, kb.Close())
	ctx := context.Background()

	assert.Empty(t, kb.SubjectResources(ctx, "Physics"))
	assert.False(t, kb.UpsertResource(ctx, "Physics", core.Resource{Title: "Waves"}))
}
