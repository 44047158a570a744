package profile

import (
	"context"
	"testing"

	"github.com/hupe1980/tutormesh/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStore_SaveAndLoad(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	p := &core.Profile{UserID: "u1", Name: "Ada", PreferredSubjects: []string{"Physics"}}
	require.NoError(t, store.Save(ctx, p))

	profiles, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "Ada", profiles[0].Name)

	// The store holds clones; caller mutations do not leak in.
	p.Name = "mutated"
	profiles, err = store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ada", profiles[0].Name)
}

func TestInMemoryStore_SaveReplaces(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &core.Profile{UserID: "u1", Name: "Ada"}))
	require.NoError(t, store.Save(ctx, &core.Profile{UserID: "u1", Name: "Ada L."}))

	profiles, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "Ada L.", profiles[0].Name)
}
