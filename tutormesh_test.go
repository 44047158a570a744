package tutormesh

import (
	"context"
	"testing"

	"github.com/hupe1980/tutormesh/core"
	"github.com/hupe1980/tutormesh/generator"
	"github.com/hupe1980/tutormesh/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	mesh, err := New(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, mesh.Engine())
}

func TestTutorMesh_FullSessionFlow(t *testing.T) {
	ctx := context.Background()
	model := generator.NewMockModel("m", "mock")
	model.AddResponse(generator.TaskObjectives, "Understand forces\nApply Newton's laws")
	model.AddResponse(generator.TaskAnswer, "Force equals mass times acceleration.")
	model.AddResponse(generator.TaskFollowups, "How does friction fit in?")
	model.AddResponse(generator.TaskSummary, `{"topics_covered":["forces"],"key_learnings":["F=ma"],"performance_rating":4}`)

	mesh, err := New(ctx, func(o *Options) {
		o.Model = model
	})
	require.NoError(t, err)

	require.True(t, mesh.IngestResource(ctx, "Physics", core.Resource{
		Title:   "Newton's Laws",
		Content: "Three laws describing motion.",
	}))
	assert.Len(t, mesh.SubjectResources(ctx, "Physics"), 1)

	learner, err := mesh.Register(ctx, "Ada", core.StyleVisual, core.LevelBeginner, []string{"Physics"})
	require.NoError(t, err)

	sess, err := mesh.StartSession(ctx, learner.UserID, "Physics")
	require.NoError(t, err)
	assert.Len(t, sess.Objectives, 2)

	answer, followups, err := mesh.Ask(ctx, sess.ID, "What is force?")
	require.NoError(t, err)
	assert.Equal(t, "Force equals mass times acceleration.", answer)
	assert.Equal(t, []string{"How does friction fit in?"}, followups)

	quiz, err := mesh.GenerateQuiz(ctx, sess.ID, "easy")
	require.NoError(t, err)
	assert.Len(t, quiz.Options, 4)

	require.NoError(t, mesh.RecordWhiteboard(sess.ID, core.WhiteboardElement{"type": "arrow"}))

	summary, err := mesh.EndSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"forces"}, summary.TopicsCovered)

	got, err := mesh.Lookup(learner.UserID)
	require.NoError(t, err)
	require.Len(t, got.SessionHistory, 1)
	assert.Equal(t, sess.ID, got.SessionHistory[0].SessionID)
}

func TestNew_LoadsStoredProfiles(t *testing.T) {
	ctx := context.Background()
	store := profile.NewInMemoryStore()
	require.NoError(t, store.Save(ctx, &core.Profile{UserID: "u1", Name: "Ada"}))

	mesh, err := New(ctx, func(o *Options) {
		o.ProfileStore = store
	})
	require.NoError(t, err)

	got, err := mesh.Lookup("u1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)
}
