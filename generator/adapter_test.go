package generator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hupe1980/tutormesh/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapter_Objectives(t *testing.T) {
	model := NewMockModel("test", "mock")
	model.AddResponse(TaskObjectives, "Understand forces\n\n  Apply Newton's laws  \nAnalyze motion\n")
	adapter := NewAdapter(model)

	objectives, err := adapter.Objectives(context.Background(), "Physics")
	require.NoError(t, err)
	assert.Equal(t, []string{"Understand forces", "Apply Newton's laws", "Analyze motion"}, objectives)

	reqs := model.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, TaskObjectives, reqs[0].Task)
	assert.InDelta(t, 0.7, reqs[0].Temperature, 1e-9)
	assert.False(t, reqs[0].JSON)
}

func TestAdapter_Objectives_EmptyResponse(t *testing.T) {
	model := NewMockModel("test", "mock")
	model.AddResponse(TaskObjectives, "\n\n   \n")
	adapter := NewAdapter(model)

	_, err := adapter.Objectives(context.Background(), "Physics")
	var genErr *core.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, string(TaskObjectives), genErr.Task)
}

func TestAdapter_Answer_UsesPromptContext(t *testing.T) {
	model := NewMockModel("test", "mock")
	model.AddResponse(TaskAnswer, "Force is mass times acceleration.")
	adapter := NewAdapter(model)

	pc := PromptContext{
		Subject:       "Physics",
		Objectives:    []string{"Understand forces"},
		LearningStyle: "visual",
		Resources: []core.Resource{
			{Title: "Newton's Laws", Content: strings.Repeat("x", 500)},
		},
		History: []core.Message{{Role: core.RoleLearner, Content: "earlier question"}},
	}
	answer, err := adapter.Answer(context.Background(), pc, "What is force?")
	require.NoError(t, err)
	assert.Equal(t, "Force is mass times acceleration.", answer)

	reqs := model.Requests()
	require.Len(t, reqs, 1)
	assert.Contains(t, reqs[0].Instructions, "expert K-12 tutor in Physics")
	assert.Contains(t, reqs[0].Instructions, "visual")
	assert.Contains(t, reqs[0].Instructions, "Newton's Laws")
	// Excerpts are truncated with an ellipsis marker.
	assert.Contains(t, reqs[0].Instructions, strings.Repeat("x", 200)+"...")
	assert.NotContains(t, reqs[0].Instructions, strings.Repeat("x", 201))
	assert.Equal(t, pc.History, reqs[0].History)
	assert.Equal(t, "What is force?", reqs[0].Prompt)
}

func TestAdapter_Answer_ModelFailure(t *testing.T) {
	model := NewMockModel("test", "mock")
	model.FailTask(TaskAnswer, errors.New("rate limited"))
	adapter := NewAdapter(model)

	_, err := adapter.Answer(context.Background(), PromptContext{Subject: "Physics"}, "q")
	var genErr *core.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.ErrorContains(t, err, "rate limited")
}

func TestAdapter_Followups_CappedAtThree(t *testing.T) {
	model := NewMockModel("test", "mock")
	model.AddResponse(TaskFollowups, "Q1?\nQ2?\nQ3?\nQ4?\nQ5?")
	adapter := NewAdapter(model)

	followups, err := adapter.Followups(context.Background(), "Physics", "some answer")
	require.NoError(t, err)
	assert.Equal(t, []string{"Q1?", "Q2?", "Q3?"}, followups)
}

func TestAdapter_Quiz(t *testing.T) {
	model := NewMockModel("test", "mock")
	model.AddResponse(TaskQuiz, `{
		"question": "What is F = ma?",
		"options": ["First law", "Second law", "Third law", "Gravity"],
		"correct_answer": 1,
		"explanation": "Newton's second law.",
		"visual_description": "A cart being pushed"
	}`)
	adapter := NewAdapter(model)

	quiz, err := adapter.Quiz(context.Background(), PromptContext{Subject: "Physics", Objectives: []string{"forces"}}, "easy")
	require.NoError(t, err)
	assert.Equal(t, "What is F = ma?", quiz.Question)
	assert.Equal(t, 1, quiz.CorrectAnswer)
	assert.Len(t, quiz.Options, 4)

	reqs := model.Requests()
	require.Len(t, reqs, 1)
	assert.True(t, reqs[0].JSON)
	assert.InDelta(t, 0.5, reqs[0].Temperature, 1e-9)
	assert.Contains(t, reqs[0].Prompt, "easy difficulty")
}

func TestAdapter_Quiz_StripsCodeFence(t *testing.T) {
	model := NewMockModel("test", "mock")
	model.AddResponse(TaskQuiz, "```json\n{\"question\":\"q\",\"options\":[\"a\",\"b\",\"c\",\"d\"],\"correct_answer\":0,\"explanation\":\"e\"}\n```")
	adapter := NewAdapter(model)

	quiz, err := adapter.Quiz(context.Background(), PromptContext{Subject: "Physics"}, "medium")
	require.NoError(t, err)
	assert.Equal(t, "q", quiz.Question)
}

func TestAdapter_Quiz_RejectsMalformedShape(t *testing.T) {
	model := NewMockModel("test", "mock")
	adapter := NewAdapter(model)

	cases := map[string]string{
		"invalid json":  "not json at all",
		"three options": `{"question":"q","options":["a","b","c"],"correct_answer":0}`,
		"index too big": `{"question":"q","options":["a","b","c","d"],"correct_answer":4}`,
	}
	for name, response := range cases {
		t.Run(name, func(t *testing.T) {
			model.AddResponse(TaskQuiz, response)
			_, err := adapter.Quiz(context.Background(), PromptContext{Subject: "Physics"}, "easy")
			var genErr *core.GenerationError
			require.ErrorAs(t, err, &genErr)
		})
	}
}

func TestAdapter_Whiteboard(t *testing.T) {
	model := NewMockModel("test", "mock")
	model.AddResponse(TaskWhiteboard, `{
		"title": "Photosynthesis",
		"explanation": "Plants convert light into energy.",
		"visual_elements": ["sun", "leaf"],
		"animation_sequence": ["draw sun", "draw leaf"],
		"color_scheme": ["#00ff00"],
		"learning_activities": ["grow a plant"]
	}`)
	adapter := NewAdapter(model)

	wb, err := adapter.Whiteboard(context.Background(), "Photosynthesis")
	require.NoError(t, err)
	assert.Equal(t, "Photosynthesis", wb.Title)
	assert.Equal(t, []string{"sun", "leaf"}, wb.VisualElements)
}

func TestAdapter_Summary_ClampsRating(t *testing.T) {
	model := NewMockModel("test", "mock")
	model.AddResponse(TaskSummary, `{"topics_covered":["forces"],"key_learnings":["F=ma"],"performance_rating":9}`)
	adapter := NewAdapter(model)

	transcript := []core.Message{
		{Role: core.RoleLearner, Content: "what is force?"},
		{Role: core.RoleTutor, Content: "mass times acceleration"},
	}
	summary, err := adapter.Summary(context.Background(), PromptContext{Subject: "Physics"}, transcript)
	require.NoError(t, err)
	assert.Equal(t, 5, summary.PerformanceRating)

	reqs := model.Requests()
	require.Len(t, reqs, 1)
	assert.InDelta(t, 0.3, reqs[0].Temperature, 1e-9)
	assert.Contains(t, reqs[0].Prompt, "user: what is force?")
	assert.Contains(t, reqs[0].Prompt, "assistant: mass times acceleration")
}

func TestAdapter_ResourceBounds(t *testing.T) {
	model := NewMockModel("test", "mock")
	model.AddResponse(TaskAnswer, "ok")
	adapter := NewAdapter(model, func(o *Options) {
		o.MaxResources = 2
		o.ExcerptLimit = 10
	})

	pc := PromptContext{
		Subject: "Physics",
		Resources: []core.Resource{
			{Title: "R1", Content: "0123456789abcdef"},
			{Title: "R2", Content: "short"},
			{Title: "R3", Content: "never included"},
		},
	}
	_, err := adapter.Answer(context.Background(), pc, "q")
	require.NoError(t, err)

	instructions := model.Requests()[0].Instructions
	assert.Contains(t, instructions, "0123456789...")
	assert.Contains(t, instructions, "R2")
	assert.NotContains(t, instructions, "R3")
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences(`  {"a":1}  `))
}
