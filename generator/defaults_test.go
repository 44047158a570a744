package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults_Objectives(t *testing.T) {
	objectives := NewDefaults().Objectives("Physics")
	assert.Len(t, objectives, 3)
	assert.Equal(t, "Understand core concepts of Physics", objectives[0])
}

func TestDefaults_TemplatesWithoutPlaceholder(t *testing.T) {
	// Templates lacking %s must pass through untouched, never pick up
	// Sprintf EXTRA artifacts.
	summary := NewDefaults().Summary("Math")
	assert.Contains(t, summary.KeyLearnings, "Basic principles and concepts")
	assert.Contains(t, summary.KeyLearnings, "Introduction to Math")
}

func TestDefaults_QuizShape(t *testing.T) {
	quiz := NewDefaults().Quiz("Biology")
	assert.Equal(t, "What is a key concept in Biology?", quiz.Question)
	assert.Len(t, quiz.Options, 4)
	assert.GreaterOrEqual(t, quiz.CorrectAnswer, 0)
	assert.LessOrEqual(t, quiz.CorrectAnswer, 3)
}

func TestDefaults_WhiteboardSchemaComplete(t *testing.T) {
	wb := NewDefaults().Whiteboard("Photosynthesis")
	assert.Equal(t, "Photosynthesis", wb.Title)
	assert.Equal(t, "Explanation of Photosynthesis", wb.Explanation)
	assert.NotNil(t, wb.VisualElements)
	assert.NotNil(t, wb.AnimationSequence)
	assert.NotEmpty(t, wb.ColorScheme)
	assert.NotNil(t, wb.Activities)
}

func TestDefaults_FollowupsEmpty(t *testing.T) {
	assert.Empty(t, NewDefaults().Followups())
}

func TestDefaults_Overridable(t *testing.T) {
	d := NewDefaults()
	d.AnswerMessage = "Service unavailable, try again."
	assert.Equal(t, "Service unavailable, try again.", d.Answer())
}
