package generator

import (
	"fmt"
	"strings"

	"github.com/hupe1980/tutormesh/core"
)

// Defaults holds the deterministic fallback templates substituted when a
// generation task fails. Templates containing %s are completed with the
// subject or concept at hand. The zero value is not useful; start from
// NewDefaults and override fields to localize or rebrand the fallbacks.
type Defaults struct {
	// ObjectiveTemplates produce the fallback learning objectives.
	ObjectiveTemplates []string
	// AnswerMessage is returned as the visible answer when answer generation
	// fails. It is intentionally phrased as a degraded-service notice so the
	// fallback is recognizable in transcripts and diagnostics.
	AnswerMessage string
	// Quiz fallback fields.
	QuizQuestionTemplate string
	QuizOptions          []string
	QuizCorrectAnswer    int
	QuizExplanation      string
	QuizVisualHint       string
	// Whiteboard fallback fields.
	WhiteboardExplanationTemplate string
	WhiteboardColorScheme         []string
	// Summary fallback fields.
	SummaryTopicTemplates     []string
	SummaryLearningTemplates  []string
	SummaryNextStepTemplates  []string
	SummaryImproveTemplates   []string
	SummaryPerformanceRating  int
	SummaryStyleInsights      string
}

// NewDefaults returns the built-in English fallback set.
func NewDefaults() Defaults {
	return Defaults{
		ObjectiveTemplates: []string{
			"Understand core concepts of %s",
			"Apply %s knowledge to solve problems",
			"Develop critical thinking in %s",
		},
		AnswerMessage:        "I could not reach the tutoring service just now. Please ask your question again in a moment.",
		QuizQuestionTemplate: "What is a key concept in %s?",
		QuizOptions:          []string{"Option 1", "Option 2", "Option 3", "Option 4"},
		QuizCorrectAnswer:    0,
		QuizExplanation:      "Basic concept explanation.",
		QuizVisualHint:       "An illustration showing the basic concept",
		WhiteboardExplanationTemplate: "Explanation of %s",
		WhiteboardColorScheme:         []string{"#3498db", "#e74c3c", "#2ecc71"},
		SummaryTopicTemplates:         []string{"Core concepts of %s"},
		SummaryLearningTemplates:      []string{"Introduction to %s", "Basic principles and concepts"},
		SummaryNextStepTemplates:      []string{"Review basic %s concepts", "Practice with more examples"},
		SummaryImproveTemplates:       []string{"Advanced %s concepts"},
		SummaryPerformanceRating:      3,
		SummaryStyleInsights:          "Visual learning seemed effective",
	}
}

// expand completes %s templates with the given argument; templates without a
// placeholder pass through untouched.
func expand(templates []string, arg string) []string {
	out := make([]string, len(templates))
	for i, t := range templates {
		if strings.Contains(t, "%s") {
			out[i] = fmt.Sprintf(t, arg)
		} else {
			out[i] = t
		}
	}
	return out
}

func expandOne(t, arg string) string {
	if strings.Contains(t, "%s") {
		return fmt.Sprintf(t, arg)
	}
	return t
}

// Objectives returns the fallback learning objectives for a subject.
func (d Defaults) Objectives(subject string) []string {
	return expand(d.ObjectiveTemplates, subject)
}

// Answer returns the fallback answer message.
func (d Defaults) Answer() string { return d.AnswerMessage }

// Followups returns the fallback follow-up list, which is empty: follow-up
// generation is best-effort and absence is the degraded state.
func (d Defaults) Followups() []string { return []string{} }

// Quiz returns a schema-complete fallback quiz for a subject.
func (d Defaults) Quiz(subject string) core.Quiz {
	return core.Quiz{
		Question:      expandOne(d.QuizQuestionTemplate, subject),
		Options:       append([]string(nil), d.QuizOptions...),
		CorrectAnswer: d.QuizCorrectAnswer,
		Explanation:   d.QuizExplanation,
		VisualHint:    d.QuizVisualHint,
	}
}

// Whiteboard returns a schema-complete fallback whiteboard payload.
func (d Defaults) Whiteboard(concept string) core.WhiteboardContent {
	return core.WhiteboardContent{
		Title:             concept,
		Explanation:       expandOne(d.WhiteboardExplanationTemplate, concept),
		VisualElements:    []string{},
		AnimationSequence: []string{},
		ColorScheme:       append([]string(nil), d.WhiteboardColorScheme...),
		Activities:        []string{},
	}
}

// Summary returns a generic fallback session summary for a subject.
func (d Defaults) Summary(subject string) core.SessionSummary {
	return core.SessionSummary{
		TopicsCovered:         expand(d.SummaryTopicTemplates, subject),
		KeyLearnings:          expand(d.SummaryLearningTemplates, subject),
		SuggestedNextSteps:    expand(d.SummaryNextStepTemplates, subject),
		PerformanceRating:     d.SummaryPerformanceRating,
		AreasForImprovement:   expand(d.SummaryImproveTemplates, subject),
		LearningStyleInsights: d.SummaryStyleInsights,
		RecommendedResources:  []string{},
	}
}
