package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hupe1980/tutormesh/core"
	"github.com/hupe1980/tutormesh/logging"
)

// Per-task sampling temperatures. Structured tasks run cooler than free-text
// tutoring prose; summaries run coolest for stable analysis.
const (
	tempFreeText   = 0.7
	tempStructured = 0.5
	tempSummary    = 0.3
)

// Options configure an Adapter.
type Options struct {
	// Defaults are the deterministic fallback templates exposed via
	// Adapter.Defaults for the engine's failure handling.
	Defaults Defaults

	// MaxResources bounds the number of catalog excerpts included in a prompt.
	MaxResources int

	// ExcerptLimit bounds the character count of each resource excerpt.
	ExcerptLimit int

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// PromptContext carries the bounded session context assembled by the engine
// for personalization: the session subject and objectives, the learner's
// style tag, up to MaxResources catalog entries and the recent message window.
type PromptContext struct {
	Subject       string
	Objectives    []string
	LearningStyle string
	Resources     []core.Resource
	History       []core.Message
}

// Adapter translates structured generation requests into single Model calls
// and parses the responses. Task methods return the parsed value or a
// *core.GenerationError; they never panic and never return partial values
// alongside a non-nil error, so callers can pattern-match the error to select
// the canned fallback from Defaults.
type Adapter struct {
	model        Model
	defaults     Defaults
	maxResources int
	excerptLimit int
	logger       logging.Logger
}

// NewAdapter constructs an Adapter around a Model with optional overrides.
func NewAdapter(model Model, optFns ...func(o *Options)) *Adapter {
	opts := Options{
		Defaults:     NewDefaults(),
		MaxResources: 3,
		ExcerptLimit: 200,
		Logger:       logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Adapter{
		model:        model,
		defaults:     opts.Defaults,
		maxResources: opts.MaxResources,
		excerptLimit: opts.ExcerptLimit,
		logger:       opts.Logger,
	}
}

// Defaults exposes the configured fallback set.
func (a *Adapter) Defaults() Defaults { return a.defaults }

// ModelInfo returns metadata about the wrapped model.
func (a *Adapter) ModelInfo() Info { return a.model.Info() }

// Objectives generates 3-5 learning objectives for a subject.
func (a *Adapter) Objectives(ctx context.Context, subject string) ([]string, error) {
	text, err := a.complete(ctx, Request{
		Task:         TaskObjectives,
		Instructions: fmt.Sprintf("Generate 3-5 key learning objectives for %s for K-12 students considering different learning styles.", subject),
		Prompt:       fmt.Sprintf("List the most important learning objectives for studying %s at K-12 level.", subject),
		Temperature:  tempFreeText,
	})
	if err != nil {
		return nil, err
	}
	lines := splitLines(text)
	if len(lines) == 0 {
		return nil, a.genErr(TaskObjectives, fmt.Errorf("empty response"))
	}
	return lines, nil
}

// Answer generates a tutoring answer for a learner query using the bounded
// session context.
func (a *Adapter) Answer(ctx context.Context, pc PromptContext, query string) (string, error) {
	text, err := a.complete(ctx, Request{
		Task:         TaskAnswer,
		Instructions: a.tutorInstructions(pc),
		History:      pc.History,
		Prompt:       query,
		Temperature:  tempFreeText,
	})
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", a.genErr(TaskAnswer, fmt.Errorf("empty response"))
	}
	return text, nil
}

// Followups generates up to three follow-up questions deepening the answer
// just given. Never returns more than three.
func (a *Adapter) Followups(ctx context.Context, subject, answer string) ([]string, error) {
	text, err := a.complete(ctx, Request{
		Task:         TaskFollowups,
		Instructions: fmt.Sprintf("Generate 3 insightful follow-up questions about %s for K-12 students.", subject),
		Prompt:       fmt.Sprintf("Based on this context: %s\n\nGenerate 3 follow-up questions that would deepen understanding of %s for K-12 students.", answer, subject),
		Temperature:  tempFreeText,
	})
	if err != nil {
		return nil, err
	}
	questions := splitLines(text)
	if len(questions) > 3 {
		questions = questions[:3]
	}
	return questions, nil
}

// Quiz generates a multiple-choice quiz question for the session subject at
// the requested difficulty. The response must be a strict JSON object.
func (a *Adapter) Quiz(ctx context.Context, pc PromptContext, difficulty string) (core.Quiz, error) {
	prompt := fmt.Sprintf(
		"Generate a %s difficulty multiple-choice quiz question about %s with 4 options and specify the correct answer. "+
			"The question should relate to these learning objectives: %s and be appropriate for K-12 students.\n\n"+
			"Format your response as JSON with these fields:\n"+
			"- question: the question text\n"+
			"- options: list of 4 options\n"+
			"- correct_answer: index of correct option (0-3)\n"+
			"- explanation: brief explanation of the answer\n"+
			"- visual_description: description of an image that could help explain the concept",
		difficulty, pc.Subject, strings.Join(pc.Objectives, ", "),
	)
	text, err := a.complete(ctx, Request{
		Task:         TaskQuiz,
		Instructions: "You are a quiz generator for K-12 students. Provide well-formatted JSON output.",
		Prompt:       prompt,
		Temperature:  tempStructured,
		JSON:         true,
	})
	if err != nil {
		return core.Quiz{}, err
	}
	var quiz core.Quiz
	if err := json.Unmarshal([]byte(stripFences(text)), &quiz); err != nil {
		return core.Quiz{}, a.genErr(TaskQuiz, fmt.Errorf("decode quiz: %w", err))
	}
	if len(quiz.Options) != 4 || quiz.CorrectAnswer < 0 || quiz.CorrectAnswer > 3 {
		return core.Quiz{}, a.genErr(TaskQuiz, fmt.Errorf("quiz shape invalid: %d options, correct index %d", len(quiz.Options), quiz.CorrectAnswer))
	}
	return quiz, nil
}

// Whiteboard generates interactive whiteboard content explaining a concept.
func (a *Adapter) Whiteboard(ctx context.Context, concept string) (core.WhiteboardContent, error) {
	prompt := fmt.Sprintf(
		"Generate content for an interactive whiteboard to explain: %s to K-12 students.\n"+
			"Provide a JSON response with:\n"+
			"- title: short title\n"+
			"- explanation: detailed explanation\n"+
			"- visual_elements: list of elements to draw (shapes, text, arrows)\n"+
			"- animation_sequence: how to animate the explanation\n"+
			"- color_scheme: suggested colors\n"+
			"- learning_activities: suggested hands-on activities",
		concept,
	)
	text, err := a.complete(ctx, Request{
		Task:         TaskWhiteboard,
		Instructions: "You are a whiteboard content generator for K-12 education.",
		Prompt:       prompt,
		Temperature:  tempStructured,
		JSON:         true,
	})
	if err != nil {
		return core.WhiteboardContent{}, err
	}
	var wb core.WhiteboardContent
	if err := json.Unmarshal([]byte(stripFences(text)), &wb); err != nil {
		return core.WhiteboardContent{}, a.genErr(TaskWhiteboard, fmt.Errorf("decode whiteboard content: %w", err))
	}
	return wb, nil
}

// Summary analyzes a full session transcript and generates a structured
// summary. The performance rating is clamped to the 1-5 range.
func (a *Adapter) Summary(ctx context.Context, pc PromptContext, transcript []core.Message) (core.SessionSummary, error) {
	var sb strings.Builder
	for _, msg := range transcript {
		fmt.Fprintf(&sb, "%s: %s\n", msg.Role, msg.Content)
	}
	prompt := fmt.Sprintf(
		"Analyze this K-12 tutoring session and generate a comprehensive summary:\n"+
			"Subject: %s\nLearning Objectives: %s\n\nConversation:\n%s\n"+
			"Provide a JSON response with these fields:\n"+
			"- topics_covered: list of main topics discussed\n"+
			"- key_learnings: 3-5 key takeaways\n"+
			"- suggested_next_steps: recommendations for future study\n"+
			"- performance_rating: 1-5 rating of student engagement\n"+
			"- areas_for_improvement: concepts needing more work\n"+
			"- learning_style_insights: observations about learning style\n"+
			"- recommended_resources: suggested learning materials",
		pc.Subject, strings.Join(pc.Objectives, ", "), sb.String(),
	)
	text, err := a.complete(ctx, Request{
		Task:         TaskSummary,
		Instructions: "You are a session analyzer for K-12 education. Provide well-formatted JSON output.",
		Prompt:       prompt,
		Temperature:  tempSummary,
		JSON:         true,
	})
	if err != nil {
		return core.SessionSummary{}, err
	}
	var summary core.SessionSummary
	if err := json.Unmarshal([]byte(stripFences(text)), &summary); err != nil {
		return core.SessionSummary{}, a.genErr(TaskSummary, fmt.Errorf("decode summary: %w", err))
	}
	if summary.PerformanceRating < 1 {
		summary.PerformanceRating = 1
	} else if summary.PerformanceRating > 5 {
		summary.PerformanceRating = 5
	}
	return summary, nil
}

// complete performs one model call, tagging it with a request id for tracing.
func (a *Adapter) complete(ctx context.Context, req Request) (string, error) {
	requestID := uuid.NewString()
	start := time.Now()
	text, err := a.model.Complete(ctx, req)
	if err != nil {
		a.logger.Warn("Model call failed", "request_id", requestID, "task", string(req.Task), "model", a.model.Info().Name, "duration", time.Since(start), "error", err)
		return "", a.genErr(req.Task, err)
	}
	a.logger.Debug("Model call completed", "request_id", requestID, "task", string(req.Task), "model", a.model.Info().Name, "duration", time.Since(start))
	return text, nil
}

func (a *Adapter) genErr(task Task, err error) error {
	return &core.GenerationError{Task: string(task), Err: err}
}

// tutorInstructions assembles the personalized system prompt for answer
// generation, including truncated resource excerpts.
func (a *Adapter) tutorInstructions(pc PromptContext) string {
	style := pc.LearningStyle
	if style == "" {
		style = "unknown"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are an expert K-12 tutor in %s.\n", pc.Subject)
	fmt.Fprintf(&sb, "Current learning objectives: %s\n", strings.Join(pc.Objectives, ", "))
	fmt.Fprintf(&sb, "Available resources: %s\n", a.resourceExcerpts(pc.Resources))
	fmt.Fprintf(&sb, "Student learning style: %s\n\n", style)
	sb.WriteString("Provide detailed, educational responses that:\n")
	sb.WriteString("- Explain concepts clearly using age-appropriate language\n")
	fmt.Fprintf(&sb, "- Use %s learning style techniques\n", style)
	sb.WriteString("- Provide real-world examples relevant to students\n")
	sb.WriteString("- Include visual descriptions when appropriate\n")
	sb.WriteString("- Break down complex ideas into simpler parts\n")
	sb.WriteString("- Encourage critical thinking with probing questions\n")
	sb.WriteString("- Suggest hands-on activities when applicable\n")
	sb.WriteString("- Relate concepts to student interests when possible")
	return sb.String()
}

// resourceExcerpts renders at most MaxResources entries, each truncated to
// ExcerptLimit characters, keeping prompt size bounded.
func (a *Adapter) resourceExcerpts(resources []core.Resource) string {
	if len(resources) > a.maxResources {
		resources = resources[:a.maxResources]
	}
	excerpts := make([]string, 0, len(resources))
	for _, res := range resources {
		content := res.Content
		if len(content) > a.excerptLimit {
			content = content[:a.excerptLimit] + "..."
		}
		excerpts = append(excerpts, fmt.Sprintf("Resource: %s\nContent: %s", res.Title, content))
	}
	return strings.Join(excerpts, "\n")
}

// splitLines splits free text into trimmed non-empty lines.
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// stripFences removes a surrounding markdown code fence. Providers without a
// native JSON response mode occasionally wrap objects this way.
func stripFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
