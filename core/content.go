package core

// Resource is a knowledge catalog entry associated with a subject. Its
// identity is derived from the title (see ResourceID), so at most one
// resource exists per title and re-ingestion overwrites the prior entry.
type Resource struct {
	Title       string `json:"title"`
	ContentType string `json:"type"`
	Content     string `json:"content"`
	Difficulty  string `json:"difficulty"`
}

// Quiz is a single multiple-choice question generated for a session.
type Quiz struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	VisualHint    string   `json:"visual_description"`
}

// WhiteboardContent describes generated material for the interactive
// whiteboard: what to draw, how to animate it and which activities to offer.
type WhiteboardContent struct {
	Title             string   `json:"title"`
	Explanation       string   `json:"explanation"`
	VisualElements    []string `json:"visual_elements"`
	AnimationSequence []string `json:"animation_sequence"`
	ColorScheme       []string `json:"color_scheme"`
	Activities        []string `json:"learning_activities"`
}

// SessionSummary is the analysis produced when a session closes. The
// PerformanceRating is a 1-5 engagement score.
type SessionSummary struct {
	TopicsCovered         []string `json:"topics_covered"`
	KeyLearnings          []string `json:"key_learnings"`
	SuggestedNextSteps    []string `json:"suggested_next_steps"`
	PerformanceRating     int      `json:"performance_rating"`
	AreasForImprovement   []string `json:"areas_for_improvement"`
	LearningStyleInsights string   `json:"learning_style_insights"`
	RecommendedResources  []string `json:"recommended_resources"`
}
