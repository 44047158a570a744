package core

// Learning style tags form a closed set; the presentation layer offers exactly
// these choices at registration and the generator personalizes prompts with them.
const (
	StyleVisual      = "visual"
	StyleAuditory    = "auditory"
	StyleKinesthetic = "kinesthetic"
	StyleReading     = "reading/writing"
)

// Proficiency level tags.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// Profile is a learner's durable identity and preferences/history.
//
// Contract:
//   - UserID uniquely identifies exactly one profile
//   - SessionHistory is append-only; records are folded in on session end
//   - Mutations flow exclusively through the engine's save path and are
//     persisted as a full-row overwrite, never a partial update
//   - Ephemeral (guest) profiles live only in process memory and are never
//     handed to a ProfileStore
type Profile struct {
	UserID            string          `json:"user_id"`
	Name              string          `json:"name"`
	LearningStyle     string          `json:"learning_style"`
	ProficiencyLevel  string          `json:"proficiency_level"`
	PreferredSubjects []string        `json:"preferred_subjects"`
	SessionHistory    []HistoryRecord `json:"session_history"`
	AvatarPath        string          `json:"avatar_path,omitempty"`
	Ephemeral         bool            `json:"-"`
}

// HistoryRecord is the compact per-session record appended to a profile when
// the session closes. Only this record survives a session; the full message
// transcript is discarded with the live session.
type HistoryRecord struct {
	SessionID         string   `json:"session_id"`
	Subject           string   `json:"subject"`
	StartTime         string   `json:"start_time"`
	EndTime           string   `json:"end_time"`
	Objectives        []string `json:"learning_objectives"`
	TopicsCovered     []string `json:"topics_covered"`
	PerformanceRating int      `json:"performance_rating"`
}

// Clone returns a deep copy of the profile safe for independent mutation.
func (p *Profile) Clone() *Profile {
	clone := *p
	clone.PreferredSubjects = append([]string(nil), p.PreferredSubjects...)
	clone.SessionHistory = append([]HistoryRecord(nil), p.SessionHistory...)
	return &clone
}
