package core

import "testing"

func TestProfile_Clone(t *testing.T) {
	p := &Profile{
		UserID:            UserID("Ada"),
		Name:              "Ada",
		LearningStyle:     StyleVisual,
		ProficiencyLevel:  LevelBeginner,
		PreferredSubjects: []string{"Physics"},
		SessionHistory:    []HistoryRecord{{SessionID: "s1", Subject: "Physics"}},
	}

	clone := p.Clone()
	if clone == p {
		t.Fatal("Clone should be a different pointer")
	}

	clone.PreferredSubjects[0] = "Chemistry"
	clone.SessionHistory = append(clone.SessionHistory, HistoryRecord{SessionID: "s2"})
	if p.PreferredSubjects[0] != "Physics" {
		t.Error("clone mutation leaked into original subjects")
	}
	if len(p.SessionHistory) != 1 {
		t.Error("clone mutation leaked into original history")
	}
}
