package core

import "testing"

func TestSession_OpenCloseLifecycle(t *testing.T) {
	s := NewSession("s1", "u1", "Physics", []string{"obj1"})
	if !s.Open() {
		t.Fatal("new session should be open")
	}
	s.Close()
	if s.Open() {
		t.Fatal("closed session should not report open")
	}
	first := *s.EndTime
	s.Close()
	if !s.EndTime.Equal(first) {
		t.Error("second close should not move the end time")
	}
}

func TestSession_AppendExchange(t *testing.T) {
	s := NewSession("s1", "u1", "Physics", nil)
	s.AppendExchange("what is force?", "force is mass times acceleration")
	if got := s.MessageCount(); got != 2 {
		t.Fatalf("expected 2 messages after one exchange, got %d", got)
	}
	all := s.Transcript()
	if all[0].Role != RoleLearner || all[1].Role != RoleTutor {
		t.Errorf("exchange order wrong: %+v", all)
	}
	all[0].Content = "mutated"
	if s.Transcript()[0].Content != "what is force?" {
		t.Error("transcript should be copied on read")
	}
}

func TestSession_RecentMessages(t *testing.T) {
	s := NewSession("s1", "u1", "Physics", nil)
	for i := 0; i < 4; i++ {
		s.AppendExchange("q", "a")
	}
	if got := len(s.RecentMessages(5)); got != 5 {
		t.Errorf("expected window of 5, got %d", got)
	}
	if got := len(s.RecentMessages(100)); got != 8 {
		t.Errorf("oversized window should return all 8, got %d", got)
	}
	if got := len(s.RecentMessages(0)); got != 0 {
		t.Errorf("zero window should return nothing, got %d", got)
	}
}

func TestSession_RecordWhiteboard(t *testing.T) {
	s := NewSession("s1", "u1", "Physics", nil)
	s.RecordWhiteboard(WhiteboardElement{"type": "circle", "x": 10})
	s.RecordWhiteboard(WhiteboardElement{"type": "arrow"})
	if len(s.Whiteboard) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(s.Whiteboard))
	}
	if s.Whiteboard[0]["type"] != "circle" {
		t.Errorf("element order wrong: %+v", s.Whiteboard)
	}
}
