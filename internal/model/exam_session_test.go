package model

import (
	"testing"
	"time"
)

func newTestSession(ids ...int) *ExamSessionState {
	return NewExamSessionState(ids, time.Now(), 900)
}

func TestNavigate(t *testing.T) {
	s := newTestSession(10, 20, 30)

	tests := []struct {
		name         string
		index        int
		dir          Direction
		wantNext     int
		wantTerminal bool
	}{
		{"next from first", 0, DirectionNext, 1, false},
		{"next from middle", 1, DirectionNext, 2, false},
		{"next past last", 2, DirectionNext, 0, true},
		{"prev from middle", 1, DirectionPrev, 0, false},
		{"prev from first", 0, DirectionPrev, 0, true},
		{"submit from anywhere", 1, DirectionSubmit, 0, true},
		{"unknown action", 1, Direction("sideways"), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, terminal := s.Navigate(tt.index, tt.dir)
			if terminal != tt.wantTerminal {
				t.Fatalf("terminal = %v, want %v", terminal, tt.wantTerminal)
			}
			if !terminal && next != tt.wantNext {
				t.Fatalf("next = %d, want %d", next, tt.wantNext)
			}
		})
	}
}

func TestRecordAnswer(t *testing.T) {
	s := newTestSession(10, 20, 30)

	if !s.RecordAnswer(0, "A") {
		t.Fatal("RecordAnswer(0) returned false")
	}
	if got, ok := s.AnswerAt(0); !ok || got != "A" {
		t.Fatalf("AnswerAt(0) = %q, %v", got, ok)
	}

	// Changing an answer overwrites.
	s.RecordAnswer(0, "C")
	if got, _ := s.AnswerAt(0); got != "C" {
		t.Fatalf("after overwrite AnswerAt(0) = %q, want C", got)
	}
	if s.AnsweredCount() != 1 {
		t.Fatalf("AnsweredCount = %d, want 1", s.AnsweredCount())
	}

	// Labels outside A-D are stored as-is.
	if !s.RecordAnswer(1, "Z") {
		t.Fatal("RecordAnswer should accept any label")
	}

	// Out-of-range positions are rejected.
	if s.RecordAnswer(3, "A") {
		t.Fatal("RecordAnswer(3) should be out of range")
	}
	if s.RecordAnswer(-1, "A") {
		t.Fatal("RecordAnswer(-1) should be out of range")
	}
}

func TestRecordAnswerNilMap(t *testing.T) {
	// A session decoded from JSON with no answers yet has a nil map.
	s := &ExamSessionState{QuestionOrder: []int{5}}
	if !s.RecordAnswer(0, "B") {
		t.Fatal("RecordAnswer on nil map failed")
	}
	if got, _ := s.AnswerAt(0); got != "B" {
		t.Fatalf("AnswerAt(0) = %q, want B", got)
	}
}

func TestRemainingSeconds(t *testing.T) {
	start := time.Now()
	s := NewExamSessionState([]int{1}, start, 600)

	if got := s.RemainingSeconds(start); got != 600 {
		t.Fatalf("at start: %d, want 600", got)
	}
	if got := s.RemainingSeconds(start.Add(250 * time.Second)); got != 350 {
		t.Fatalf("mid-session: %d, want 350", got)
	}
	// Past the deadline the countdown floors at zero; the session itself
	// stays live until the user submits.
	if got := s.RemainingSeconds(start.Add(2 * time.Hour)); got != 0 {
		t.Fatalf("expired: %d, want 0", got)
	}
}
