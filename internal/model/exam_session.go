package model

import (
	"time"
)

// MaxExamQuestions caps how many questions a single exam session may hold.
const MaxExamQuestions = 100

// MinTimeLimitMinutes is the floor applied to requested exam durations.
const MinTimeLimitMinutes = 5

// Direction is a navigation action taken from a question page.
type Direction string

const (
	DirectionNext   Direction = "next"
	DirectionPrev   Direction = "prev"
	DirectionSubmit Direction = "submit"
)

// ExamSessionState is one user's in-progress exam attempt. It is an
// ephemeral value: created by exam setup, serialized whole into the
// session store between requests, and discarded when scored.
//
// QuestionOrder, StartTime and TimeLimitSeconds are fixed at creation.
// Answers is the only field mutated afterwards.
type ExamSessionState struct {
	QuestionOrder    []int          `json:"question_ids"`
	Answers          map[int]string `json:"answers"`
	StartTime        time.Time      `json:"start_time"`
	TimeLimitSeconds int            `json:"time_limit"`
}

// NewExamSessionState builds a fresh session over an already-shuffled,
// already-bounded question order.
func NewExamSessionState(order []int, startTime time.Time, timeLimitSeconds int) *ExamSessionState {
	return &ExamSessionState{
		QuestionOrder:    order,
		Answers:          make(map[int]string),
		StartTime:        startTime,
		TimeLimitSeconds: timeLimitSeconds,
	}
}

// InRange reports whether index addresses a question in this session.
func (s *ExamSessionState) InRange(index int) bool {
	return index >= 0 && index < len(s.QuestionOrder)
}

// RecordAnswer stores the selected option label for the question at the
// given position, overwriting any prior selection. The label is stored
// as-is: a value outside A–D is not an error, it simply never matches the
// correct option at scoring time.
func (s *ExamSessionState) RecordAnswer(index int, label string) bool {
	if !s.InRange(index) {
		return false
	}
	if s.Answers == nil {
		s.Answers = make(map[int]string)
	}
	s.Answers[s.QuestionOrder[index]] = label
	return true
}

// AnswerAt returns the stored selection for the question at index, if any.
func (s *ExamSessionState) AnswerAt(index int) (string, bool) {
	if !s.InRange(index) {
		return "", false
	}
	label, ok := s.Answers[s.QuestionOrder[index]]
	return label, ok
}

// Navigate applies a direction to the current index. The returned index is
// only meaningful when terminal is false; submit, or any step that lands
// outside [0, len), is the terminal "go to scoring" signal, never an error.
// A prev from index 0 therefore terminates rather than clamping.
func (s *ExamSessionState) Navigate(index int, dir Direction) (next int, terminal bool) {
	switch dir {
	case DirectionNext:
		next = index + 1
	case DirectionPrev:
		next = index - 1
	default:
		return 0, true
	}
	if !s.InRange(next) {
		return 0, true
	}
	return next, false
}

// AnsweredCount returns how many questions in this session have a stored
// selection.
func (s *ExamSessionState) AnsweredCount() int {
	n := 0
	for _, id := range s.QuestionOrder {
		if _, ok := s.Answers[id]; ok {
			n++
		}
	}
	return n
}

// RemainingSeconds reports the display-only countdown for the session.
// The time limit is informational: the server never rejects a late
// submission based on it.
func (s *ExamSessionState) RemainingSeconds(now time.Time) int {
	deadline := s.StartTime.Add(time.Duration(s.TimeLimitSeconds) * time.Second)
	remaining := deadline.Sub(now)
	if remaining < 0 {
		return 0
	}
	return int(remaining.Seconds())
}
