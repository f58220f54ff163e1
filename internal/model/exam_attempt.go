package model

import "time"

// ExamAttempt is the persisted, scored summary of one completed exam
// session. Append-only: created exactly once per scored exam, never
// mutated by the application.
//
// Invariant: Correct + Incorrect == Total, 0 <= Accuracy <= 100.
type ExamAttempt struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Total     int       `json:"total_questions"`
	Correct   int       `json:"correct_count"`
	Incorrect int       `json:"incorrect_count"`
	Accuracy  int       `json:"accuracy"`
	CreatedAt time.Time `json:"created_at"`
}

// UserAttemptStats aggregates a user's attempt history for the dashboard.
type UserAttemptStats struct {
	Attempted int `json:"attempted"`
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
}
