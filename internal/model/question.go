package model

import "time"

// OptionLabels are the four labels every MCQ carries.
var OptionLabels = []string{"A", "B", "C", "D"}

// Question is a single multiple-choice question. Immutable during an exam;
// only admins mutate it, through the management endpoints.
type Question struct {
	ID            int       `json:"id"`
	SubjectID     int       `json:"subject_id"`
	QuestionText  string    `json:"question"`
	OptionA       string    `json:"option_a"`
	OptionB       string    `json:"option_b"`
	OptionC       string    `json:"option_c"`
	OptionD       string    `json:"option_d"`
	CorrectOption string    `json:"correct_option"`
	BatchID       *int      `json:"batch_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Options returns the four options keyed by label.
func (q *Question) Options() map[string]string {
	return map[string]string{
		"A": q.OptionA,
		"B": q.OptionB,
		"C": q.OptionC,
		"D": q.OptionD,
	}
}

// QuestionSummary is the admin list-view row (subject name joined in).
type QuestionSummary struct {
	ID           int    `json:"id"`
	SubjectName  string `json:"subject_name"`
	QuestionText string `json:"question"`
}

// CreateQuestionRequest is the payload for adding a question.
type CreateQuestionRequest struct {
	SubjectID     int    `json:"subject_id" binding:"required"`
	QuestionText  string `json:"question" binding:"required,min=1,max=2000"`
	OptionA       string `json:"option_a" binding:"required,max=500"`
	OptionB       string `json:"option_b" binding:"required,max=500"`
	OptionC       string `json:"option_c" binding:"required,max=500"`
	OptionD       string `json:"option_d" binding:"required,max=500"`
	CorrectOption string `json:"correct_option" binding:"required,oneof=A B C D"`
}

// UpdateQuestionRequest is the payload for editing a question.
type UpdateQuestionRequest struct {
	SubjectID     int    `json:"subject_id" binding:"required"`
	QuestionText  string `json:"question" binding:"required,min=1,max=2000"`
	OptionA       string `json:"option_a" binding:"required,max=500"`
	OptionB       string `json:"option_b" binding:"required,max=500"`
	OptionC       string `json:"option_c" binding:"required,max=500"`
	OptionD       string `json:"option_d" binding:"required,max=500"`
	CorrectOption string `json:"correct_option" binding:"required,oneof=A B C D"`
}
