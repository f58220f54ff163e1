package model

import "time"

// Subject is a named category used to filter the question bank.
type Subject struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateSubjectRequest is the payload for creating a subject.
type CreateSubjectRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

// UpdateSubjectRequest is the payload for renaming a subject.
type UpdateSubjectRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

// SubjectWithCount is a subject plus its question count, for the dashboard.
type SubjectWithCount struct {
	Subject
	QuestionCount int `json:"question_count"`
}
