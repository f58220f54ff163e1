package model

import "time"

// ImportBatch groups questions bulk-inserted from one uploaded file,
// trackable for bulk deletion.
type ImportBatch struct {
	ID        int       `json:"id"`
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"created_at"`
}

// ImportItem is one element of an uploaded JSON import file. All keys are
// optional on the wire; validation happens row by row during ingestion.
type ImportItem struct {
	SubjectID     *int    `json:"subject_id"`
	QuestionText  *string `json:"question"`
	OptionA       *string `json:"option_a"`
	OptionB       *string `json:"option_b"`
	OptionC       *string `json:"option_c"`
	OptionD       *string `json:"option_d"`
	CorrectOption *string `json:"correct_option"`
}

// ImportRowError describes why one row of an import file was rejected.
type ImportRowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportReport summarizes one import run.
type ImportReport struct {
	BatchID  int              `json:"batch_id"`
	Filename string           `json:"filename"`
	Inserted int              `json:"inserted"`
	Skipped  int              `json:"skipped"`
	Errors   []ImportRowError `json:"errors,omitempty"`
}
