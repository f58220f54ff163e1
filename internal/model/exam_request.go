package model

// Defaults applied when the setup form leaves a field blank.
const (
	DefaultExamQuestions    = 10
	DefaultTimeLimitMinutes = 15
)

// ExamSetupRequest configures a new exam session. Zero Count and
// TimeLimitMinutes take the defaults above; empty SubjectIDs means the
// whole bank.
type ExamSetupRequest struct {
	SubjectIDs       []int  `json:"subject_ids"`
	Count            int    `json:"count" binding:"omitempty,min=1"`
	TimeLimitMinutes int    `json:"time_limit_minutes" binding:"omitempty,min=1"`
	Mode             string `json:"mode" binding:"omitempty,oneof=random progress"`
}

// ExamAnswerRequest records an answer (optional) and moves the cursor.
type ExamAnswerRequest struct {
	Answer string `json:"answer"`
	Action string `json:"action" binding:"required,oneof=next prev submit"`
}
