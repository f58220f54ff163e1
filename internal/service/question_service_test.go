package service

import (
	"errors"
	"testing"
)

const validRow = `{"subject_id": 1, "question": "q", "option_a": "a", "option_b": "b", "option_c": "c", "option_d": "d", "correct_option": "A"}`

func TestParseImportPayloadNotArray(t *testing.T) {
	for _, payload := range []string{`{"a": 1}`, `"hello"`, `not json at all`} {
		_, _, _, err := ParseImportPayload([]byte(payload))
		if !errors.Is(err, ErrNotJSONArray) {
			t.Fatalf("payload %q: err = %v, want ErrNotJSONArray", payload, err)
		}
	}
}

func TestParseImportPayloadValidRows(t *testing.T) {
	payload := `[` + validRow + `,` + validRow + `]`

	questions, rowErrors, skipped, err := ParseImportPayload([]byte(payload))
	if err != nil {
		t.Fatal(err)
	}
	if len(questions) != 2 || len(rowErrors) != 0 || skipped != 0 {
		t.Fatalf("questions=%d rowErrors=%d skipped=%d", len(questions), len(rowErrors), skipped)
	}

	q := questions[0]
	if q.SubjectID != 1 || q.QuestionText != "q" || q.CorrectOption != "A" {
		t.Fatalf("parsed question = %+v", q)
	}
}

func TestParseImportPayloadNonObjectElementsSkipped(t *testing.T) {
	payload := `[42, "string", ` + validRow + `, [1,2]]`

	questions, rowErrors, skipped, err := ParseImportPayload([]byte(payload))
	if err != nil {
		t.Fatal(err)
	}
	if len(questions) != 1 {
		t.Fatalf("questions = %d, want 1", len(questions))
	}
	if skipped != 3 {
		t.Fatalf("skipped = %d, want 3", skipped)
	}
	if len(rowErrors) != 0 {
		t.Fatalf("rowErrors = %v, want none", rowErrors)
	}
}

func TestParseImportPayloadRowValidation(t *testing.T) {
	tests := []struct {
		name   string
		row    string
		reason string
	}{
		{"missing subject", `{"question": "q", "option_a": "a", "option_b": "b", "option_c": "c", "option_d": "d", "correct_option": "A"}`, "missing subject_id"},
		{"missing question", `{"subject_id": 1, "option_a": "a", "option_b": "b", "option_c": "c", "option_d": "d", "correct_option": "A"}`, "missing question"},
		{"empty question", `{"subject_id": 1, "question": "", "option_a": "a", "option_b": "b", "option_c": "c", "option_d": "d", "correct_option": "A"}`, "missing question"},
		{"missing option", `{"subject_id": 1, "question": "q", "option_a": "a", "option_b": "b", "option_c": "c", "correct_option": "A"}`, "missing one or more options"},
		{"missing correct", `{"subject_id": 1, "question": "q", "option_a": "a", "option_b": "b", "option_c": "c", "option_d": "d"}`, "missing correct_option"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := `[` + tt.row + `,` + validRow + `]`

			questions, rowErrors, _, err := ParseImportPayload([]byte(payload))
			if err != nil {
				t.Fatal(err)
			}
			if len(questions) != 1 {
				t.Fatalf("questions = %d, want 1 (valid row still inserts)", len(questions))
			}
			if len(rowErrors) != 1 {
				t.Fatalf("rowErrors = %v, want 1", rowErrors)
			}
			if rowErrors[0].Row != 0 {
				t.Fatalf("row = %d, want 0", rowErrors[0].Row)
			}
			if rowErrors[0].Reason != tt.reason {
				t.Fatalf("reason = %q, want %q", rowErrors[0].Reason, tt.reason)
			}
		})
	}
}

func TestParseImportPayloadEmptyArray(t *testing.T) {
	questions, rowErrors, skipped, err := ParseImportPayload([]byte(`[]`))
	if err != nil {
		t.Fatal(err)
	}
	if len(questions) != 0 || len(rowErrors) != 0 || skipped != 0 {
		t.Fatalf("questions=%d rowErrors=%d skipped=%d, want all zero", len(questions), len(rowErrors), skipped)
	}
}
