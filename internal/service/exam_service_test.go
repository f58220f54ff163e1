package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/drillbank/drillbank-backend/internal/model"
	"github.com/drillbank/drillbank-backend/internal/repository"
	"github.com/rs/zerolog"
)

// ─── Fakes ──────────────────────────────────────────────────────────────────

type fakeBank struct {
	questions map[int]model.Question
}

func newFakeBank(n int) *fakeBank {
	b := &fakeBank{questions: make(map[int]model.Question)}
	for i := 1; i <= n; i++ {
		b.questions[i] = model.Question{
			ID:            i,
			SubjectID:     1,
			QuestionText:  fmt.Sprintf("question %d", i),
			OptionA:       "a",
			OptionB:       "b",
			OptionC:       "c",
			OptionD:       "d",
			CorrectOption: "A",
		}
	}
	return b
}

func (b *fakeBank) ListEligibleIDs(_ context.Context, _ []int) ([]int, error) {
	ids := make([]int, 0, len(b.questions))
	for id := range b.questions {
		ids = append(ids, id)
	}
	return ids, nil
}

func (b *fakeBank) GetByIDs(_ context.Context, ids []int) ([]model.Question, error) {
	var out []model.Question
	for _, id := range ids {
		if q, ok := b.questions[id]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}

type fakeAttempts struct {
	created []model.ExamAttempt
	fail    error
}

func (a *fakeAttempts) Create(_ context.Context, attempt *model.ExamAttempt) error {
	if a.fail != nil {
		return a.fail
	}
	a.created = append(a.created, *attempt)
	return nil
}

type fakeSessions struct {
	states map[int]*model.ExamSessionState
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{states: make(map[int]*model.ExamSessionState)}
}

func (s *fakeSessions) Save(_ context.Context, userID int, state *model.ExamSessionState) error {
	s.states[userID] = state
	return nil
}

func (s *fakeSessions) Get(_ context.Context, userID int) (*model.ExamSessionState, error) {
	state, ok := s.states[userID]
	if !ok {
		return nil, repository.ErrNoSession
	}
	return state, nil
}

func (s *fakeSessions) Pop(_ context.Context, userID int) (*model.ExamSessionState, error) {
	state, ok := s.states[userID]
	if !ok {
		return nil, repository.ErrNoSession
	}
	delete(s.states, userID)
	return state, nil
}

func newTestExamService(bank QuestionBank, attempts AttemptLog, sessions SessionStore) *ExamService {
	return NewExamService(bank, attempts, sessions, zerolog.Nop())
}

// ─── StartExam ──────────────────────────────────────────────────────────────

func TestStartExamRejectsNonPositiveCount(t *testing.T) {
	svc := newTestExamService(newFakeBank(10), &fakeAttempts{}, newFakeSessions())

	for _, count := range []int{0, -5} {
		_, err := svc.StartExam(context.Background(), 1, nil, count, 15, "")
		if !errors.Is(err, ErrInvalidConfiguration) {
			t.Fatalf("count=%d: err = %v, want ErrInvalidConfiguration", count, err)
		}
	}
}

func TestStartExamEmptyBank(t *testing.T) {
	svc := newTestExamService(newFakeBank(0), &fakeAttempts{}, newFakeSessions())

	_, err := svc.StartExam(context.Background(), 1, nil, 10, 15, "")
	if !errors.Is(err, ErrNoEligibleQuestions) {
		t.Fatalf("err = %v, want ErrNoEligibleQuestions", err)
	}
}

func TestStartExamClampsCountToBank(t *testing.T) {
	svc := newTestExamService(newFakeBank(3), &fakeAttempts{}, newFakeSessions())

	state, err := svc.StartExam(context.Background(), 1, nil, 50, 15, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(state.QuestionOrder) != 3 {
		t.Fatalf("got %d questions, want all 3", len(state.QuestionOrder))
	}
}

func TestStartExamClampsCountToCap(t *testing.T) {
	svc := newTestExamService(newFakeBank(500), &fakeAttempts{}, newFakeSessions())

	state, err := svc.StartExam(context.Background(), 1, nil, 1000, 15, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(state.QuestionOrder) != model.MaxExamQuestions {
		t.Fatalf("got %d questions, want %d", len(state.QuestionOrder), model.MaxExamQuestions)
	}
}

func TestStartExamClampsTimeLimit(t *testing.T) {
	svc := newTestExamService(newFakeBank(10), &fakeAttempts{}, newFakeSessions())

	state, err := svc.StartExam(context.Background(), 1, nil, 5, 1, "")
	if err != nil {
		t.Fatal(err)
	}
	if state.TimeLimitSeconds != model.MinTimeLimitMinutes*60 {
		t.Fatalf("time limit = %ds, want %ds", state.TimeLimitSeconds, model.MinTimeLimitMinutes*60)
	}
}

func TestStartExamSelectionIsUniqueSubset(t *testing.T) {
	bank := newFakeBank(20)
	svc := newTestExamService(bank, &fakeAttempts{}, newFakeSessions())

	state, err := svc.StartExam(context.Background(), 1, nil, 10, 15, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(state.QuestionOrder) != 10 {
		t.Fatalf("got %d questions, want 10", len(state.QuestionOrder))
	}
	seen := make(map[int]bool)
	for _, id := range state.QuestionOrder {
		if seen[id] {
			t.Fatalf("question %d selected twice", id)
		}
		seen[id] = true
		if _, ok := bank.questions[id]; !ok {
			t.Fatalf("question %d not in bank", id)
		}
	}
}

func TestStartExamReplacesStaleSession(t *testing.T) {
	sessions := newFakeSessions()
	svc := newTestExamService(newFakeBank(10), &fakeAttempts{}, sessions)
	ctx := context.Background()

	first, err := svc.StartExam(ctx, 1, nil, 5, 15, "")
	if err != nil {
		t.Fatal(err)
	}
	first.Answers[first.QuestionOrder[0]] = "A"

	second, err := svc.StartExam(ctx, 1, nil, 5, 15, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(second.Answers) != 0 {
		t.Fatal("new session inherited answers from the abandoned one")
	}
	if got := sessions.states[1]; got != second {
		t.Fatal("stale session not replaced in store")
	}
}

// ─── Navigation and answering ───────────────────────────────────────────────

func TestAnswerAndNavigateFlow(t *testing.T) {
	svc := newTestExamService(newFakeBank(10), &fakeAttempts{}, newFakeSessions())
	ctx := context.Background()

	state, err := svc.StartExam(ctx, 1, nil, 3, 15, "")
	if err != nil {
		t.Fatal(err)
	}

	next, terminal, err := svc.AnswerAndNavigate(ctx, 1, 0, "B", model.DirectionNext)
	if err != nil || terminal {
		t.Fatalf("next from 0: next=%d terminal=%v err=%v", next, terminal, err)
	}
	if next != 1 {
		t.Fatalf("next = %d, want 1", next)
	}

	// Blank answer navigates without recording.
	next, terminal, err = svc.AnswerAndNavigate(ctx, 1, 1, "", model.DirectionNext)
	if err != nil || terminal || next != 2 {
		t.Fatalf("blank answer: next=%d terminal=%v err=%v", next, terminal, err)
	}

	// Submit is terminal from any position.
	_, terminal, err = svc.AnswerAndNavigate(ctx, 1, 2, "C", model.DirectionSubmit)
	if err != nil {
		t.Fatal(err)
	}
	if !terminal {
		t.Fatal("submit should be terminal")
	}

	// Both answers persisted.
	if state.Answers[state.QuestionOrder[0]] != "B" {
		t.Fatal("answer at 0 not recorded")
	}
	if state.Answers[state.QuestionOrder[2]] != "C" {
		t.Fatal("answer at 2 not recorded")
	}
	if _, ok := state.Answers[state.QuestionOrder[1]]; ok {
		t.Fatal("blank answer should not be recorded")
	}
}

func TestAnswerAndNavigateNoSession(t *testing.T) {
	svc := newTestExamService(newFakeBank(10), &fakeAttempts{}, newFakeSessions())

	_, _, err := svc.AnswerAndNavigate(context.Background(), 1, 0, "A", model.DirectionNext)
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestViewQuestionHidesCorrectOption(t *testing.T) {
	svc := newTestExamService(newFakeBank(5), &fakeAttempts{}, newFakeSessions())
	ctx := context.Background()

	if _, err := svc.StartExam(ctx, 1, nil, 5, 15, ""); err != nil {
		t.Fatal(err)
	}

	view, terminal, err := svc.ViewQuestion(ctx, 1, 0)
	if err != nil || terminal {
		t.Fatalf("terminal=%v err=%v", terminal, err)
	}
	if view.Total != 5 || view.Index != 0 {
		t.Fatalf("view = %+v", view)
	}
	if len(view.Options) != 4 {
		t.Fatalf("options = %v", view.Options)
	}

	// Past the last question the view is terminal, not an error.
	_, terminal, err = svc.ViewQuestion(ctx, 1, 5)
	if err != nil {
		t.Fatal(err)
	}
	if !terminal {
		t.Fatal("out-of-range view should be terminal")
	}
}

// ─── Scoring ────────────────────────────────────────────────────────────────

// Runs the canonical session: pool of 5, take 3, answer one right, one
// wrong, leave one blank.
func TestFinishExamScoring(t *testing.T) {
	bank := newFakeBank(5)
	attempts := &fakeAttempts{}
	sessions := newFakeSessions()
	svc := newTestExamService(bank, attempts, sessions)
	ctx := context.Background()

	state, err := svc.StartExam(ctx, 7, nil, 3, 15, "")
	if err != nil {
		t.Fatal(err)
	}

	// CorrectOption is "A" throughout the fake bank.
	state.RecordAnswer(0, "A")
	state.RecordAnswer(1, "B")

	report, err := svc.FinishExam(ctx, 7)
	if err != nil {
		t.Fatal(err)
	}

	if report.Total != 3 || report.Correct != 1 || report.Incorrect != 2 {
		t.Fatalf("report = %+v", report)
	}
	if report.Accuracy != 33 {
		t.Fatalf("accuracy = %d, want 33", report.Accuracy)
	}
	if len(report.Review) != 3 {
		t.Fatalf("review has %d entries, want 3", len(report.Review))
	}

	// Review follows the session's question order.
	for i, entry := range report.Review {
		if entry.QuestionID != state.QuestionOrder[i] {
			t.Fatalf("review[%d] = question %d, want %d", i, entry.QuestionID, state.QuestionOrder[i])
		}
	}

	// One attempt row, matching the report.
	if len(attempts.created) != 1 {
		t.Fatalf("created %d attempts, want 1", len(attempts.created))
	}
	a := attempts.created[0]
	if a.UserID != 7 || a.Total != 3 || a.Correct != 1 || a.Incorrect != 2 || a.Accuracy != 33 {
		t.Fatalf("attempt = %+v", a)
	}
}

func TestFinishExamAccuracyRounding(t *testing.T) {
	tests := []struct {
		total, correct int
		want           int
	}{
		{3, 1, 33},
		{3, 2, 67},
		{4, 2, 50},
		{1, 0, 0},
		{1, 1, 100},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_of_%d", tt.correct, tt.total), func(t *testing.T) {
			bank := newFakeBank(tt.total)
			sessions := newFakeSessions()
			svc := newTestExamService(bank, &fakeAttempts{}, sessions)
			ctx := context.Background()

			state, err := svc.StartExam(ctx, 1, nil, tt.total, 15, "")
			if err != nil {
				t.Fatal(err)
			}
			for i := 0; i < tt.correct; i++ {
				state.RecordAnswer(i, "A")
			}

			report, err := svc.FinishExam(ctx, 1)
			if err != nil {
				t.Fatal(err)
			}
			if report.Accuracy != tt.want {
				t.Fatalf("accuracy = %d, want %d", report.Accuracy, tt.want)
			}
			if report.Correct+report.Incorrect != report.Total {
				t.Fatalf("correct %d + incorrect %d != total %d", report.Correct, report.Incorrect, report.Total)
			}
		})
	}
}

func TestFinishExamConsumesSession(t *testing.T) {
	svc := newTestExamService(newFakeBank(5), &fakeAttempts{}, newFakeSessions())
	ctx := context.Background()

	if _, err := svc.StartExam(ctx, 1, nil, 3, 15, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.FinishExam(ctx, 1); err != nil {
		t.Fatal(err)
	}

	// The pop is one-shot: scoring again finds nothing.
	_, err := svc.FinishExam(ctx, 1)
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("second finish: err = %v, want ErrSessionNotFound", err)
	}
}

func TestFinishExamNoAttemptOnStorageFailure(t *testing.T) {
	attempts := &fakeAttempts{fail: errors.New("db down")}
	svc := newTestExamService(newFakeBank(5), attempts, newFakeSessions())
	ctx := context.Background()

	if _, err := svc.StartExam(ctx, 1, nil, 3, 15, ""); err != nil {
		t.Fatal(err)
	}

	_, err := svc.FinishExam(ctx, 1)
	if err == nil {
		t.Fatal("expected error from attempt persistence")
	}
	if len(attempts.created) != 0 {
		t.Fatal("attempt recorded despite failure")
	}
}

func TestFinishExamDeletedQuestionCountsIncorrect(t *testing.T) {
	bank := newFakeBank(3)
	svc := newTestExamService(bank, &fakeAttempts{}, newFakeSessions())
	ctx := context.Background()

	state, err := svc.StartExam(ctx, 1, nil, 3, 15, "")
	if err != nil {
		t.Fatal(err)
	}
	for i := range state.QuestionOrder {
		state.RecordAnswer(i, "A")
	}

	// One question vanishes between assembly and scoring.
	delete(bank.questions, state.QuestionOrder[1])

	report, err := svc.FinishExam(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if report.Total != 3 || report.Correct != 2 || report.Incorrect != 1 {
		t.Fatalf("report = %+v", report)
	}
	if len(report.Review) != 2 {
		t.Fatalf("review has %d entries, want 2 (deleted question omitted)", len(report.Review))
	}
}
