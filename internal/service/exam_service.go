package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/drillbank/drillbank-backend/internal/model"
	"github.com/drillbank/drillbank-backend/internal/repository"
	"github.com/rs/zerolog"
)

// Domain errors.
var (
	ErrInvalidConfiguration = errors.New("invalid exam configuration")
	ErrNoEligibleQuestions  = errors.New("no questions available for selection")
	ErrSessionNotFound      = errors.New("no exam session in progress")
	ErrEmptySession         = errors.New("exam session holds no questions")
)

// QuestionBank is the question-bank lookup capability the exam core
// consumes. Satisfied by repository.QuestionRepository.
type QuestionBank interface {
	ListEligibleIDs(ctx context.Context, subjectIDs []int) ([]int, error)
	GetByIDs(ctx context.Context, ids []int) ([]model.Question, error)
}

// AttemptLog is the result-persistence capability the Scorer appends to.
// Satisfied by repository.AttemptRepository.
type AttemptLog interface {
	Create(ctx context.Context, a *model.ExamAttempt) error
}

// SessionStore holds serialized exam session state between requests.
// Satisfied by repository.ExamSessionStore.
type SessionStore interface {
	Save(ctx context.Context, userID int, state *model.ExamSessionState) error
	Get(ctx context.Context, userID int) (*model.ExamSessionState, error)
	Pop(ctx context.Context, userID int) (*model.ExamSessionState, error)
}

// ExamService owns the exam session lifecycle: assembly, navigation and
// scoring. Storage is injected so the whole state machine runs against
// fakes in tests.
type ExamService struct {
	bank     QuestionBank
	attempts AttemptLog
	sessions SessionStore
	log      zerolog.Logger
}

// NewExamService creates a new ExamService.
func NewExamService(bank QuestionBank, attempts AttemptLog, sessions SessionStore, log zerolog.Logger) *ExamService {
	return &ExamService{
		bank:     bank,
		attempts: attempts,
		sessions: sessions,
		log:      log.With().Str("component", "exam_service").Logger(),
	}
}

// QuestionView is what the question page shows: never the correct option.
type QuestionView struct {
	Index            int               `json:"index"`
	Total            int               `json:"total"`
	QuestionID       int               `json:"question_id"`
	QuestionText     string            `json:"question"`
	Options          map[string]string `json:"options"`
	Selected         string            `json:"selected,omitempty"`
	AnsweredCount    int               `json:"answered_count"`
	RemainingSeconds int               `json:"remaining_seconds"`
}

// ReviewEntry is one question of the post-exam review.
type ReviewEntry struct {
	QuestionID int               `json:"question_id"`
	Question   string            `json:"question"`
	Options    map[string]string `json:"options"`
	Correct    string            `json:"correct"`
	Selected   string            `json:"selected,omitempty"`
}

// ScoreReport is the final scored review of one exam session.
type ScoreReport struct {
	Total     int           `json:"total"`
	Correct   int           `json:"correct"`
	Incorrect int           `json:"incorrect"`
	Accuracy  int           `json:"accuracy"`
	Review    []ReviewEntry `json:"review"`
}

// SessionSummary is the reload-recovery view of an in-progress session.
type SessionSummary struct {
	Total            int            `json:"total"`
	Answers          map[int]string `json:"answers"`
	AnsweredCount    int            `json:"answered_count"`
	TimeLimitSeconds int            `json:"time_limit_seconds"`
	RemainingSeconds int            `json:"remaining_seconds"`
}

// StartExam assembles a new session for the user and stores it,
// overwriting any stale session left behind.
//
// count is clamped to at most model.MaxExamQuestions; a non-positive
// count is a caller error. timeLimitMinutes is clamped up to the
// 5-minute floor. An empty subjectIDs slice means the whole bank.
//
// mode ("random" or "progress") is accepted for forward compatibility
// but both use the same uniform shuffle, as the product always has.
func (s *ExamService) StartExam(ctx context.Context, userID int, subjectIDs []int, count, timeLimitMinutes int, mode string) (*model.ExamSessionState, error) {
	if count <= 0 {
		return nil, ErrInvalidConfiguration
	}
	if count > model.MaxExamQuestions {
		count = model.MaxExamQuestions
	}
	if timeLimitMinutes < model.MinTimeLimitMinutes {
		timeLimitMinutes = model.MinTimeLimitMinutes
	}

	eligible, err := s.bank.ListEligibleIDs(ctx, subjectIDs)
	if err != nil {
		return nil, fmt.Errorf("list eligible questions: %w", err)
	}
	if len(eligible) == 0 {
		return nil, ErrNoEligibleQuestions
	}

	rand.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})
	if count > len(eligible) {
		count = len(eligible)
	}
	order := make([]int, count)
	copy(order, eligible[:count])

	state := model.NewExamSessionState(order, time.Now(), timeLimitMinutes*60)
	if err := s.sessions.Save(ctx, userID, state); err != nil {
		return nil, err
	}

	s.log.Info().
		Int("user_id", userID).
		Int("questions", len(order)).
		Int("time_limit_s", state.TimeLimitSeconds).
		Str("mode", mode).
		Msg("Exam session started")

	return state, nil
}

// ViewQuestion returns the question page at index. An index outside the
// session's range is not an error: it reports terminal=true, the signal
// to route to scoring.
func (s *ExamService) ViewQuestion(ctx context.Context, userID, index int) (*QuestionView, bool, error) {
	state, err := s.loadSession(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	if !state.InRange(index) {
		return nil, true, nil
	}

	qid := state.QuestionOrder[index]
	questions, err := s.bank.GetByIDs(ctx, []int{qid})
	if err != nil {
		return nil, false, fmt.Errorf("fetch question %d: %w", qid, err)
	}
	if len(questions) == 0 {
		// Question deleted mid-exam: treat as exam complete.
		return nil, true, nil
	}
	q := questions[0]

	selected, _ := state.AnswerAt(index)
	return &QuestionView{
		Index:            index,
		Total:            len(state.QuestionOrder),
		QuestionID:       q.ID,
		QuestionText:     q.QuestionText,
		Options:          q.Options(),
		Selected:         selected,
		AnsweredCount:    state.AnsweredCount(),
		RemainingSeconds: state.RemainingSeconds(time.Now()),
	}, false, nil
}

// AnswerAndNavigate records the carried answer (if any) at index, saves
// the session, and applies the navigation action. terminal=true means
// route to scoring; next is only meaningful when terminal is false.
func (s *ExamService) AnswerAndNavigate(ctx context.Context, userID, index int, answer string, dir model.Direction) (next int, terminal bool, err error) {
	state, err := s.loadSession(ctx, userID)
	if err != nil {
		return 0, false, err
	}
	if !state.InRange(index) {
		return 0, true, nil
	}

	if answer != "" {
		state.RecordAnswer(index, answer)
		if err := s.sessions.Save(ctx, userID, state); err != nil {
			return 0, false, err
		}
	}

	next, terminal = state.Navigate(index, dir)
	return next, terminal, nil
}

// GetSessionSummary returns the reload-recovery view of the user's
// in-progress session.
func (s *ExamService) GetSessionSummary(ctx context.Context, userID int) (*SessionSummary, error) {
	state, err := s.loadSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	answers := state.Answers
	if answers == nil {
		answers = map[int]string{}
	}
	return &SessionSummary{
		Total:            len(state.QuestionOrder),
		Answers:          answers,
		AnsweredCount:    state.AnsweredCount(),
		TimeLimitSeconds: state.TimeLimitSeconds,
		RemainingSeconds: state.RemainingSeconds(time.Now()),
	}, nil
}

// RemainingSeconds reports the countdown for the user's session without
// mutating it. Used by the timer stream.
func (s *ExamService) RemainingSeconds(ctx context.Context, userID int) (int, error) {
	state, err := s.loadSession(ctx, userID)
	if err != nil {
		return 0, err
	}
	return state.RemainingSeconds(time.Now()), nil
}

// FinishExam pops the user's session, scores it, appends one attempt, and
// returns the review. The pop makes scoring a one-time terminal
// operation: a second call without a new StartExam fails with
// ErrSessionNotFound. Any storage failure propagates before the attempt
// row is written, so there is never a partial attempt.
//
// The review preserves the session's question order rather than the
// storage fetch order.
func (s *ExamService) FinishExam(ctx context.Context, userID int) (*ScoreReport, error) {
	state, err := s.sessions.Pop(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNoSession) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if len(state.QuestionOrder) == 0 {
		return nil, ErrEmptySession
	}

	questions, err := s.bank.GetByIDs(ctx, state.QuestionOrder)
	if err != nil {
		return nil, fmt.Errorf("fetch questions: %w", err)
	}
	byID := make(map[int]*model.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	total := len(state.QuestionOrder)
	correct := 0
	review := make([]ReviewEntry, 0, total)

	for _, qid := range state.QuestionOrder {
		q, ok := byID[qid]
		if !ok {
			// Deleted since assembly: unanswerable, counts as incorrect.
			continue
		}
		selected := state.Answers[qid]
		if selected == q.CorrectOption {
			correct++
		}
		review = append(review, ReviewEntry{
			QuestionID: q.ID,
			Question:   q.QuestionText,
			Options:    q.Options(),
			Correct:    q.CorrectOption,
			Selected:   selected,
		})
	}

	incorrect := total - correct
	accuracy := int(math.RoundToEven(100 * float64(correct) / float64(max(total, 1))))

	attempt := &model.ExamAttempt{
		UserID:    userID,
		Total:     total,
		Correct:   correct,
		Incorrect: incorrect,
		Accuracy:  accuracy,
	}
	if err := s.attempts.Create(ctx, attempt); err != nil {
		return nil, fmt.Errorf("persist attempt: %w", err)
	}

	s.log.Info().
		Int("user_id", userID).
		Int("total", total).
		Int("correct", correct).
		Int("accuracy", accuracy).
		Msg("Exam scored")

	return &ScoreReport{
		Total:     total,
		Correct:   correct,
		Incorrect: incorrect,
		Accuracy:  accuracy,
		Review:    review,
	}, nil
}

func (s *ExamService) loadSession(ctx context.Context, userID int) (*model.ExamSessionState, error) {
	state, err := s.sessions.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNoSession) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return state, nil
}
