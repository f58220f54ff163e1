package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/drillbank/drillbank-backend/internal/model"
	"github.com/drillbank/drillbank-backend/internal/repository"
	"github.com/rs/zerolog"
)

// ErrNotJSONArray is returned when an import payload is not a JSON array.
var ErrNotJSONArray = errors.New("import payload must be a JSON array")

// QuestionService handles question management and bulk JSON import.
type QuestionService struct {
	questionRepo *repository.QuestionRepository
	batchRepo    *repository.ImportBatchRepository
	log          zerolog.Logger
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(
	questionRepo *repository.QuestionRepository,
	batchRepo *repository.ImportBatchRepository,
	log zerolog.Logger,
) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		batchRepo:    batchRepo,
		log:          log.With().Str("component", "question_service").Logger(),
	}
}

func (s *QuestionService) ListPaginated(ctx context.Context, limit, offset int) ([]model.QuestionSummary, int, error) {
	return s.questionRepo.ListPaginated(ctx, limit, offset)
}

func (s *QuestionService) GetByID(ctx context.Context, id int) (*model.Question, error) {
	return s.questionRepo.GetByID(ctx, id)
}

func (s *QuestionService) Create(ctx context.Context, q *model.Question) error {
	return s.questionRepo.Create(ctx, q)
}

func (s *QuestionService) Update(ctx context.Context, q *model.Question) error {
	return s.questionRepo.Update(ctx, q)
}

func (s *QuestionService) Delete(ctx context.Context, id int) error {
	return s.questionRepo.Delete(ctx, id)
}

// ListBatches returns import batches, newest first.
func (s *QuestionService) ListBatches(ctx context.Context) ([]model.ImportBatch, error) {
	return s.batchRepo.GetAll(ctx)
}

// DeleteBatch removes an import batch and every question it brought in.
// Questions first, then the batch record.
func (s *QuestionService) DeleteBatch(ctx context.Context, batchID int) error {
	if err := s.questionRepo.DeleteByBatch(ctx, batchID); err != nil {
		return fmt.Errorf("delete batch questions: %w", err)
	}
	return s.batchRepo.Delete(ctx, batchID)
}

// Import ingests one uploaded JSON file: rows are validated eagerly,
// valid rows are bulk-inserted under a fresh batch, and the report names
// every rejected row. A file with zero valid rows still records its
// batch, mirroring how imports have always been tracked.
func (s *QuestionService) Import(ctx context.Context, filename string, payload []byte) (*model.ImportReport, error) {
	questions, rowErrors, skipped, err := ParseImportPayload(payload)
	if err != nil {
		return nil, err
	}

	batch := &model.ImportBatch{Filename: filename}
	if err := s.batchRepo.Create(ctx, batch); err != nil {
		return nil, fmt.Errorf("create import batch: %w", err)
	}

	if len(questions) > 0 {
		if err := s.questionRepo.BulkInsert(ctx, batch.ID, questions); err != nil {
			return nil, fmt.Errorf("bulk insert questions: %w", err)
		}
	}

	s.log.Info().
		Str("filename", filename).
		Int("batch_id", batch.ID).
		Int("inserted", len(questions)).
		Int("skipped", skipped+len(rowErrors)).
		Msg("Import completed")

	return &model.ImportReport{
		BatchID:  batch.ID,
		Filename: filename,
		Inserted: len(questions),
		Skipped:  skipped + len(rowErrors),
		Errors:   rowErrors,
	}, nil
}

// ParseImportPayload decodes a JSON import file into insertable questions
// plus a per-row error report. Array elements that are not objects are
// skipped (counted, not reported as errors) to stay compatible with
// existing import files.
func ParseImportPayload(payload []byte) (questions []model.Question, rowErrors []model.ImportRowError, skipped int, err error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(payload, &elements); err != nil {
		return nil, nil, 0, ErrNotJSONArray
	}

	for i, raw := range elements {
		var item model.ImportItem
		if err := json.Unmarshal(raw, &item); err != nil {
			skipped++
			continue
		}
		if reason := validateImportItem(&item); reason != "" {
			rowErrors = append(rowErrors, model.ImportRowError{Row: i, Reason: reason})
			continue
		}
		questions = append(questions, model.Question{
			SubjectID:     *item.SubjectID,
			QuestionText:  *item.QuestionText,
			OptionA:       *item.OptionA,
			OptionB:       *item.OptionB,
			OptionC:       *item.OptionC,
			OptionD:       *item.OptionD,
			CorrectOption: *item.CorrectOption,
		})
	}
	return questions, rowErrors, skipped, nil
}

func validateImportItem(item *model.ImportItem) string {
	switch {
	case item.SubjectID == nil:
		return "missing subject_id"
	case item.QuestionText == nil || *item.QuestionText == "":
		return "missing question"
	case item.OptionA == nil || item.OptionB == nil || item.OptionC == nil || item.OptionD == nil:
		return "missing one or more options"
	case item.CorrectOption == nil || *item.CorrectOption == "":
		return "missing correct_option"
	default:
		return ""
	}
}
