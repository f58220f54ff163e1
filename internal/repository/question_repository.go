package repository

import (
	"context"

	"github.com/drillbank/drillbank-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// QuestionRepository handles question-bank data access. It is the storage
// side of the question-bank accessor the exam core consumes.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// ListEligibleIDs resolves the identifiers eligible for exam assembly.
// An empty subjectIDs slice means the whole bank.
func (r *QuestionRepository) ListEligibleIDs(ctx context.Context, subjectIDs []int) ([]int, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if len(subjectIDs) == 0 {
		rows, err = r.pool.Query(ctx, `SELECT id FROM questions`)
	} else {
		rows, err = r.pool.Query(ctx, `SELECT id FROM questions WHERE subject_id = ANY($1)`, subjectIDs)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetByIDs fetches full question rows (including correct option) for the
// given identifier set. Order of the result is unspecified; callers that
// care re-order by ID.
func (r *QuestionRepository) GetByIDs(ctx context.Context, ids []int) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, subject_id, question, option_a, option_b, option_c, option_d, correct_option, batch_id, created_at
		 FROM questions WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQuestions(rows)
}

// GetByID retrieves one question.
func (r *QuestionRepository) GetByID(ctx context.Context, id int) (*model.Question, error) {
	q := &model.Question{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, subject_id, question, option_a, option_b, option_c, option_d, correct_option, batch_id, created_at
		 FROM questions WHERE id = $1`, id,
	).Scan(&q.ID, &q.SubjectID, &q.QuestionText, &q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD,
		&q.CorrectOption, &q.BatchID, &q.CreatedAt)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// ListPaginated retrieves the admin list view, newest first, with the
// subject name joined in.
func (r *QuestionRepository) ListPaginated(ctx context.Context, limit, offset int) ([]model.QuestionSummary, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM questions`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT q.id, COALESCE(s.name, ''), q.question
		 FROM questions q
		 LEFT JOIN subjects s ON q.subject_id = s.id
		 ORDER BY q.id DESC
		 LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var summaries []model.QuestionSummary
	for rows.Next() {
		var qs model.QuestionSummary
		if err := rows.Scan(&qs.ID, &qs.SubjectName, &qs.QuestionText); err != nil {
			return nil, 0, err
		}
		summaries = append(summaries, qs)
	}
	return summaries, total, rows.Err()
}

// Create inserts a new question.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO questions (subject_id, question, option_a, option_b, option_c, option_d, correct_option, batch_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`,
		q.SubjectID, q.QuestionText, q.OptionA, q.OptionB, q.OptionC, q.OptionD, q.CorrectOption, q.BatchID,
	).Scan(&q.ID, &q.CreatedAt)
}

// BulkInsert inserts imported questions under one batch in a single
// round trip. All rows share the batch ID.
func (r *QuestionRepository) BulkInsert(ctx context.Context, batchID int, questions []model.Question) error {
	batch := &pgx.Batch{}
	for i := range questions {
		q := &questions[i]
		batch.Queue(
			`INSERT INTO questions (subject_id, question, option_a, option_b, option_c, option_d, correct_option, batch_id)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			q.SubjectID, q.QuestionText, q.OptionA, q.OptionB, q.OptionC, q.OptionD, q.CorrectOption, batchID,
		)
	}
	return r.pool.SendBatch(ctx, batch).Close()
}

// Update modifies a question.
func (r *QuestionRepository) Update(ctx context.Context, q *model.Question) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE questions
		 SET subject_id = $1, question = $2, option_a = $3, option_b = $4, option_c = $5, option_d = $6, correct_option = $7
		 WHERE id = $8`,
		q.SubjectID, q.QuestionText, q.OptionA, q.OptionB, q.OptionC, q.OptionD, q.CorrectOption, q.ID,
	)
	return err
}

// Delete removes a question by ID.
func (r *QuestionRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	return err
}

// DeleteByBatch removes every question belonging to an import batch.
func (r *QuestionRepository) DeleteByBatch(ctx context.Context, batchID int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE batch_id = $1`, batchID)
	return err
}

func scanQuestions(rows pgx.Rows) ([]model.Question, error) {
	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.SubjectID, &q.QuestionText, &q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD,
			&q.CorrectOption, &q.BatchID, &q.CreatedAt); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
