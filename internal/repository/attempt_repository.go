package repository

import (
	"context"

	"github.com/drillbank/drillbank-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AttemptRepository is the append-only attempt history. Rows are never
// updated or deleted by the application.
type AttemptRepository struct {
	pool *pgxpool.Pool
}

// NewAttemptRepository creates a new AttemptRepository.
func NewAttemptRepository(pool *pgxpool.Pool) *AttemptRepository {
	return &AttemptRepository{pool: pool}
}

// Create appends one scored attempt.
func (r *AttemptRepository) Create(ctx context.Context, a *model.ExamAttempt) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO exam_attempts (user_id, total_questions, correct_count, incorrect_count, accuracy)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		a.UserID, a.Total, a.Correct, a.Incorrect, a.Accuracy,
	).Scan(&a.ID, &a.CreatedAt)
}

// GetUserStats aggregates a user's attempt history for the dashboard.
func (r *AttemptRepository) GetUserStats(ctx context.Context, userID int) (*model.UserAttemptStats, error) {
	stats := &model.UserAttemptStats{}
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(correct_count), 0), COALESCE(SUM(incorrect_count), 0)
		 FROM exam_attempts WHERE user_id = $1`, userID,
	).Scan(&stats.Attempted, &stats.Correct, &stats.Incorrect)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// ListByUser returns a user's attempts, newest first.
func (r *AttemptRepository) ListByUser(ctx context.Context, userID, limit int) ([]model.ExamAttempt, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, total_questions, correct_count, incorrect_count, accuracy, created_at
		 FROM exam_attempts WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []model.ExamAttempt
	for rows.Next() {
		var a model.ExamAttempt
		if err := rows.Scan(&a.ID, &a.UserID, &a.Total, &a.Correct, &a.Incorrect, &a.Accuracy, &a.CreatedAt); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}
