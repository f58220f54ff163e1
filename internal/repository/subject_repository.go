package repository

import (
	"context"

	"github.com/drillbank/drillbank-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SubjectRepository struct {
	pool *pgxpool.Pool
}

func NewSubjectRepository(pool *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{pool: pool}
}

func (r *SubjectRepository) Create(ctx context.Context, s *model.Subject) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO subjects (name) VALUES ($1) RETURNING id, created_at`,
		s.Name).Scan(&s.ID, &s.CreatedAt)
}

func (r *SubjectRepository) GetAll(ctx context.Context) ([]model.Subject, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, created_at FROM subjects ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []model.Subject
	for rows.Next() {
		var s model.Subject
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt); err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

// GetAllWithCounts returns subjects in name order with their question counts.
func (r *SubjectRepository) GetAllWithCounts(ctx context.Context) ([]model.SubjectWithCount, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT s.id, s.name, s.created_at, COUNT(q.id)
		 FROM subjects s
		 LEFT JOIN questions q ON q.subject_id = s.id
		 GROUP BY s.id, s.name, s.created_at
		 ORDER BY s.name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []model.SubjectWithCount
	for rows.Next() {
		var s model.SubjectWithCount
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt, &s.QuestionCount); err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

func (r *SubjectRepository) Update(ctx context.Context, s *model.Subject) error {
	_, err := r.pool.Exec(ctx, `UPDATE subjects SET name = $1 WHERE id = $2`, s.Name, s.ID)
	return err
}

// Delete removes a subject; its questions cascade at the schema level.
func (r *SubjectRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	return err
}
