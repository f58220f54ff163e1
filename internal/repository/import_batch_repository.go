package repository

import (
	"context"

	"github.com/drillbank/drillbank-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ImportBatchRepository handles import batch bookkeeping.
type ImportBatchRepository struct {
	pool *pgxpool.Pool
}

// NewImportBatchRepository creates a new ImportBatchRepository.
func NewImportBatchRepository(pool *pgxpool.Pool) *ImportBatchRepository {
	return &ImportBatchRepository{pool: pool}
}

// Create records a new batch for an uploaded file.
func (r *ImportBatchRepository) Create(ctx context.Context, b *model.ImportBatch) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO import_batches (filename) VALUES ($1) RETURNING id, created_at`,
		b.Filename).Scan(&b.ID, &b.CreatedAt)
}

// GetAll returns batches, newest first.
func (r *ImportBatchRepository) GetAll(ctx context.Context) ([]model.ImportBatch, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, filename, created_at FROM import_batches ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batches []model.ImportBatch
	for rows.Next() {
		var b model.ImportBatch
		if err := rows.Scan(&b.ID, &b.Filename, &b.CreatedAt); err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}

// Delete removes a batch record. Callers delete the batch's questions
// first; the FK alone would only null out batch_id.
func (r *ImportBatchRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM import_batches WHERE id = $1`, id)
	return err
}
