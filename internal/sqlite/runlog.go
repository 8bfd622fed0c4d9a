package sqlite

import (
	"context"
	"fmt"

	"github.com/carebound/checklist-engine/internal/domain/materialize"
)

// RunLogRepository implements repository.RunLogRepository for SQLite
type RunLogRepository struct {
	db *DB
}

// NewRunLogRepository creates a new RunLogRepository
func NewRunLogRepository(db *DB) *RunLogRepository {
	return &RunLogRepository{db: db}
}

// Append inserts a new run record
func (r *RunLogRepository) Append(ctx context.Context, rec *materialize.RunRecord) error {
	query := `
		INSERT INTO run_log (
			kind, run_date, started_at, finished_at,
			created_count, skipped_count, error
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		rec.Kind,
		rec.RunDate,
		rec.StartedAt,
		rec.FinishedAt,
		rec.Created,
		rec.Skipped,
		rec.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to append run record: %w", err)
	}

	id, err := result.LastInsertId()
	if err == nil {
		rec.ID = id
	}

	return nil
}

// ListRecent returns the most recent runs, newest first.
func (r *RunLogRepository) ListRecent(ctx context.Context, limit int) ([]materialize.RunRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT
			id, kind, run_date, started_at, finished_at,
			created_count, skipped_count, error
		FROM run_log
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var recs []materialize.RunRecord
	for rows.Next() {
		var rec materialize.RunRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.Kind,
			&rec.RunDate,
			&rec.StartedAt,
			&rec.FinishedAt,
			&rec.Created,
			&rec.Skipped,
			&rec.Error,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run record: %w", err)
		}
		recs = append(recs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run rows: %w", err)
	}

	return recs, nil
}
