package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/carebound/checklist-engine/internal/civil"
	"github.com/carebound/checklist-engine/internal/domain/checklist"
	"github.com/carebound/checklist-engine/internal/repository"
)

// ItemRepository implements repository.ItemRepository for SQLite
type ItemRepository struct {
	db *DB
}

// NewItemRepository creates a new ItemRepository
func NewItemRepository(db *DB) *ItemRepository {
	return &ItemRepository{db: db}
}

const itemColumns = `
	id, task_id, task_name, assigned_staff, validator, category,
	due_date, status, created_at, backfilled, last_completed_on,
	completed_by, evidence_link, notes`

// Exists reports whether an item holds the (taskID, dueDate) key. Due dates
// compare as YYYY-MM-DD strings, never timestamps.
func (r *ItemRepository) Exists(ctx context.Context, taskID string, dueDate civil.Date) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM checklist_items
			WHERE task_id = ? AND due_date = ?
			LIMIT 1
		)
	`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, taskID, dueDate).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check item existence: %w", err)
	}
	return exists, nil
}

// CreateBatch persists all items in a single transaction and returns the
// number inserted. An item whose materialization key already exists is left
// in place untouched and not counted; any other failure rolls back the whole
// batch.
func (r *ItemRepository) CreateBatch(ctx context.Context, items []checklist.Item) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin batch: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO checklist_items (
			id, task_id, task_name, assigned_staff, validator, category,
			due_date, status, created_at, backfilled, last_completed_on,
			completed_by, evidence_link, notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(task_id, due_date) DO NOTHING
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare batch insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, item := range items {
		result, err := stmt.ExecContext(ctx,
			item.ID,
			item.TaskID,
			item.TaskName,
			item.AssignedStaff,
			item.Validator,
			item.Category,
			item.DueDate,
			item.Status,
			item.CreatedAt,
			item.Backfilled,
			item.LastCompletedOn,
			item.CompletedBy,
			item.EvidenceLink,
			item.Notes,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert item %s: %w", checklist.KeyOf(item), err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to get rows affected: %w", err)
		}
		inserted += int(affected)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit batch: %w", err)
	}

	return inserted, nil
}

// Get retrieves an item by ID
func (r *ItemRepository) Get(ctx context.Context, id string) (*checklist.Item, error) {
	query := `SELECT` + itemColumns + `
		FROM checklist_items
		WHERE id = ?
	`

	item, err := scanItem(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

// List returns items ordered by due date descending then creation time
// descending, the dashboard's display order.
func (r *ItemRepository) List(ctx context.Context, opts checklist.ListOptions) ([]checklist.Item, error) {
	query := `SELECT` + itemColumns + `
		FROM checklist_items
	`

	var args []any
	var conditions []string

	if opts.TaskID != "" {
		conditions = append(conditions, "task_id = ?")
		args = append(args, opts.TaskID)
	}
	if opts.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, opts.Status)
	}

	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}

	query += " ORDER BY due_date DESC, created_at DESC"

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}
	if opts.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, opts.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []checklist.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item rows: %w", err)
	}

	return items, nil
}

func scanItem(row rowScanner) (*checklist.Item, error) {
	var item checklist.Item
	var lastCompletedOn sql.NullString
	if err := row.Scan(
		&item.ID,
		&item.TaskID,
		&item.TaskName,
		&item.AssignedStaff,
		&item.Validator,
		&item.Category,
		&item.DueDate,
		&item.Status,
		&item.CreatedAt,
		&item.Backfilled,
		&lastCompletedOn,
		&item.CompletedBy,
		&item.EvidenceLink,
		&item.Notes,
	); err != nil {
		return nil, err
	}

	if lastCompletedOn.Valid && lastCompletedOn.String != "" {
		completed, err := civil.ParseDate(lastCompletedOn.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse last_completed_on: %w", err)
		}
		item.LastCompletedOn = &completed
	}

	return &item, nil
}
