package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/carebound/checklist-engine/internal/domain/definition"
	"github.com/carebound/checklist-engine/internal/repository"
)

// DefinitionRepository implements repository.DefinitionRepository for SQLite
type DefinitionRepository struct {
	db *DB
}

// NewDefinitionRepository creates a new DefinitionRepository
func NewDefinitionRepository(db *DB) *DefinitionRepository {
	return &DefinitionRepository{db: db}
}

const definitionColumns = `
	id, task_name, frequency, recurrence_days, recurrence_day_of_month,
	assigned_staff, validator, category, auto_generate_checklist,
	generate_history, start_date_for_history, created_at`

// Create inserts a new definition
func (r *DefinitionRepository) Create(ctx context.Context, def *definition.Definition) error {
	days, err := json.Marshal(def.RecurrenceDays)
	if err != nil {
		return fmt.Errorf("failed to encode recurrence days: %w", err)
	}

	createdAt := def.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
		INSERT INTO recurring_task_definitions (
			id, task_name, frequency, recurrence_days, recurrence_day_of_month,
			assigned_staff, validator, category, auto_generate_checklist,
			generate_history, start_date_for_history, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		def.ID,
		def.TaskName,
		def.Frequency,
		string(days),
		def.RecurrenceDayOfMonth,
		def.AssignedStaff,
		def.Validator,
		def.Category,
		def.AutoGenerateChecklist,
		def.GenerateHistory,
		def.StartDateForHistory,
		createdAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateKey
		}
		return fmt.Errorf("failed to create definition: %w", err)
	}

	def.CreatedAt = createdAt
	return nil
}

// Get retrieves a definition by ID
func (r *DefinitionRepository) Get(ctx context.Context, id string) (*definition.Definition, error) {
	query := `SELECT` + definitionColumns + `
		FROM recurring_task_definitions
		WHERE id = ?
	`

	def, err := scanDefinition(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get definition: %w", err)
	}
	return def, nil
}

// ListAutoGenerate returns definitions with checklist generation enabled, in
// a fixed order so repeated sweeps make identical decisions.
func (r *DefinitionRepository) ListAutoGenerate(ctx context.Context) ([]definition.Definition, error) {
	return r.list(ctx, "auto_generate_checklist = 1")
}

// ListHistoryEnabled returns definitions opted into backfill.
func (r *DefinitionRepository) ListHistoryEnabled(ctx context.Context) ([]definition.Definition, error) {
	return r.list(ctx, "generate_history = 1")
}

func (r *DefinitionRepository) list(ctx context.Context, where string) ([]definition.Definition, error) {
	query := `SELECT` + definitionColumns + `
		FROM recurring_task_definitions
		WHERE ` + where + `
		ORDER BY created_at, id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list definitions: %w", err)
	}
	defer rows.Close()

	var defs []definition.Definition
	for rows.Next() {
		def, err := scanDefinition(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan definition: %w", err)
		}
		defs = append(defs, *def)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating definition rows: %w", err)
	}

	return defs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDefinition(row rowScanner) (*definition.Definition, error) {
	var def definition.Definition
	var days string
	if err := row.Scan(
		&def.ID,
		&def.TaskName,
		&def.Frequency,
		&days,
		&def.RecurrenceDayOfMonth,
		&def.AssignedStaff,
		&def.Validator,
		&def.Category,
		&def.AutoGenerateChecklist,
		&def.GenerateHistory,
		&def.StartDateForHistory,
		&def.CreatedAt,
	); err != nil {
		return nil, err
	}

	if days != "" && days != "null" {
		if err := json.Unmarshal([]byte(days), &def.RecurrenceDays); err != nil {
			return nil, fmt.Errorf("failed to decode recurrence days: %w", err)
		}
	}

	return &def, nil
}
