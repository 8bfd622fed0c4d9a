package materialize

import (
	"context"

	"github.com/carebound/checklist-engine/internal/civil"
	"github.com/carebound/checklist-engine/internal/domain/checklist"
	"github.com/carebound/checklist-engine/internal/domain/definition"
)

// DefinitionRepository provides the recurring task definitions to sweep.
type DefinitionRepository interface {
	ListAutoGenerate(ctx context.Context) ([]definition.Definition, error)
	ListHistoryEnabled(ctx context.Context) ([]definition.Definition, error)
}

// ItemRepository provides existence checks and the atomic batch commit.
type ItemRepository interface {
	// Exists reports whether an item already holds the (taskID, dueDate) key.
	Exists(ctx context.Context, taskID string, dueDate civil.Date) (bool, error)
	// CreateBatch persists all items in a single transaction and returns the
	// number actually inserted. Items whose key already exists are skipped,
	// not treated as failures.
	CreateBatch(ctx context.Context, items []checklist.Item) (int, error)
}

// RunLogRepository records driver runs for observability.
type RunLogRepository interface {
	Append(ctx context.Context, rec *RunRecord) error
}
