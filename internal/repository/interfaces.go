package repository

import (
	"context"

	"github.com/carebound/checklist-engine/internal/civil"
	"github.com/carebound/checklist-engine/internal/domain/checklist"
	"github.com/carebound/checklist-engine/internal/domain/definition"
	"github.com/carebound/checklist-engine/internal/domain/materialize"
)

// DefinitionRepository manages recurring task definition persistence. The
// engine only reads; Create exists for seeding and tests.
type DefinitionRepository interface {
	Create(ctx context.Context, def *definition.Definition) error
	Get(ctx context.Context, id string) (*definition.Definition, error)
	ListAutoGenerate(ctx context.Context) ([]definition.Definition, error)
	ListHistoryEnabled(ctx context.Context) ([]definition.Definition, error)
}

// ItemRepository manages checklist item persistence
type ItemRepository interface {
	Exists(ctx context.Context, taskID string, dueDate civil.Date) (bool, error)
	CreateBatch(ctx context.Context, items []checklist.Item) (int, error)
	Get(ctx context.Context, id string) (*checklist.Item, error)
	List(ctx context.Context, opts checklist.ListOptions) ([]checklist.Item, error)
}

// RunLogRepository manages the driver run log
type RunLogRepository interface {
	Append(ctx context.Context, rec *materialize.RunRecord) error
	ListRecent(ctx context.Context, limit int) ([]materialize.RunRecord, error)
}
