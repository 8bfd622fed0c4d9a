package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/carebound/checklist-engine/internal/civil"
	"github.com/carebound/checklist-engine/internal/domain/checklist"
	"github.com/carebound/checklist-engine/internal/domain/definition"
	"github.com/carebound/checklist-engine/internal/domain/materialize"
)

// DefinitionRepository is a mock for repository.DefinitionRepository.
type DefinitionRepository struct {
	mock.Mock
}

func (m *DefinitionRepository) Create(ctx context.Context, def *definition.Definition) error {
	args := m.Called(ctx, def)
	return args.Error(0)
}

func (m *DefinitionRepository) Get(ctx context.Context, id string) (*definition.Definition, error) {
	args := m.Called(ctx, id)
	if def, ok := args.Get(0).(*definition.Definition); ok {
		return def, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DefinitionRepository) ListAutoGenerate(ctx context.Context) ([]definition.Definition, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]definition.Definition); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DefinitionRepository) ListHistoryEnabled(ctx context.Context) ([]definition.Definition, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]definition.Definition); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ItemRepository is a mock for repository.ItemRepository.
type ItemRepository struct {
	mock.Mock
}

func (m *ItemRepository) Exists(ctx context.Context, taskID string, dueDate civil.Date) (bool, error) {
	args := m.Called(ctx, taskID, dueDate)
	return args.Bool(0), args.Error(1)
}

func (m *ItemRepository) CreateBatch(ctx context.Context, items []checklist.Item) (int, error) {
	args := m.Called(ctx, items)
	return args.Int(0), args.Error(1)
}

func (m *ItemRepository) Get(ctx context.Context, id string) (*checklist.Item, error) {
	args := m.Called(ctx, id)
	if item, ok := args.Get(0).(*checklist.Item); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ItemRepository) List(ctx context.Context, opts checklist.ListOptions) ([]checklist.Item, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]checklist.Item); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// RunLogRepository is a mock for repository.RunLogRepository.
type RunLogRepository struct {
	mock.Mock
}

func (m *RunLogRepository) Append(ctx context.Context, rec *materialize.RunRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *RunLogRepository) ListRecent(ctx context.Context, limit int) ([]materialize.RunRecord, error) {
	args := m.Called(ctx, limit)
	if list, ok := args.Get(0).([]materialize.RunRecord); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
