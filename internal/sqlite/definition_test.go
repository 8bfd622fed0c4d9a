package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/carebound/checklist-engine/internal/domain/definition"
	"github.com/carebound/checklist-engine/internal/repository"
)

func TestDefinitionRepository_CreateGet(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewDefinitionRepository(db)

	def := definition.Definition{
		ID:                    "def-1",
		TaskName:              "Weekly fire drill log",
		Frequency:             definition.FrequencyWeekly,
		RecurrenceDays:        []string{"Monday", "Thursday"},
		AssignedStaff:         "Safety Officer",
		Validator:             "Facility Manager",
		Category:              "Safety",
		AutoGenerateChecklist: true,
		GenerateHistory:       true,
		StartDateForHistory:   "2024-01-01",
	}

	require.NoError(t, repo.Create(ctx, &def))
	require.False(t, def.CreatedAt.IsZero())

	loaded, err := repo.Get(ctx, "def-1")
	require.NoError(t, err)
	require.Equal(t, def.TaskName, loaded.TaskName)
	require.Equal(t, definition.FrequencyWeekly, loaded.Frequency)
	require.Equal(t, []string{"Monday", "Thursday"}, loaded.RecurrenceDays)
	require.Equal(t, "2024-01-01", loaded.StartDateForHistory)
	require.True(t, loaded.AutoGenerateChecklist)
	require.True(t, loaded.GenerateHistory)
}

func TestDefinitionRepository_GetNotFound(t *testing.T) {
	db := NewTestDB(t)

	_, err := NewDefinitionRepository(db).Get(context.Background(), "missing")
	require.Equal(t, repository.ErrNotFound, err)
}

func TestDefinitionRepository_DuplicateID(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewDefinitionRepository(db)

	def := definition.Definition{ID: "def-1", TaskName: "x", Frequency: definition.FrequencyDaily}
	require.NoError(t, repo.Create(ctx, &def))

	dup := definition.Definition{ID: "def-1", TaskName: "y", Frequency: definition.FrequencyDaily}
	require.Equal(t, repository.ErrDuplicateKey, repo.Create(ctx, &dup))
}

func TestDefinitionRepository_ListFilters(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewDefinitionRepository(db)

	insertDefinition(t, db, definition.Definition{
		ID: "auto-only", TaskName: "a", Frequency: definition.FrequencyDaily,
		AutoGenerateChecklist: true,
	})
	insertDefinition(t, db, definition.Definition{
		ID: "history-only", TaskName: "b", Frequency: definition.FrequencyDaily,
		GenerateHistory: true, StartDateForHistory: "2024-01-01",
	})
	insertDefinition(t, db, definition.Definition{
		ID: "both", TaskName: "c", Frequency: definition.FrequencyDaily,
		AutoGenerateChecklist: true, GenerateHistory: true, StartDateForHistory: "2024-01-01",
	})
	insertDefinition(t, db, definition.Definition{
		ID: "neither", TaskName: "d", Frequency: definition.FrequencyDaily,
	})

	auto, err := repo.ListAutoGenerate(ctx)
	require.NoError(t, err)
	require.Len(t, auto, 2)
	for _, def := range auto {
		require.True(t, def.AutoGenerateChecklist)
	}

	history, err := repo.ListHistoryEnabled(ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)
	for _, def := range history {
		require.True(t, def.GenerateHistory)
	}
}

func TestDefinitionRepository_EmptyRecurrenceDays(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewDefinitionRepository(db)

	def := definition.Definition{ID: "def-1", TaskName: "x", Frequency: definition.FrequencyDaily}
	require.NoError(t, repo.Create(ctx, &def))

	loaded, err := repo.Get(ctx, "def-1")
	require.NoError(t, err)
	require.Empty(t, loaded.RecurrenceDays)
}
