package checklist

import (
	"time"

	"github.com/google/uuid"

	"github.com/carebound/checklist-engine/internal/civil"
	"github.com/carebound/checklist-engine/internal/domain/definition"
)

const (
	backfillCompletedBy = "System (Backfill)"
	backfillNotes       = "Auto-completed during backfill."
)

// Build constructs a new checklist item from a definition and a due date.
//
// When historical is true (the due date lies strictly before the run date),
// the item is created already Complete with a synthetic completion marker;
// otherwise it is Pending with completion fields empty. The backfilled flag
// records which driver produced the item and is independent of historical:
// the backfill driver's item for today is Pending yet still backfilled.
func Build(def definition.Definition, dueDate civil.Date, historical, backfilled bool, now time.Time) Item {
	item := Item{
		ID:            uuid.NewString(),
		TaskID:        def.ID,
		TaskName:      def.TaskName,
		AssignedStaff: def.AssignedStaff,
		Validator:     def.Validator,
		Category:      def.Category,
		DueDate:       dueDate,
		Status:        StatusPending,
		CreatedAt:     now,
		Backfilled:    backfilled,
	}

	if historical {
		completedOn := dueDate
		item.Status = StatusComplete
		item.CompletedBy = backfillCompletedBy
		item.LastCompletedOn = &completedOn
		item.Notes = backfillNotes
	}

	return item
}
