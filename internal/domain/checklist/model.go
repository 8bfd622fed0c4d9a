package checklist

import (
	"time"

	"github.com/carebound/checklist-engine/internal/civil"
)

// Status represents the completion state of a checklist item.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusComplete Status = "Complete"
	StatusFlagged  Status = "Flagged"
)

// Item is one concrete, dated instance of a recurring task. Items are created
// exactly once by the materialization engine and mutated afterward by staff
// workflows; the engine never deletes or re-evaluates them.
type Item struct {
	ID string `json:"id"`

	// TaskID is a weak reference to the originating definition, used only
	// for lookup and backfill queries.
	TaskID string `json:"task_id"`

	// Snapshot of definition metadata at creation time, not a live join.
	TaskName      string `json:"task_name"`
	AssignedStaff string `json:"assigned_staff"`
	Validator     string `json:"validator"`
	Category      string `json:"category"`

	// DueDate is the date component of the materialization key.
	DueDate civil.Date `json:"due_date"`

	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`

	// Backfilled is true only for items produced by the backfill driver,
	// including the pending item it creates for today.
	Backfilled bool `json:"backfilled"`

	LastCompletedOn *civil.Date `json:"last_completed_on,omitempty"`
	CompletedBy     string      `json:"completed_by,omitempty"`
	EvidenceLink    string      `json:"evidence_link,omitempty"`
	Notes           string      `json:"notes,omitempty"`
}

// Key is the idempotency key identifying a unique checklist instance.
// For a given key, at most one item may exist.
type Key struct {
	TaskID  string
	DueDate civil.Date
}

// KeyOf returns the materialization key of an item.
func KeyOf(item Item) Key {
	return Key{TaskID: item.TaskID, DueDate: item.DueDate}
}

// String renders the key for logging.
func (k Key) String() string {
	return k.TaskID + "@" + k.DueDate.String()
}
