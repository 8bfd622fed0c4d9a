package materialize

import (
	"time"

	"github.com/carebound/checklist-engine/internal/civil"
)

// RunKind identifies which driver produced a run.
type RunKind string

const (
	KindDaily    RunKind = "daily"
	KindBackfill RunKind = "backfill"
)

// RunResult summarizes one driver invocation. A zero-creation run is the
// expected common case, not an error.
type RunResult struct {
	Created int `json:"created_count"`
	Skipped int `json:"skipped_count"`
}

// RunRecord is a persisted run-log entry.
type RunRecord struct {
	ID         int64      `json:"id"`
	Kind       RunKind    `json:"kind"`
	RunDate    civil.Date `json:"run_date"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt time.Time  `json:"finished_at"`
	Created    int        `json:"created_count"`
	Skipped    int        `json:"skipped_count"`
	Error      string     `json:"error,omitempty"`
}
