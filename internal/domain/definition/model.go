package definition

import (
	"time"

	"github.com/carebound/checklist-engine/internal/civil"
)

// Frequency describes how often a recurring task falls due.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// Definition is a recurring task template. The engine reads definitions and
// never mutates them; editing happens in the dashboard outside this module.
type Definition struct {
	ID        string    `json:"id"`
	TaskName  string    `json:"task_name"`
	Frequency Frequency `json:"frequency"`

	// RecurrenceDays holds full English weekday names ("Monday" ... "Sunday").
	// Meaningful only when Frequency is weekly.
	RecurrenceDays []string `json:"recurrence_days,omitempty"`

	// RecurrenceDayOfMonth is 1-31. Meaningful only when Frequency is monthly.
	RecurrenceDayOfMonth int `json:"recurrence_day_of_month,omitempty"`

	AssignedStaff string `json:"assigned_staff"`
	Validator     string `json:"validator"`
	Category      string `json:"category"`

	// AutoGenerateChecklist gates materialization entirely.
	AutoGenerateChecklist bool `json:"auto_generate_checklist"`

	// GenerateHistory opts the definition into backfill runs, starting from
	// StartDateForHistory.
	GenerateHistory bool `json:"generate_history"`

	// StartDateForHistory is kept as the raw YYYY-MM-DD string and parsed
	// lazily, so a malformed value degrades to a per-definition warning
	// instead of failing the whole fetch.
	StartDateForHistory string `json:"start_date_for_history,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// HistoryStart parses the backfill range start.
func (d Definition) HistoryStart() (civil.Date, error) {
	if d.StartDateForHistory == "" {
		return civil.Date{}, ErrNoHistoryStart
	}
	start, err := civil.ParseDate(d.StartDateForHistory)
	if err != nil {
		return civil.Date{}, err
	}
	return start, nil
}
