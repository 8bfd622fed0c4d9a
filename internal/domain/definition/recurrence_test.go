package definition

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/carebound/checklist-engine/internal/civil"
)

func mustDate(t *testing.T, s string) civil.Date {
	t.Helper()
	d, err := civil.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestIsDue_Daily(t *testing.T) {
	def := Definition{ID: "d1", TaskName: "Medication count", Frequency: FrequencyDaily}

	require.True(t, IsDue(def, mustDate(t, "2024-01-01")))
	require.True(t, IsDue(def, mustDate(t, "2024-02-29")))
	require.True(t, IsDue(def, mustDate(t, "2024-12-31")))
}

func TestIsDue_Weekly(t *testing.T) {
	def := Definition{
		ID:             "w1",
		TaskName:       "Fire drill log",
		Frequency:      FrequencyWeekly,
		RecurrenceDays: []string{"Monday", "Thursday"},
	}

	require.True(t, IsDue(def, mustDate(t, "2024-01-01")), "Monday")
	require.True(t, IsDue(def, mustDate(t, "2024-01-04")), "Thursday")
	require.False(t, IsDue(def, mustDate(t, "2024-01-02")), "Tuesday")
	require.False(t, IsDue(def, mustDate(t, "2024-01-07")), "Sunday")
}

func TestIsDue_Weekly_EmptyDaysMatchesNothing(t *testing.T) {
	def := Definition{ID: "w2", TaskName: "Orphan", Frequency: FrequencyWeekly}

	date := mustDate(t, "2024-01-01")
	for i := 0; i < 7; i++ {
		require.False(t, IsDue(def, date.AddDays(i)))
	}
}

func TestIsDue_Weekly_NamesAreCaseSensitive(t *testing.T) {
	def := Definition{
		ID:             "w3",
		TaskName:       "Sanitation check",
		Frequency:      FrequencyWeekly,
		RecurrenceDays: []string{"monday", "MONDAY", "Mon"},
	}

	require.False(t, IsDue(def, mustDate(t, "2024-01-01")))
}

func TestIsDue_Monthly(t *testing.T) {
	def := Definition{
		ID:                   "m1",
		TaskName:             "Extinguisher audit",
		Frequency:            FrequencyMonthly,
		RecurrenceDayOfMonth: 15,
	}

	require.True(t, IsDue(def, mustDate(t, "2024-01-15")))
	require.True(t, IsDue(def, mustDate(t, "2024-02-15")))
	require.False(t, IsDue(def, mustDate(t, "2024-01-14")))
	require.False(t, IsDue(def, mustDate(t, "2024-01-16")))
}

func TestIsDue_Monthly_Day31SkipsShortMonths(t *testing.T) {
	def := Definition{
		ID:                   "m2",
		TaskName:             "Ledger close",
		Frequency:            FrequencyMonthly,
		RecurrenceDayOfMonth: 31,
	}

	// Day 31 never matches a shorter month; short months are skipped
	// entirely rather than clamped to their last day.
	for _, month := range []string{"2024-04", "2024-06", "2024-09", "2024-11"} {
		first := mustDate(t, month+"-01")
		for d := first; d.Month == first.Month; d = d.AddDays(1) {
			require.False(t, IsDue(def, d), "unexpected due date %s", d)
		}
	}

	require.True(t, IsDue(def, mustDate(t, "2024-01-31")))
	require.True(t, IsDue(def, mustDate(t, "2024-03-31")))
	require.False(t, IsDue(def, mustDate(t, "2024-02-29")))
}

func TestIsDue_UnknownFrequency(t *testing.T) {
	def := Definition{ID: "x1", TaskName: "Mystery", Frequency: "fortnightly"}
	require.False(t, IsDue(def, mustDate(t, "2024-01-01")))
}
