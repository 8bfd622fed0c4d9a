package definition

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateForGeneration(t *testing.T) {
	valid := Definition{ID: "d1", TaskName: "Medication count", Frequency: FrequencyDaily}
	require.NoError(t, ValidateForGeneration(valid))

	weekly := Definition{
		ID:             "w1",
		TaskName:       "Fire drill log",
		Frequency:      FrequencyWeekly,
		RecurrenceDays: []string{"Monday"},
	}
	require.NoError(t, ValidateForGeneration(weekly))

	monthly := Definition{
		ID:                   "m1",
		TaskName:             "Extinguisher audit",
		Frequency:            FrequencyMonthly,
		RecurrenceDayOfMonth: 31,
	}
	require.NoError(t, ValidateForGeneration(monthly))
}

func TestValidateForGeneration_Malformed(t *testing.T) {
	tests := []struct {
		name string
		def  Definition
		want error
	}{
		{
			name: "missing id",
			def:  Definition{TaskName: "x", Frequency: FrequencyDaily},
			want: ErrInvalidInput,
		},
		{
			name: "missing task name",
			def:  Definition{ID: "d1", Frequency: FrequencyDaily},
			want: ErrInvalidInput,
		},
		{
			name: "unknown frequency",
			def:  Definition{ID: "d1", TaskName: "x", Frequency: "hourly"},
			want: ErrUnknownFrequency,
		},
		{
			name: "weekly without days",
			def:  Definition{ID: "w1", TaskName: "x", Frequency: FrequencyWeekly},
			want: ErrNoRecurrenceDays,
		},
		{
			name: "monthly day zero",
			def:  Definition{ID: "m1", TaskName: "x", Frequency: FrequencyMonthly},
			want: ErrDayOfMonthRange,
		},
		{
			name: "monthly day out of range",
			def:  Definition{ID: "m2", TaskName: "x", Frequency: FrequencyMonthly, RecurrenceDayOfMonth: 32},
			want: ErrDayOfMonthRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, ValidateForGeneration(tt.def), tt.want)
		})
	}
}

func TestValidateForBackfill(t *testing.T) {
	def := Definition{
		ID:                  "d1",
		TaskName:            "Medication count",
		Frequency:           FrequencyDaily,
		StartDateForHistory: "2024-01-01",
	}
	require.NoError(t, ValidateForBackfill(def))

	def.StartDateForHistory = ""
	require.ErrorIs(t, ValidateForBackfill(def), ErrNoHistoryStart)

	def.StartDateForHistory = "01/01/2024"
	require.Error(t, ValidateForBackfill(def))
}

func TestHistoryStart(t *testing.T) {
	def := Definition{StartDateForHistory: "2024-03-15"}
	start, err := def.HistoryStart()
	require.NoError(t, err)
	require.Equal(t, "2024-03-15", start.String())

	_, err = Definition{}.HistoryStart()
	require.ErrorIs(t, err, ErrNoHistoryStart)
}
