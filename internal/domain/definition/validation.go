package definition

import "strings"

// ValidateForGeneration checks that a definition is well-formed enough to
// materialize checklist items from. A failure here skips the definition for
// the current run; it never aborts the sweep.
func ValidateForGeneration(def Definition) error {
	if strings.TrimSpace(def.ID) == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(def.TaskName) == "" {
		return ErrInvalidInput
	}

	switch def.Frequency {
	case FrequencyDaily:
		return nil
	case FrequencyWeekly:
		if len(def.RecurrenceDays) == 0 {
			return ErrNoRecurrenceDays
		}
		return nil
	case FrequencyMonthly:
		if def.RecurrenceDayOfMonth < 1 || def.RecurrenceDayOfMonth > 31 {
			return ErrDayOfMonthRange
		}
		return nil
	default:
		return ErrUnknownFrequency
	}
}

// ValidateForBackfill extends ValidateForGeneration with the history range
// requirements of the backfill driver.
func ValidateForBackfill(def Definition) error {
	if err := ValidateForGeneration(def); err != nil {
		return err
	}
	if _, err := def.HistoryStart(); err != nil {
		return err
	}
	return nil
}
