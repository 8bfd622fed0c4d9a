package definition

import "github.com/carebound/checklist-engine/internal/civil"

// IsDue reports whether a definition falls due on the given date.
//
// The check is pure: no clock, no I/O. Weekly matching compares full English
// weekday names case-sensitively; an empty set matches nothing. Monthly
// matching is exact — day 31 never matches a 30-day month, there is no
// end-of-month clamping.
func IsDue(def Definition, date civil.Date) bool {
	switch def.Frequency {
	case FrequencyDaily:
		return true
	case FrequencyWeekly:
		weekday := date.Weekday().String()
		for _, day := range def.RecurrenceDays {
			if day == weekday {
				return true
			}
		}
		return false
	case FrequencyMonthly:
		return def.RecurrenceDayOfMonth >= 1 && date.Day == def.RecurrenceDayOfMonth
	default:
		return false
	}
}
