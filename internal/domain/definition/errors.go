package definition

import "errors"

var (
	// ErrUnknownFrequency indicates a frequency outside daily/weekly/monthly.
	ErrUnknownFrequency = errors.New("unknown frequency")
	// ErrNoRecurrenceDays indicates a weekly definition with no weekdays configured.
	ErrNoRecurrenceDays = errors.New("weekly definition has no recurrence days")
	// ErrDayOfMonthRange indicates a monthly day outside 1-31.
	ErrDayOfMonthRange = errors.New("recurrence day of month must be between 1 and 31")
	// ErrNoHistoryStart indicates a history-enabled definition without a start date.
	ErrNoHistoryStart = errors.New("missing history start date")
	// ErrInvalidInput indicates required definition fields are missing.
	ErrInvalidInput = errors.New("invalid definition input")
)
