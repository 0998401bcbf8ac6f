// Package daterange validates user-selected report ranges against the
// constraints of the Wolkvox reporting API and encodes them into its
// compact numeric timestamp format.
package daterange

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrMissingRange indicates one or both dates were not supplied.
	ErrMissingRange = errors.New("start and end dates are required")
	// ErrCrossMonthRange indicates the dates span more than one calendar
	// month. The reporting API cannot produce reports across months, so the
	// query is rejected before any request is issued.
	ErrCrossMonthRange = errors.New("report range must stay within a single calendar month")
)

// wireLayout is the 14-digit YYYYMMDDhhmmss form fixed by the upstream
// reports_manager contract.
const wireLayout = "20060102150405"

// Range is a validated, normalized query range ready for transmission.
type Range struct {
	Start   time.Time
	End     time.Time
	DateIni string
	DateEnd string
}

// Validator normalizes and encodes report ranges. Calendar-month
// comparison happens in the configured location.
type Validator struct {
	location *time.Location
}

// NewValidator creates a validator that evaluates calendar boundaries in
// the given location. A nil location means Local.
func NewValidator(location *time.Location) *Validator {
	if location == nil {
		location = time.Local
	}
	return &Validator{location: location}
}

// Validate checks the same-month rule and produces the normalized range.
// Whatever time-of-day the caller supplied, the range covers whole days:
// start is floored to 00:00:00 and end ceiled to 23:59:59.999.
func (v *Validator) Validate(start, end time.Time) (Range, error) {
	if start.IsZero() || end.IsZero() {
		return Range{}, fmt.Errorf("%w: start=%v end=%v", ErrMissingRange, start, end)
	}

	start = start.In(v.location)
	end = end.In(v.location)

	if start.Year() != end.Year() || start.Month() != end.Month() {
		return Range{}, fmt.Errorf("%w: %s to %s", ErrCrossMonthRange,
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	floored := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, v.location)
	ceiled := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, int(999*time.Millisecond), v.location)

	return Range{
		Start:   floored,
		End:     ceiled,
		DateIni: floored.Format(wireLayout),
		DateEnd: ceiled.Format(wireLayout),
	}, nil
}

// dayLayouts are the input forms accepted from the command line.
var dayLayouts = []string{"2006-01-02", "02/01/2006"}

// ParseDay parses a calendar-day flag value in the validator's location.
func (v *Validator) ParseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("a date is required")
	}
	for _, layout := range dayLayouts {
		if t, err := time.ParseInLocation(layout, s, v.location); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected 2006-01-02 or 02/01/2006", s)
}
