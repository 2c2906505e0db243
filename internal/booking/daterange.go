// Package booking derives rental durations from calendar date ranges.
package booking

import (
	"math"
	"time"

	"roomdesk/pkg/apperrors"
)

// DateLayout is the calendar date format used on the backend wire: no
// time-of-day component.
const DateLayout = "2006-01-02"

// ErrEndBeforeStart is returned when a date range is not strictly
// increasing. Callers must block submission and leave any previously
// derived duration untouched.
var ErrEndBeforeStart = apperrors.New(apperrors.CodeValidation, "end date must be after start date")

// ParseDate parses a backend calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, apperrors.Wrap(err, apperrors.CodeValidation, "invalid date: "+s)
	}
	return t, nil
}

// ValidateRange checks date ordering: the end date must be strictly after
// the start date.
func ValidateRange(start, end time.Time) error {
	if !end.After(start) {
		return ErrEndBeforeStart
	}
	return nil
}

// Duration derives a rental duration in whole months from a validated date
// range: the day count is divided into 30-day months, rounded up, with a
// floor of one month. Pure function of its inputs.
func Duration(start, end time.Time) (int, error) {
	if err := ValidateRange(start, end); err != nil {
		return 0, err
	}
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	months := int(math.Ceil(float64(days) / 30))
	if months < 1 {
		months = 1
	}
	return months, nil
}

// DurationFromStrings is Duration over wire-format dates.
func DurationFromStrings(start, end string) (int, error) {
	startDate, err := ParseDate(start)
	if err != nil {
		return 0, err
	}
	endDate, err := ParseDate(end)
	if err != nil {
		return 0, err
	}
	return Duration(startDate, endDate)
}

// TotalPrice computes the full rental cost of a booking from its room's
// monthly price and derived duration.
func TotalPrice(monthlyPrice float64, durationMonths int) float64 {
	if durationMonths < 0 {
		return 0
	}
	return monthlyPrice * float64(durationMonths)
}
