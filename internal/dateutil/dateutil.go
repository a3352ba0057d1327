// Package dateutil provides calendar date parsing and business-day helpers.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDate indicates a value that cannot be read as a calendar date.
var ErrInvalidDate = errors.New("invalid date")

// MaxDateLength limits input length to prevent abuse.
const MaxDateLength = 40

// dateLayouts lists accepted input layouts, most specific first.
// YAML decoders may hand back either a bare date or a full timestamp.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// ParseDate reads a calendar date in YYYY-MM-DD form (timestamps are accepted
// and truncated to their date). The result is midnight UTC.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidDate)
	}
	if len(value) > MaxDateLength {
		return time.Time{}, fmt.Errorf("%w: value exceeds %d characters", ErrInvalidDate, MaxDateLength)
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return Truncate(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q (want YYYY-MM-DD)", ErrInvalidDate, value)
}

// Truncate drops the time of day, keeping the calendar date as seen in t's location.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// NextWeekday returns t unchanged on Monday through Friday, otherwise the
// following Monday.
func NextWeekday(t time.Time) time.Time {
	for IsWeekend(t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// DueDate adds days to start and rolls a weekend result forward to Monday.
func DueDate(start time.Time, days int) time.Time {
	return NextWeekday(Truncate(start).AddDate(0, 0, days))
}
