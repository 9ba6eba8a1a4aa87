// Package datetime provides calendar date utility functions.
package datetime

import (
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/loan-amortisation/pkg/constants"
)

const (
	// DateLayout is the format expected in config files and requests and is
	// also the output date format.
	DateLayout = constants.DateLayout

	// MonthLayout formats only the year and month of a date.
	MonthLayout = constants.MonthLayout
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseDate parses a YYYY-MM-DD date. Surrounding whitespace is ignored.
func ParseDate(dateStr string) (time.Time, error) {
	trimmed := strings.TrimSpace(dateStr)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	t, err := time.Parse(DateLayout, trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected format %s: %w", dateStr, DateLayout, err)
	}
	return t, nil
}

// ParseOptionalDate parses a YYYY-MM-DD date and returns nil for an empty string.
func ParseOptionalDate(dateStr string) (*time.Time, error) {
	if strings.TrimSpace(dateStr) == "" {
		return nil, nil
	}
	t, err := ParseDate(dateStr)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the following month normalizes to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonths offsets t by the given number of calendar months, keeping the
// day-of-month and clamping it to the last day of the target month, e.g.
// Jan 31 + 1 month is Feb 28 (or 29). Unlike time.AddDate it never spills
// into the following month.
//
// Repeated stepping must always start from the same anchor date:
// AddMonths(jan31, 2) is Mar 31 whereas AddMonths(AddMonths(jan31, 1), 1) is
// Mar 28.
func AddMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	total := int(month) - 1 + months
	year += total / constants.MonthsPerYear
	total %= constants.MonthsPerYear
	if total < 0 {
		total += constants.MonthsPerYear
		year--
	}
	target := time.Month(total + 1)
	if last := DaysInMonth(year, target); day > last {
		day = last
	}
	hour, minute, sec := t.Clock()
	return time.Date(year, target, day, hour, minute, sec, t.Nanosecond(), t.Location())
}

// OnOrAfter reports whether a falls on the same calendar day as b or later.
// Time of day is ignored.
func OnOrAfter(a, b time.Time) bool {
	return !truncateDay(a).Before(truncateDay(b))
}

// MonthsBetween returns the number of whole calendar months from a to b.
// The result is negative when b is before a.
func MonthsBetween(a, b time.Time) int {
	months := (b.Year()-a.Year())*constants.MonthsPerYear + int(b.Month()) - int(a.Month())
	return months
}

// FormatDate formats t with DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func truncateDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
