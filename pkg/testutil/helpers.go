// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/loan-amortisation/pkg/amortisation"
	"github.com/iwvelando/loan-amortisation/pkg/datetime"
)

// FindEntry finds the schedule entry dated date (YYYY-MM-DD).
// Returns a pointer into entries if found, nil otherwise.
func FindEntry(entries []amortisation.ScheduleEntry, date string) *amortisation.ScheduleEntry {
	for i := range entries {
		if datetime.FormatDate(entries[i].Date) == date {
			return &entries[i]
		}
	}
	return nil
}
