package validation

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/loan-amortisation/pkg/constants"
	"github.com/iwvelando/loan-amortisation/pkg/datetime"
	"go.uber.org/multierr"
)

// MaxTermYears bounds the loan term a user may enter.
const MaxTermYears = 100

// LoanFields are the loan inputs as a user entered them, before conversion
// into engine types.
type LoanFields struct {
	Principal      float64
	InterestRate   float64
	TermYears      int
	TermMonths     int
	StartDate      string
	RecurringExtra float64
	LumpSum        float64
	LumpSumDate    string
}

// FieldError describes one rejected field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// ValidateLoanFields checks every field and returns all problems combined
// with multierr, or nil. multierr.Errors splits the result back into
// individual *FieldError values.
func ValidateLoanFields(f LoanFields) error {
	var err error

	maxMonths := MaxTermYears * constants.MonthsPerYear
	switch {
	case f.TermYears < 0:
		err = multierr.Append(err, &FieldError{"termYears", "must not be negative"})
	case f.TermMonths < 0:
		err = multierr.Append(err, &FieldError{"termMonths", "must not be negative"})
	// Bounded before multiplying so that huge inputs cannot wrap around.
	case f.TermYears > MaxTermYears || f.TermMonths > maxMonths ||
		f.TermYears*constants.MonthsPerYear+f.TermMonths > maxMonths:
		err = multierr.Append(err, &FieldError{"term", fmt.Sprintf("must not exceed %d years", MaxTermYears)})
	case f.TermYears*constants.MonthsPerYear+f.TermMonths <= 0:
		err = multierr.Append(err, &FieldError{"term", "must be at least 1 month"})
	}

	err = multierr.Append(err, positive("principal", f.Principal))
	err = multierr.Append(err, nonNegative("interestRate", f.InterestRate))
	err = multierr.Append(err, nonNegative("recurringExtra", f.RecurringExtra))
	err = multierr.Append(err, nonNegative("lumpSum", f.LumpSum))

	if strings.TrimSpace(f.StartDate) != "" {
		if _, parseErr := datetime.ParseDate(f.StartDate); parseErr != nil {
			err = multierr.Append(err, &FieldError{"startDate", "must be a date in YYYY-MM-DD format"})
		}
	}

	lumpSumDate := strings.TrimSpace(f.LumpSumDate)
	if f.LumpSum > 0 && lumpSumDate == "" {
		err = multierr.Append(err, &FieldError{"lumpSumDate", "is required when lumpSum is set"})
	} else if lumpSumDate != "" {
		if _, parseErr := datetime.ParseDate(lumpSumDate); parseErr != nil {
			err = multierr.Append(err, &FieldError{"lumpSumDate", "must be a date in YYYY-MM-DD format"})
		}
	}

	return err
}

// Messages flattens a validation error into one message per problem.
func Messages(err error) []string {
	errs := multierr.Errors(err)
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		messages = append(messages, e.Error())
	}
	return messages
}

func positive(field string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return &FieldError{field, "must be a finite number"}
	}
	if value <= 0 {
		return &FieldError{field, "must be greater than zero"}
	}
	return nil
}

func nonNegative(field string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return &FieldError{field, "must be a finite number"}
	}
	if value < 0 {
		return &FieldError{field, "must not be negative"}
	}
	return nil
}
