package amortisation

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTerm matches every *InvalidTermError via errors.Is.
	ErrInvalidTerm = errors.New("invalid loan term")

	// ErrInvalidInput matches every *InvalidInputError via errors.Is.
	ErrInvalidInput = errors.New("invalid loan input")
)

// InvalidTermError reports a loan whose total term is not at least one month.
type InvalidTermError struct {
	TermYears  int
	TermMonths int
}

func (e *InvalidTermError) Error() string {
	return fmt.Sprintf("%s: term of %d years %d months must total at least 1 month",
		ErrInvalidTerm, e.TermYears, e.TermMonths)
}

// Is makes errors.Is(err, ErrInvalidTerm) succeed.
func (e *InvalidTermError) Is(target error) bool {
	return target == ErrInvalidTerm
}

// InvalidInputError reports an out-of-range numeric input.
type InvalidInputError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %s %v %s", ErrInvalidInput, e.Field, e.Value, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidInput) succeed.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}
