package amortisation

import (
	"time"

	"github.com/iwvelando/loan-amortisation/pkg/constants"
	"github.com/iwvelando/loan-amortisation/pkg/mathutil"
)

// LoanSpec describes the contractual loan.
type LoanSpec struct {
	Principal         float64
	AnnualRatePercent float64
	TermYears         int
	TermMonths        int
}

// TotalMonths returns the full term in months. Validate rejects terms whose
// years would overflow the multiplication.
func (s LoanSpec) TotalMonths() int {
	return s.TermYears*constants.MonthsPerYear + s.TermMonths
}

// OverpaymentPolicy holds optional payments on top of the contractual one.
// LumpSumDate must be set whenever LumpSum is positive; a lump sum without a
// date is never applied.
type OverpaymentPolicy struct {
	RecurringExtra float64
	LumpSum        float64
	LumpSumDate    *time.Time
}

// ScheduleEntry is one period of an amortisation schedule. Monetary fields
// are rounded to two decimals and Payment always equals Interest + Principal.
type ScheduleEntry struct {
	Period    int
	Date      time.Time
	Payment   float64
	Interest  float64
	Principal float64
	Balance   float64
}

// Result is a computed amortisation schedule.
type Result struct {
	Entries []ScheduleEntry

	// PayoffDate is the end of the final period: one month after the date of
	// the last entry. It is not the date the last payment falls
	// due, which is FinalEntry().Date; a 12-period loan starting 2025-01-01
	// makes its last payment on 2025-12-01 and pays off on 2026-01-01.
	PayoffDate time.Time

	// MonthlyPayment is the contractual payment excluding overpayments.
	MonthlyPayment float64

	StartDate      time.Time
	TermMonths     int
	LumpSumApplied bool
}

// Len returns the number of periods in the schedule.
func (r Result) Len() int {
	return len(r.Entries)
}

// FinalEntry returns the last entry, or the zero value for an empty result.
func (r Result) FinalEntry() ScheduleEntry {
	if len(r.Entries) == 0 {
		return ScheduleEntry{}
	}
	return r.Entries[len(r.Entries)-1]
}

// FinalBalance returns the balance after the last period.
func (r Result) FinalBalance() float64 {
	return r.FinalEntry().Balance
}

// TotalPayment sums every period's payment exactly.
func (r Result) TotalPayment() float64 {
	return r.sum(func(e ScheduleEntry) float64 { return e.Payment })
}

// TotalInterest sums every period's interest exactly.
func (r Result) TotalInterest() float64 {
	return r.sum(func(e ScheduleEntry) float64 { return e.Interest })
}

// TotalPrincipal sums every period's principal exactly.
func (r Result) TotalPrincipal() float64 {
	return r.sum(func(e ScheduleEntry) float64 { return e.Principal })
}

// EarlyPayoff reports whether overpayments cleared the loan before its term.
func (r Result) EarlyPayoff() bool {
	return len(r.Entries) < r.TermMonths
}

func (r Result) sum(field func(ScheduleEntry) float64) float64 {
	values := make([]float64, len(r.Entries))
	for i, e := range r.Entries {
		values[i] = field(e)
	}
	return mathutil.Sum(values...)
}
