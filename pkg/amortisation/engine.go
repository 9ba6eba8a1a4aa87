// Package amortisation computes fixed-rate loan amortisation schedules with
// optional recurring and lump-sum overpayments.
package amortisation

import (
	"fmt"
	"math"
	"time"

	"github.com/iwvelando/loan-amortisation/pkg/constants"
	"github.com/iwvelando/loan-amortisation/pkg/datetime"
	"github.com/iwvelando/loan-amortisation/pkg/mathutil"
	"go.uber.org/zap"
)

// maxPreallocatedPeriods bounds the up-front allocation for very long terms.
const maxPreallocatedPeriods = 1200

// PeriodicRate converts an annual percentage into the monthly decimal rate.
func PeriodicRate(annualRatePercent float64) float64 {
	return annualRatePercent / constants.PercentageMultiplier / constants.MonthsPerYear
}

// MonthlyPayment calculates the fixed periodic payment using the standard
// annuity formula, or straight-line division for a zero rate.
//
// The discount factor is raised to a negative power so that it underflows to
// zero for extreme rates and the payment tends to principal*rate.
func MonthlyPayment(principal, annualRatePercent float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}
	rate := PeriodicRate(annualRatePercent)
	if rate == 0 {
		return principal / float64(termMonths)
	}
	return principal * rate / (1 - math.Pow(1+rate, -float64(termMonths)))
}

// InterestPayment calculates the interest accrued on balance over one period.
func InterestPayment(balance, annualRatePercent float64) float64 {
	return balance * PeriodicRate(annualRatePercent)
}

// ComputeSchedule builds the amortisation schedule for a loan of termMonths
// periods starting at startDate. lumpSumDate may be nil when lumpSum is zero.
func ComputeSchedule(principal, annualRatePercent float64, termMonths int,
	recurringExtra, lumpSum float64, lumpSumDate *time.Time, startDate time.Time) (Result, error) {
	spec := LoanSpec{
		Principal:         principal,
		AnnualRatePercent: annualRatePercent,
		TermMonths:        termMonths,
	}
	policy := OverpaymentPolicy{
		RecurringExtra: recurringExtra,
		LumpSum:        lumpSum,
		LumpSumDate:    lumpSumDate,
	}
	return Calculate(spec, policy, startDate)
}

// Calculate builds the amortisation schedule for spec and policy without
// logging.
func Calculate(spec LoanSpec, policy OverpaymentPolicy, startDate time.Time) (Result, error) {
	return NewScheduleGenerator(nil).Generate(spec, policy, startDate)
}

// Validate checks the inputs a schedule cannot be computed without.
func Validate(spec LoanSpec, policy OverpaymentPolicy) error {
	if spec.TermYears < 0 || spec.TermMonths < 0 ||
		spec.TermYears > (math.MaxInt-spec.TermMonths)/constants.MonthsPerYear ||
		spec.TotalMonths() <= 0 {
		return &InvalidTermError{TermYears: spec.TermYears, TermMonths: spec.TermMonths}
	}

	checks := []struct {
		field  string
		value  float64
		ok     bool
		reason string
	}{
		{"principal", spec.Principal, spec.Principal > 0, "must be positive"},
		{"annual rate", spec.AnnualRatePercent, spec.AnnualRatePercent >= 0, "must not be negative"},
		{"recurring extra", policy.RecurringExtra, policy.RecurringExtra >= 0, "must not be negative"},
		{"lump sum", policy.LumpSum, policy.LumpSum >= 0, "must not be negative"},
	}
	for _, c := range checks {
		if !mathutil.IsFinite(c.value) {
			return &InvalidInputError{Field: c.field, Value: c.value, Reason: "must be a finite number"}
		}
		if !c.ok {
			return &InvalidInputError{Field: c.field, Value: c.value, Reason: c.reason}
		}
	}
	return nil
}

// ScheduleGenerator computes schedules and logs the decisions taken along
// the way at debug level.
type ScheduleGenerator struct {
	logger *zap.Logger
}

// NewScheduleGenerator creates a new generator instance
func NewScheduleGenerator(logger *zap.Logger) *ScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleGenerator{logger: logger}
}

// period holds the unrounded figures of one period.
type period struct {
	date      time.Time
	interest  float64
	principal float64
	balance   float64
}

// Generate creates a complete amortisation schedule.
//
// The contractual payment is fixed for the whole term. Overpayments only
// increase the principal portion, so they shorten the schedule instead of
// lowering the payment. Balances are carried at full precision and rounded
// only when the output entries are built.
func (g *ScheduleGenerator) Generate(spec LoanSpec, policy OverpaymentPolicy, startDate time.Time) (Result, error) {
	if err := Validate(spec, policy); err != nil {
		return Result{}, err
	}

	termMonths := spec.TotalMonths()
	rate := PeriodicRate(spec.AnnualRatePercent)
	payment := MonthlyPayment(spec.Principal, spec.AnnualRatePercent, termMonths)

	// Interest never exceeds principal*rate, so this bounds every figure below.
	if !mathutil.IsFinite(payment) || !mathutil.IsFinite(spec.Principal*(1+rate)) {
		return Result{}, &InvalidInputError{
			Field:  "annual rate",
			Value:  spec.AnnualRatePercent,
			Reason: "is too large to compute a schedule for this principal",
		}
	}

	lumpSum := policy.LumpSum
	if lumpSum > 0 && policy.LumpSumDate == nil {
		g.logger.Warn("lump sum has no date and will not be applied",
			zap.String("op", "amortisation.Generate"),
			zap.Float64("lump_sum", lumpSum),
		)
		lumpSum = 0
	}
	lumpSumApplied := false

	periods := make([]period, 0, min(termMonths, maxPreallocatedPeriods))
	balance := spec.Principal

	for n := 1; n <= termMonths; n++ {
		if balance <= 0 {
			g.logger.Debug(fmt.Sprintf("loan paid off after %d of %d periods", n-1, termMonths),
				zap.String("op", "amortisation.Generate"),
			)
			break
		}

		date := datetime.AddMonths(startDate, n-1)
		interest := balance * rate
		principal := payment - interest + policy.RecurringExtra

		if lumpSum > 0 && datetime.OnOrAfter(date, *policy.LumpSumDate) {
			g.logger.Debug(fmt.Sprintf("%s: applying lump sum %.2f", datetime.FormatDate(date), lumpSum),
				zap.String("op", "amortisation.Generate"),
				zap.Int("period", n),
			)
			principal += lumpSum
			lumpSum = 0
			lumpSumApplied = true
		}

		if principal > balance {
			g.logger.Debug("capping principal portion to remaining balance",
				zap.String("op", "amortisation.Generate"),
				zap.Int("period", n),
				zap.Float64("requested", principal),
				zap.Float64("capped_to_balance", balance),
			)
			principal = balance
		}

		balance -= principal
		if balance > 0 && mathutil.IsZero(balance) {
			// Sub-cent leftovers would otherwise produce an extra all-zero row.
			principal += balance
			balance = 0
		}

		periods = append(periods, period{
			date:      date,
			interest:  interest,
			principal: principal,
			balance:   balance,
		})
	}

	// The final contractual period settles whatever is left. Outside of
	// extreme rates, where the annuity's principal portions are too small to
	// represent, that is always a sub-unit residue.
	last := len(periods) - 1
	if last >= 0 && balance > 0 && (balance < constants.ResidueEpsilon || len(periods) == termMonths) {
		g.logger.Debug("folding residual balance into final payment",
			zap.String("op", "amortisation.Generate"),
			zap.Float64("residue", balance),
		)
		periods[last].principal += balance
		periods[last].balance = 0
	}

	entries := buildEntries(spec.Principal, periods)

	result := Result{
		Entries:        entries,
		PayoffDate:     datetime.AddMonths(startDate, len(entries)),
		MonthlyPayment: mathutil.Round(payment),
		StartDate:      startDate,
		TermMonths:     termMonths,
		LumpSumApplied: lumpSumApplied,
	}

	g.logger.Debug("computed amortisation schedule",
		zap.String("op", "amortisation.Generate"),
		zap.Int("periods", len(entries)),
		zap.Int("term_months", termMonths),
		zap.String("payoff_date", datetime.FormatDate(result.PayoffDate)),
	)

	return result, nil
}

// buildEntries rounds the unrounded periods into output entries. Each
// principal is the difference between consecutive rounded balances, so the
// rounded principals always add up to the rounded loan amount minus the final
// balance, and each payment is the exact sum of its rounded parts.
func buildEntries(principal float64, periods []period) []ScheduleEntry {
	entries := make([]ScheduleEntry, 0, len(periods))
	previous := mathutil.RoundDecimal(principal)

	for i, p := range periods {
		current := mathutil.RoundDecimal(p.balance)
		principalPart := previous.Sub(current)
		interest := mathutil.RoundDecimal(p.interest)

		entries = append(entries, ScheduleEntry{
			Period:    i + 1,
			Date:      p.date,
			Payment:   principalPart.Add(interest).InexactFloat64(),
			Interest:  interest.InexactFloat64(),
			Principal: principalPart.InexactFloat64(),
			Balance:   current.InexactFloat64(),
		})
		previous = current
	}

	return entries
}
