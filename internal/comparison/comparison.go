// Package comparison runs a loan with and without its overpayments and
// summarises the difference.
package comparison

import (
	"fmt"
	"time"

	"github.com/iwvelando/loan-amortisation/pkg/amortisation"
	"github.com/iwvelando/loan-amortisation/pkg/constants"
	"github.com/iwvelando/loan-amortisation/pkg/datetime"
	"github.com/iwvelando/loan-amortisation/pkg/format"
	"github.com/iwvelando/loan-amortisation/pkg/mathutil"
	"go.uber.org/zap"
)

// Summary holds the headline figures of one schedule.
type Summary struct {
	LoanAmount       float64
	AnnualRate       float64
	TermYears        int
	TermMonths       int
	MonthlyPayment   float64
	Overpayment      float64
	TotalPrincipal   float64
	TotalInterest    float64
	TotalPaid        float64
	RemainingBalance float64
	EndDate          time.Time
	Periods          int
}

// Row is one labelled line of the summary table.
type Row struct {
	Label string
	Value string
}

// Comparison holds the schedules of a loan with and without overpayments.
type Comparison struct {
	Spec            amortisation.LoanSpec
	Policy          amortisation.OverpaymentPolicy
	Baseline        amortisation.Result
	Overpaid        amortisation.Result
	BaselineSummary Summary
	OverpaidSummary Summary
	InterestSaved   float64
	MonthsSaved     int
}

// Compare computes the baseline schedule with no overpayments and the
// schedule with policy applied.
func Compare(logger *zap.Logger, spec amortisation.LoanSpec, policy amortisation.OverpaymentPolicy, start time.Time) (*Comparison, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	generator := amortisation.NewScheduleGenerator(logger)

	baseline, err := generator.Generate(spec, amortisation.OverpaymentPolicy{}, start)
	if err != nil {
		return nil, fmt.Errorf("baseline schedule: %w", err)
	}
	overpaid, err := generator.Generate(spec, policy, start)
	if err != nil {
		return nil, fmt.Errorf("overpayment schedule: %w", err)
	}

	c := &Comparison{
		Spec:            spec,
		Policy:          policy,
		Baseline:        baseline,
		Overpaid:        overpaid,
		BaselineSummary: Summarise(spec, amortisation.OverpaymentPolicy{}, baseline),
		OverpaidSummary: Summarise(spec, policy, overpaid),
		InterestSaved:   mathutil.Sub(baseline.TotalInterest(), overpaid.TotalInterest()),
		MonthsSaved:     datetime.MonthsBetween(overpaid.PayoffDate, baseline.PayoffDate),
	}

	logger.Debug(fmt.Sprintf("overpayments save %.2f interest and %d months", c.InterestSaved, c.MonthsSaved),
		zap.String("op", "comparison.Compare"),
		zap.String("baseline_end", datetime.FormatDate(baseline.PayoffDate)),
		zap.String("overpaid_end", datetime.FormatDate(overpaid.PayoffDate)),
	)

	return c, nil
}

// Summarise derives the summary figures of result.
func Summarise(spec amortisation.LoanSpec, policy amortisation.OverpaymentPolicy, result amortisation.Result) Summary {
	remaining := result.FinalBalance()
	if remaining < constants.ResidueEpsilon {
		remaining = 0
	}

	// The lump sum takes precedence when both overpayments are set.
	overpayment := policy.RecurringExtra
	if policy.LumpSum > 0 {
		overpayment = policy.LumpSum
	}

	return Summary{
		LoanAmount:       mathutil.Round(spec.Principal),
		AnnualRate:       spec.AnnualRatePercent,
		TermYears:        spec.TermYears,
		TermMonths:       spec.TermMonths,
		MonthlyPayment:   mathutil.Sum(result.MonthlyPayment, policy.RecurringExtra),
		Overpayment:      mathutil.Round(overpayment),
		TotalPrincipal:   result.TotalPrincipal(),
		TotalInterest:    result.TotalInterest(),
		TotalPaid:        result.TotalPayment(),
		RemainingBalance: remaining,
		EndDate:          result.PayoffDate,
		Periods:          result.Len(),
	}
}

// Rows renders the summary as the labelled lines of the comparison table.
func (s Summary) Rows(symbol string) []Row {
	return []Row{
		{"Loan to pay", format.Currency(s.LoanAmount, symbol)},
		{"Interest rate", format.Percent(s.AnnualRate)},
		{"Loan term", format.Term(s.TermYears, s.TermMonths)},
		{"Monthly payments", format.Currency(s.MonthlyPayment, symbol)},
		{"Overpayment", format.Currency(s.Overpayment, symbol)},
		{"Principal", format.Currency(s.TotalPrincipal, symbol)},
		{"Interest", format.Currency(s.TotalInterest, symbol)},
		{"Remaining balance", format.Currency(s.RemainingBalance, symbol)},
		{"Loan end date", datetime.FormatDate(s.EndDate)},
	}
}

// Changed lists the labels of rows that differ between the two summaries and
// are worth highlighting.
func (c *Comparison) Changed() []string {
	var labels []string
	if !mathutil.IsZero(c.InterestSaved) {
		labels = append(labels, "Interest")
	}
	if !c.BaselineSummary.EndDate.Equal(c.OverpaidSummary.EndDate) {
		labels = append(labels, "Loan end date")
	}
	return labels
}
