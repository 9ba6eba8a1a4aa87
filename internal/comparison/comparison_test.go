package comparison

import (
	"errors"
	"testing"
	"time"

	"github.com/iwvelando/loan-amortisation/pkg/amortisation"
	"github.com/iwvelando/loan-amortisation/pkg/datetime"
	"go.uber.org/zap"
)

func start() time.Time {
	return datetime.MustParseTime(datetime.DateLayout, "2025-01-01")
}

func scenarioSpec() amortisation.LoanSpec {
	return amortisation.LoanSpec{Principal: 100000, AnnualRatePercent: 5.38, TermYears: 6, TermMonths: 11}
}

func TestCompareWithoutOverpayment(t *testing.T) {
	c, err := Compare(zap.NewNop(), scenarioSpec(), amortisation.OverpaymentPolicy{}, start())
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	if c.MonthsSaved != 0 || c.InterestSaved != 0 {
		t.Errorf("Compare() saved %d months and %.2f interest, expected nothing", c.MonthsSaved, c.InterestSaved)
	}
	if len(c.Changed()) != 0 {
		t.Errorf("Changed() = %v, expected none", c.Changed())
	}
	if c.BaselineSummary != c.OverpaidSummary {
		t.Errorf("summaries differ without overpayment: %+v vs %+v", c.BaselineSummary, c.OverpaidSummary)
	}

	s := c.BaselineSummary
	if s.MonthlyPayment != 1445.52 {
		t.Errorf("MonthlyPayment = %.2f, expected 1445.52", s.MonthlyPayment)
	}
	if s.TotalPrincipal != 100000 {
		t.Errorf("TotalPrincipal = %.2f, expected 100000.00", s.TotalPrincipal)
	}
	if s.RemainingBalance != 0 {
		t.Errorf("RemainingBalance = %.2f, expected 0", s.RemainingBalance)
	}
	if datetime.FormatDate(s.EndDate) != "2031-12-01" {
		t.Errorf("EndDate = %s, expected 2031-12-01", datetime.FormatDate(s.EndDate))
	}
	if s.Periods != 83 {
		t.Errorf("Periods = %d, expected 83", s.Periods)
	}
}

func TestCompareWithOverpayment(t *testing.T) {
	lumpSumDate := datetime.MustParseTime(datetime.DateLayout, "2026-01-01")
	policy := amortisation.OverpaymentPolicy{RecurringExtra: 200, LumpSum: 10000, LumpSumDate: &lumpSumDate}

	c, err := Compare(nil, scenarioSpec(), policy, start())
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	if c.MonthsSaved <= 0 {
		t.Errorf("MonthsSaved = %d, expected a shorter schedule", c.MonthsSaved)
	}
	if c.InterestSaved <= 0 {
		t.Errorf("InterestSaved = %.2f, expected a saving", c.InterestSaved)
	}
	if c.MonthsSaved != c.Baseline.Len()-c.Overpaid.Len() {
		t.Errorf("MonthsSaved = %d inconsistent with schedules", c.MonthsSaved)
	}

	changed := c.Changed()
	if len(changed) != 2 || changed[0] != "Interest" || changed[1] != "Loan end date" {
		t.Errorf("Changed() = %v, expected [Interest Loan end date]", changed)
	}

	s := c.OverpaidSummary
	if s.Overpayment != 10000 {
		t.Errorf("Overpayment = %.2f, expected the lump sum", s.Overpayment)
	}
	if s.MonthlyPayment != 1645.52 {
		t.Errorf("MonthlyPayment = %.2f, expected 1645.52", s.MonthlyPayment)
	}
	if !s.EndDate.Before(c.BaselineSummary.EndDate) {
		t.Errorf("overpaid end %s not before baseline end %s", s.EndDate, c.BaselineSummary.EndDate)
	}
	if s.TotalPrincipal != 100000 {
		t.Errorf("TotalPrincipal = %.2f, expected 100000.00", s.TotalPrincipal)
	}
}

func TestSummariseRecurringOnlyOverpayment(t *testing.T) {
	policy := amortisation.OverpaymentPolicy{RecurringExtra: 75.5}
	result, err := amortisation.Calculate(scenarioSpec(), policy, start())
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	s := Summarise(scenarioSpec(), policy, result)
	if s.Overpayment != 75.5 {
		t.Errorf("Overpayment = %.2f, expected 75.50", s.Overpayment)
	}
}

func TestCompareInvalidInput(t *testing.T) {
	_, err := Compare(nil, amortisation.LoanSpec{Principal: 1000}, amortisation.OverpaymentPolicy{}, start())
	if !errors.Is(err, amortisation.ErrInvalidTerm) {
		t.Errorf("Compare() error = %v, expected ErrInvalidTerm", err)
	}

	_, err = Compare(nil, amortisation.LoanSpec{Principal: 1000, TermMonths: 12},
		amortisation.OverpaymentPolicy{RecurringExtra: -1}, start())
	if !errors.Is(err, amortisation.ErrInvalidInput) {
		t.Errorf("Compare() error = %v, expected ErrInvalidInput", err)
	}
}

func TestSummaryRows(t *testing.T) {
	c, err := Compare(nil, scenarioSpec(), amortisation.OverpaymentPolicy{}, start())
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	rows := c.BaselineSummary.Rows("£")
	expected := []Row{
		{"Loan to pay", "£100,000.00"},
		{"Interest rate", "5.38% per annum"},
		{"Loan term", "6 years 11 months"},
		{"Monthly payments", "£1,445.52"},
		{"Overpayment", "£0.00"},
		{"Principal", "£100,000.00"},
		{"Interest", interestValue(c.BaselineSummary.TotalInterest)},
		{"Remaining balance", "£0.00"},
		{"Loan end date", "2031-12-01"},
	}
	if len(rows) != len(expected) {
		t.Fatalf("Rows() returned %d rows, expected %d", len(rows), len(expected))
	}
	for i := range expected {
		if rows[i] != expected[i] {
			t.Errorf("Rows()[%d] = %+v, expected %+v", i, rows[i], expected[i])
		}
	}
}

func interestValue(v float64) string {
	return Summary{TotalInterest: v}.Rows("£")[6].Value
}

func TestChanged(t *testing.T) {
	end := datetime.MustParseTime(datetime.DateLayout, "2031-12-01")
	tests := []struct {
		name          string
		interestSaved float64
		overpaidEnd   time.Time
		expected      []string
	}{
		{"Nothing saved", 0, end, nil},
		{"Less than half a cent", 0.001, end, nil},
		{"One cent", 0.01, end, []string{"Interest"}},
		{"Earlier end", 125.5, end.AddDate(0, -1, 0), []string{"Interest", "Loan end date"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Comparison{
				BaselineSummary: Summary{EndDate: end},
				OverpaidSummary: Summary{EndDate: tt.overpaidEnd},
				InterestSaved:   tt.interestSaved,
			}
			got := c.Changed()
			if len(got) != len(tt.expected) {
				t.Fatalf("Changed() = %v, expected %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("Changed()[%d] = %q, expected %q", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestMonthsSavedFromMonthEnd(t *testing.T) {
	spec := amortisation.LoanSpec{Principal: 12000, TermMonths: 12}
	policy := amortisation.OverpaymentPolicy{RecurringExtra: 1000}
	monthEnd := datetime.MustParseTime(datetime.DateLayout, "2025-01-31")

	c, err := Compare(zap.NewNop(), spec, policy, monthEnd)
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}
	if c.Overpaid.Len() != 6 {
		t.Fatalf("overpaid periods = %d, expected 6", c.Overpaid.Len())
	}
	if c.MonthsSaved != c.Baseline.Len()-c.Overpaid.Len() {
		t.Errorf("MonthsSaved = %d, expected %d", c.MonthsSaved, c.Baseline.Len()-c.Overpaid.Len())
	}
}
