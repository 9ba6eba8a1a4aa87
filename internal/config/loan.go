package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/loan-amortisation/pkg/amortisation"
	"github.com/iwvelando/loan-amortisation/pkg/datetime"
	"github.com/iwvelando/loan-amortisation/pkg/validation"
)

// Spec converts the configured loan into the engine's LoanSpec.
func (loan LoanConfig) Spec() amortisation.LoanSpec {
	return amortisation.LoanSpec{
		Principal:         loan.Principal,
		AnnualRatePercent: loan.InterestRate,
		TermYears:         loan.TermYears,
		TermMonths:        loan.TermMonths,
	}
}

// Start parses the loan start date. An empty date resolves to the first day
// of the month containing now.
func (loan LoanConfig) Start(now time.Time) (time.Time, error) {
	if strings.TrimSpace(loan.StartDate) == "" {
		year, month, _ := now.Date()
		return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), nil
	}
	start, err := datetime.ParseDate(loan.StartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("loan start date: %w", err)
	}
	return start, nil
}

// Policy converts the configured overpayments into the engine's policy.
func (o OverpaymentConfig) Policy() (amortisation.OverpaymentPolicy, error) {
	lumpSumDate, err := datetime.ParseOptionalDate(o.LumpSumDate)
	if err != nil {
		return amortisation.OverpaymentPolicy{}, fmt.Errorf("lump sum date: %w", err)
	}
	return amortisation.OverpaymentPolicy{
		RecurringExtra: o.RecurringExtra,
		LumpSum:        o.LumpSum,
		LumpSumDate:    lumpSumDate,
	}, nil
}

// Fields returns the user-entered fields in the shape the validation
// package checks.
func (conf *Configuration) Fields() validation.LoanFields {
	return validation.LoanFields{
		Principal:      conf.Loan.Principal,
		InterestRate:   conf.Loan.InterestRate,
		TermYears:      conf.Loan.TermYears,
		TermMonths:     conf.Loan.TermMonths,
		StartDate:      conf.Loan.StartDate,
		RecurringExtra: conf.Overpayment.RecurringExtra,
		LumpSum:        conf.Overpayment.LumpSum,
		LumpSumDate:    conf.Overpayment.LumpSumDate,
	}
}

// Inputs validates the configured loan and returns everything the engine
// needs. Every validation problem is reported at once.
func (conf *Configuration) Inputs(now time.Time) (amortisation.LoanSpec, amortisation.OverpaymentPolicy, time.Time, error) {
	if err := validation.ValidateLoanFields(conf.Fields()); err != nil {
		return amortisation.LoanSpec{}, amortisation.OverpaymentPolicy{}, time.Time{}, err
	}

	start, err := conf.Loan.Start(now)
	if err != nil {
		return amortisation.LoanSpec{}, amortisation.OverpaymentPolicy{}, time.Time{}, err
	}
	policy, err := conf.Overpayment.Policy()
	if err != nil {
		return amortisation.LoanSpec{}, amortisation.OverpaymentPolicy{}, time.Time{}, err
	}
	return conf.Loan.Spec(), policy, start, nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings for settings that are accepted but probably unintended.
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	o := conf.Overpayment
	if o.LumpSum == 0 && strings.TrimSpace(o.LumpSumDate) != "" {
		warnings = append(warnings, "lumpSumDate is set but lumpSum is zero; the date is ignored")
	}
	if o.LumpSum > 0 && o.LumpSum >= conf.Loan.Principal && conf.Loan.Principal > 0 {
		warnings = append(warnings, fmt.Sprintf("lumpSum %.2f covers the whole principal %.2f", o.LumpSum, conf.Loan.Principal))
	}
	if start, err := conf.Loan.Start(time.Now()); err == nil && o.LumpSum > 0 {
		if lumpSumDate, err := datetime.ParseOptionalDate(o.LumpSumDate); err == nil && lumpSumDate != nil {
			end := datetime.AddMonths(start, conf.Loan.Spec().TotalMonths())
			if !lumpSumDate.Before(end) {
				warnings = append(warnings, fmt.Sprintf("lumpSumDate %s is after the loan ends on %s and will never be applied",
					o.LumpSumDate, datetime.FormatDate(end)))
			}
		}
	}
	if conf.Loan.InterestRate == 0 && conf.Loan.Principal > 0 {
		warnings = append(warnings, "interestRate is zero; the schedule is a straight-line repayment")
	}

	return warnings
}
