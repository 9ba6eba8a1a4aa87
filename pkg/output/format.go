// Package output provides utilities for formatting and displaying
// amortisation schedules.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/loan-amortisation/internal/comparison"
	"github.com/iwvelando/loan-amortisation/pkg/amortisation"
	"github.com/iwvelando/loan-amortisation/pkg/constants"
	"github.com/iwvelando/loan-amortisation/pkg/datetime"
	"github.com/iwvelando/loan-amortisation/pkg/format"
	"github.com/iwvelando/loan-amortisation/pkg/mathutil"
)

// CSVFormat writes the schedule as comma-separated values with a header row.
// Amounts carry two decimals and no currency symbol.
func CSVFormat(w io.Writer, result amortisation.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(constants.CSVHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, entry := range result.Entries {
		record := []string{
			datetime.FormatDate(entry.Date),
			mathutil.FormatFixed(entry.Payment),
			mathutil.FormatFixed(entry.Principal),
			mathutil.FormatFixed(entry.Interest),
			mathutil.FormatFixed(entry.Balance),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv row for period %d: %w", entry.Period, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSVString returns the CSV rendering of the schedule.
func CSVString(result amortisation.Result) (string, error) {
	var b strings.Builder
	if err := CSVFormat(&b, result); err != nil {
		return "", err
	}
	return b.String(), nil
}

// PrettyFormat writes a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, result amortisation.Result, symbol string) error {
	money := func(v float64) string {
		return format.Currency(v, symbol)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-6s | %-10s | %14s | %14s | %14s | %14s\n",
		"Period", "Date", "Payment", "Principal", "Interest", "Balance")
	fmt.Fprintf(&b, "%s-|-%s-|-%s-|-%s-|-%s-|-%s\n",
		strings.Repeat("_", 6), strings.Repeat("_", 10), strings.Repeat("_", 14),
		strings.Repeat("_", 14), strings.Repeat("_", 14), strings.Repeat("_", 14))
	for _, entry := range result.Entries {
		fmt.Fprintf(&b, "%-6d | %-10s | %14s | %14s | %14s | %14s\n",
			entry.Period, datetime.FormatDate(entry.Date), money(entry.Payment),
			money(entry.Principal), money(entry.Interest), money(entry.Balance))
	}
	fmt.Fprintf(&b, "%-6s | %-10s | %14s | %14s | %14s |\n", "Total", "",
		money(result.TotalPayment()), money(result.TotalPrincipal()), money(result.TotalInterest()))

	fmt.Fprintf(&b, "\nMonthly payment %s, paid off %s after %d of %d periods\n",
		money(result.MonthlyPayment), datetime.FormatDate(result.PayoffDate), result.Len(), result.TermMonths)

	_, err := io.WriteString(w, b.String())
	return err
}

// SummaryFormat writes the loan summary with and without overpayments side
// by side. Rows that the overpayments change are marked with an asterisk.
func SummaryFormat(w io.Writer, c *comparison.Comparison, symbol string) error {
	baseline := c.BaselineSummary.Rows(symbol)
	overpaid := c.OverpaidSummary.Rows(symbol)

	changed := make(map[string]bool)
	for _, label := range c.Changed() {
		changed[label] = true
	}

	labelWidth, valueWidth := len("Loan summary"), len("Without overpayment")
	for i := range baseline {
		labelWidth = max(labelWidth, len(baseline[i].Label))
		valueWidth = max(valueWidth, len([]rune(baseline[i].Value)), len([]rune(overpaid[i].Value)))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "  %-*s | %*s | %*s\n", labelWidth, "Loan summary",
		valueWidth, "Without overpayment", valueWidth, "With overpayment")
	fmt.Fprintf(&b, "  %s-|-%s-|-%s\n", strings.Repeat("_", labelWidth),
		strings.Repeat("_", valueWidth), strings.Repeat("_", valueWidth))
	for i := range baseline {
		marker := " "
		if changed[baseline[i].Label] {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %-*s | %*s | %*s\n", marker, labelWidth, baseline[i].Label,
			valueWidth, baseline[i].Value, valueWidth, overpaid[i].Value)
	}
	if c.MonthsSaved > 0 || c.InterestSaved > 0 {
		fmt.Fprintf(&b, "\nOverpaying saves %s in interest and %d months\n",
			format.Currency(c.InterestSaved, symbol), c.MonthsSaved)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
