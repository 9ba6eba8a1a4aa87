package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/iwvelando/loan-amortisation/internal/comparison"
	"github.com/iwvelando/loan-amortisation/pkg/amortisation"
	"github.com/iwvelando/loan-amortisation/pkg/datetime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallLoan(t *testing.T) amortisation.Result {
	t.Helper()
	start := datetime.MustParseTime(datetime.DateLayout, "2025-01-31")
	result, err := amortisation.ComputeSchedule(1200, 0, 3, 0, 0, nil, start)
	require.NoError(t, err)
	return result
}

func TestCSVFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSVFormat(&buf, smallLoan(t)))

	expected := "Date,Payment,Principal,Interest,Balance\n" +
		"2025-01-31,400.00,400.00,0.00,800.00\n" +
		"2025-02-28,400.00,400.00,0.00,400.00\n" +
		"2025-03-31,400.00,400.00,0.00,0.00\n"
	assert.Equal(t, expected, buf.String())
}

func TestCSVStringScenario(t *testing.T) {
	start := datetime.MustParseTime(datetime.DateLayout, "2025-01-01")
	result, err := amortisation.ComputeSchedule(100000, 5.38, 83, 0, 0, nil, start)
	require.NoError(t, err)

	out, err := CSVString(result)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 84)
	assert.Equal(t, "Date,Payment,Principal,Interest,Balance", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2025-01-01,1445.52,997.19,448.33,"), lines[1])
	assert.True(t, strings.HasPrefix(lines[83], "2031-11-01,"), lines[83])
	assert.True(t, strings.HasSuffix(lines[83], ",0.00"), lines[83])
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestCSVFormatWriteError(t *testing.T) {
	err := CSVFormat(failingWriter{}, smallLoan(t))
	assert.Error(t, err)

	err = PrettyFormat(failingWriter{}, smallLoan(t), "$")
	assert.Error(t, err)
}

func TestPrettyFormat(t *testing.T) {
	start := datetime.MustParseTime(datetime.DateLayout, "2025-01-01")
	result, err := amortisation.ComputeSchedule(12000, 0, 12, 0, 0, nil, start)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, PrettyFormat(&buf, result, "£"))
	output := buf.String()

	if !strings.Contains(output, "Period | Date       |        Payment |") {
		t.Errorf("PrettyFormat missing table header:\n%s", output)
	}
	if !strings.Contains(output, "£1,000.00") {
		t.Errorf("PrettyFormat missing grouped payment value")
	}
	if !strings.Contains(output, "£12,000.00") {
		t.Errorf("PrettyFormat missing total")
	}
	if !strings.Contains(output, "paid off 2026-01-01 after 12 of 12 periods") {
		t.Errorf("PrettyFormat missing payoff line:\n%s", output)
	}
	// header, separator, 12 entries, total, blank, payoff line
	assert.Equal(t, 17, strings.Count(output, "\n"))
}

func TestSummaryFormat(t *testing.T) {
	start := datetime.MustParseTime(datetime.DateLayout, "2025-01-01")
	spec := amortisation.LoanSpec{Principal: 100000, AnnualRatePercent: 5.38, TermYears: 6, TermMonths: 11}
	c, err := comparison.Compare(nil, spec, amortisation.OverpaymentPolicy{RecurringExtra: 200}, start)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, SummaryFormat(&buf, c, "£"))
	output := buf.String()

	assert.Contains(t, output, "Without overpayment")
	assert.Contains(t, output, "With overpayment")
	assert.Contains(t, output, "5.38% per annum")
	assert.Contains(t, output, "6 years 11 months")
	assert.Contains(t, output, "£1,645.52")
	assert.Contains(t, output, "2031-12-01")
	assert.Contains(t, output, "* Interest")
	assert.Contains(t, output, "* Loan end date")
	assert.Contains(t, output, "  Principal")
	assert.Contains(t, output, "and 11 months")
}

func TestSummaryFormatWithoutOverpayment(t *testing.T) {
	start := datetime.MustParseTime(datetime.DateLayout, "2025-01-01")
	spec := amortisation.LoanSpec{Principal: 5000, AnnualRatePercent: 4, TermYears: 1}
	c, err := comparison.Compare(nil, spec, amortisation.OverpaymentPolicy{}, start)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, SummaryFormat(&buf, c, "$"))

	assert.NotContains(t, buf.String(), "*")
	assert.NotContains(t, buf.String(), "Overpaying saves")
}
