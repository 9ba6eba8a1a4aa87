package integration

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/loan-amortisation/internal/comparison"
	"github.com/iwvelando/loan-amortisation/internal/config"
	"github.com/iwvelando/loan-amortisation/pkg/constants"
	"github.com/iwvelando/loan-amortisation/pkg/mathutil"
	"github.com/iwvelando/loan-amortisation/pkg/output"
	"github.com/iwvelando/loan-amortisation/pkg/testutil"
	"go.uber.org/zap"
)

// TestMainIntegration runs the configuration through the same steps as the
// schedule command.
func TestMainIntegration(t *testing.T) {
	logger := zap.NewNop()

	conf, err := config.LoadConfiguration("../test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("unexpected configuration warnings: %v", warnings)
	}

	spec, policy, start, err := conf.Inputs(time.Now())
	if err != nil {
		t.Fatalf("Inputs() error = %v", err)
	}

	c, err := comparison.Compare(logger, spec, policy, start)
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	if c.Baseline.Len() != 83 {
		t.Errorf("Expected 83 baseline periods, got %d", c.Baseline.Len())
	}
	if c.Overpaid.Len() >= c.Baseline.Len() {
		t.Errorf("Overpayments did not shorten the loan: %d periods", c.Overpaid.Len())
	}
	if !c.Overpaid.LumpSumApplied {
		t.Errorf("Lump sum was not applied")
	}

	// The lump sum dated mid-January lands on the February payment.
	january := testutil.FindEntry(c.Overpaid.Entries, "2026-01-01")
	february := testutil.FindEntry(c.Overpaid.Entries, "2026-02-01")
	if january == nil || february == nil {
		t.Fatalf("Expected entries for 2026-01-01 and 2026-02-01")
	}
	if january.Principal > 2000 {
		t.Errorf("January principal %.2f unexpectedly includes the lump sum", january.Principal)
	}
	if february.Principal < 10000 {
		t.Errorf("February principal %.2f does not include the lump sum", february.Principal)
	}

	for _, result := range []struct {
		name      string
		principal float64
		entries   int
	}{
		{"baseline", c.Baseline.TotalPrincipal(), c.Baseline.Len()},
		{"overpaid", c.Overpaid.TotalPrincipal(), c.Overpaid.Len()},
	} {
		if !mathutil.WithinTolerance(result.principal, spec.Principal, 0.001) {
			t.Errorf("%s principal repaid %.2f, expected %.2f", result.name, result.principal, spec.Principal)
		}
	}

	csvData, err := output.CSVString(c.Overpaid)
	if err != nil {
		t.Fatalf("CSVString() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(csvData), "\n")
	if len(lines) != c.Overpaid.Len()+1 {
		t.Errorf("Expected %d csv lines, got %d", c.Overpaid.Len()+1, len(lines))
	}
	if !strings.HasSuffix(lines[len(lines)-1], ",0.00") {
		t.Errorf("Final csv row should close the balance: %s", lines[len(lines)-1])
	}
}

// TestExampleConfiguration keeps the shipped example loadable and valid.
func TestExampleConfiguration(t *testing.T) {
	conf, err := config.LoadConfiguration(filepath.Join("..", "..", constants.ExampleConfigFile))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if _, _, _, err := conf.Inputs(time.Now()); err != nil {
		t.Errorf("example configuration is invalid: %v", err)
	}
	if conf.Currencies["en-nz"] != "NZD" {
		t.Errorf("Expected en-NZ currency entry, got %v", conf.Currencies)
	}
}
