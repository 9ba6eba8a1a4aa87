package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/google/subcommands"
	"github.com/iwvelando/loan-amortisation/internal/comparison"
	"github.com/iwvelando/loan-amortisation/internal/config"
	"github.com/iwvelando/loan-amortisation/pkg/constants"
	"github.com/iwvelando/loan-amortisation/pkg/currency"
	"github.com/iwvelando/loan-amortisation/pkg/output"
	"github.com/iwvelando/loan-amortisation/pkg/validation"
	"go.uber.org/zap"
)

type scheduleCmd struct {
	configPath   string
	outputFormat string
	logLevel     string
	withBaseline bool

	stdout io.Writer
	now    func() time.Time
}

func newScheduleCmd(stdout io.Writer) *scheduleCmd {
	return &scheduleCmd{stdout: stdout, now: time.Now}
}

func (*scheduleCmd) Name() string     { return "schedule" }
func (*scheduleCmd) Synopsis() string { return "print the amortisation schedule of a configured loan" }
func (*scheduleCmd) Usage() string {
	return `schedule [-config <file>] [-output-format pretty|csv] [-log-level <level>] [-with-baseline]

  Loads the loan and its overpayments from the YAML configuration, then prints
  the loan summary with and without overpayments followed by the schedule.
  Settings can be overridden with AMORTISE_ environment variables, for
  example AMORTISE_LOAN_PRINCIPAL=250000.
`
}

func (c *scheduleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configPath, "config", constants.DefaultConfigFile, "path to configuration file")
	f.StringVar(&c.outputFormat, "output-format", "", "type of output override: pretty, csv")
	f.StringVar(&c.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	f.BoolVar(&c.withBaseline, "with-baseline", false, "also print the schedule without overpayments (pretty output only)")
}

func (c *scheduleCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	conf, err := config.LoadConfiguration(c.configPath)
	if err != nil {
		printFatal(fmt.Sprintf("failed to load configuration at %s", c.configPath), err)
		return subcommands.ExitFailure
	}

	logger, err := initializeLogger(conf.Logging, c.logLevel)
	if err != nil {
		printFatal("failed to initialize logger", err)
		return subcommands.ExitFailure
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := c.run(logger, conf); err != nil {
		logger.Error("failed to produce schedule",
			zap.String("op", "main.schedule"),
			zap.Error(err),
		)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// run computes and prints the schedule for conf.
func (c *scheduleCmd) run(logger *zap.Logger, conf *config.Configuration) error {
	// CLI override takes precedence over config
	outputFormat := conf.Output.Format
	if c.outputFormat != "" {
		outputFormat = c.outputFormat
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main.schedule"),
		)
	}

	spec, policy, start, err := conf.Inputs(c.now())
	if err != nil {
		for _, msg := range validation.Messages(err) {
			logger.Error("invalid loan: "+msg,
				zap.String("op", "main.schedule"),
			)
		}
		return errors.New("loan configuration is invalid")
	}

	table, rejected := currency.NewLocaleTable().With(conf.Currencies)
	for _, locale := range rejected {
		logger.Warn("ignoring unknown currency code",
			zap.String("op", "main.schedule"),
			zap.String("locale", locale),
			zap.String("code", conf.Currencies[locale]),
		)
	}
	symbol := table.Symbol(conf.Locale)

	result, err := comparison.Compare(logger, spec, policy, start)
	if err != nil {
		return fmt.Errorf("failed to compute schedule: %w", err)
	}

	switch outputFormat {
	case constants.OutputFormatCSV:
		return output.CSVFormat(c.stdout, result.Overpaid)
	default:
		return c.printPretty(result, symbol, c.withBaseline || conf.Output.WithBaseline)
	}
}

func (c *scheduleCmd) printPretty(result *comparison.Comparison, symbol string, withBaseline bool) error {
	if err := output.SummaryFormat(c.stdout, result, symbol); err != nil {
		return err
	}
	if withBaseline {
		if _, err := fmt.Fprintf(c.stdout, "\n--- Schedule without overpayment ---\n"); err != nil {
			return err
		}
		if err := output.PrettyFormat(c.stdout, result.Baseline, symbol); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(c.stdout, "\n--- Schedule with overpayment ---\n"); err != nil {
		return err
	}
	return output.PrettyFormat(c.stdout, result.Overpaid, symbol)
}
