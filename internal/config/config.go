// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/loan-amortisation/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for loan-amortisation.
type Configuration struct {
	Loan        LoanConfig
	Overpayment OverpaymentConfig
	Locale      string            `yaml:"locale,omitempty"`
	Currencies  map[string]string `yaml:"currencies,omitempty"` // extra locale -> ISO code entries
	Logging     LoggingConfig     `yaml:"logging,omitempty"`
	Output      OutputConfig      `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format       string `yaml:"format,omitempty"` // pretty, csv
	WithBaseline bool   `yaml:"withBaseline,omitempty"`
}

// LoanConfig holds the contractual loan as entered by the user.
type LoanConfig struct {
	Principal    float64 `yaml:"principal"`
	InterestRate float64 `yaml:"interestRate"` // annual percentage
	TermYears    int     `yaml:"termYears"`
	TermMonths   int     `yaml:"termMonths"`
	StartDate    string  `yaml:"startDate"` // YYYY-MM-DD
}

// OverpaymentConfig holds the optional overpayments.
type OverpaymentConfig struct {
	RecurringExtra float64 `yaml:"recurringExtra,omitempty"`
	LumpSum        float64 `yaml:"lumpSum,omitempty"`
	LumpSumDate    string  `yaml:"lumpSumDate,omitempty"` // YYYY-MM-DD, required when lumpSum > 0
}

// keys lists every scalar setting so that environment overrides apply even
// when the file omits them.
var keys = []string{
	"loan.principal",
	"loan.interestrate",
	"loan.termyears",
	"loan.termmonths",
	"loan.startdate",
	"overpayment.recurringextra",
	"overpayment.lumpsum",
	"overpayment.lumpsumdate",
	"locale",
	"logging.level",
	"logging.format",
	"logging.outputfile",
	"output.format",
	"output.withbaseline",
}

// newViper returns a viper instance reading YAML with AMORTISE_ prefixed
// environment overrides, e.g. AMORTISE_LOAN_PRINCIPAL.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("locale", constants.DefaultLocale)
	for _, key := range keys {
		v.MustBindEnv(key)
	}
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}
