// Package constants provides shared constants for the loan-amortisation application.
package constants

// DateLayout is the format expected in config files and requests, and is also
// the output date format for schedule rows.
const DateLayout = "2006-01-02"

// MonthLayout is used when only the calendar month of a date matters.
const MonthLayout = "2006-01"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPlaces is the number of decimal places kept in output fields
	DecimalPlaces = 2

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Tolerances
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// ResidueEpsilon is the largest leftover balance that is folded into the
	// final payment instead of being reported as outstanding.
	ResidueEpsilon = 1.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// CSVHeader is the header row of an exported schedule.
var CSVHeader = []string{"Date", "Payment", "Principal", "Interest", "Balance"}

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix is the prefix for environment variable overrides
	EnvPrefix = "AMORTISE"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxRequestSizeBytes is the default maximum request body size (64 KB)
	DefaultMaxRequestSizeBytes int64 = 64 * 1024
)

// Locale defaults
const (
	// DefaultLocale is used when no locale is configured
	DefaultLocale = "en-GB"

	// DefaultCurrencyCode is returned for locales missing from the lookup table
	DefaultCurrencyCode = "USD"
)
