// Package format renders monetary values for people rather than machines.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/loan-amortisation/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency returns a currency string with the given symbol and thousands
// separators (e.g., "-£1,234.56"). An empty symbol falls back to "$".
func Currency(amount float64, symbol string) string {
	if symbol == "" {
		symbol = "$"
	}
	formatted := NumericCurrency(amount)
	if negative, ok := strings.CutPrefix(formatted, "-"); ok {
		return "-" + symbol + negative
	}
	return symbol + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	rounded := mathutil.Round(amount)
	formatted := printer.Sprintf("%.2f", math.Abs(rounded))
	if rounded < 0 {
		return "-" + formatted
	}
	return formatted
}

// Percent renders an annual rate the way the loan summary shows it.
func Percent(rate float64) string {
	return fmt.Sprintf("%s%% per annum", trimZeros(fmt.Sprintf("%.4f", rate)))
}

// Term renders a loan term as "N years M months".
func Term(years, months int) string {
	return fmt.Sprintf("%d %s %d %s", years, plural(years, "year"), months, plural(months, "month"))
}

func plural(n int, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}

func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
