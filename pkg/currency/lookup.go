// Package currency resolves display currencies from browser-style locale
// strings. It has no bearing on schedule arithmetic.
package currency

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/iwvelando/loan-amortisation/pkg/constants"
)

// Lookup maps a locale such as "en-GB" to an ISO 4217 code and its symbol.
type Lookup interface {
	Code(locale string) string
	Symbol(locale string) string
}

var defaultLocales = map[string]string{
	"en-GB": "GBP",
	"en-US": "USD",
	"fr-FR": "EUR",
	"de-DE": "EUR",
	"es-ES": "EUR",
	"it-IT": "EUR",
	"ja-JP": "JPY",
	"zh-CN": "CNY",
	"in-IN": "INR",
	"au-AU": "AUD",
	"ca-CA": "CAD",
}

// LocaleTable is a Lookup backed by a fixed locale to currency code table.
// Unknown locales resolve to the fallback code.
type LocaleTable struct {
	codes    map[string]string
	fallback string
}

// NewLocaleTable returns the built-in table with a USD fallback.
func NewLocaleTable() *LocaleTable {
	codes := make(map[string]string, len(defaultLocales))
	for locale, code := range defaultLocales {
		codes[locale] = code
	}
	return &LocaleTable{codes: codes, fallback: constants.DefaultCurrencyCode}
}

// With returns a copy of the table with extra or replacement entries.
// Entries whose code go-money does not know are skipped and returned.
func (t *LocaleTable) With(entries map[string]string) (*LocaleTable, []string) {
	codes := make(map[string]string, len(t.codes)+len(entries))
	for locale, code := range t.codes {
		codes[locale] = code
	}
	var rejected []string
	for locale, code := range entries {
		code = strings.ToUpper(strings.TrimSpace(code))
		if money.GetCurrency(code) == nil {
			rejected = append(rejected, locale)
			continue
		}
		codes[Normalize(locale)] = code
	}
	return &LocaleTable{codes: codes, fallback: t.fallback}, rejected
}

// Code returns the ISO currency code for locale.
func (t *LocaleTable) Code(locale string) string {
	if code, ok := t.codes[Normalize(locale)]; ok {
		return code
	}
	return t.fallback
}

// Symbol returns the currency symbol for locale, e.g. "£" for "en-GB".
func (t *LocaleTable) Symbol(locale string) string {
	return SymbolForCode(t.Code(locale))
}

// SymbolForCode returns the grapheme go-money knows for an ISO code, or the
// code itself when it is unknown.
func SymbolForCode(code string) string {
	if c := money.GetCurrency(code); c != nil {
		return c.Grapheme
	}
	return code
}

// Normalize canonicalises a locale to the "ll-RR" form used by the table:
// underscores become hyphens, the language is lower-cased and the region
// upper-cased.
func Normalize(locale string) string {
	trimmed := strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
	lang, region, found := strings.Cut(trimmed, "-")
	if !found {
		return strings.ToLower(lang)
	}
	return strings.ToLower(lang) + "-" + strings.ToUpper(region)
}
