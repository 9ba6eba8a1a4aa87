package currency

import (
	"testing"
)

func TestLocaleTableCode(t *testing.T) {
	table := NewLocaleTable()

	tests := []struct {
		locale   string
		expected string
	}{
		{"en-GB", "GBP"},
		{"en-US", "USD"},
		{"fr-FR", "EUR"},
		{"de-DE", "EUR"},
		{"es-ES", "EUR"},
		{"it-IT", "EUR"},
		{"ja-JP", "JPY"},
		{"zh-CN", "CNY"},
		{"in-IN", "INR"},
		{"au-AU", "AUD"},
		{"ca-CA", "CAD"},
		{"en_gb", "GBP"},
		{" EN-gb ", "GBP"},
		{"pt-BR", "USD"},
		{"", "USD"},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			if got := table.Code(tt.locale); got != tt.expected {
				t.Errorf("Code(%q) = %s, expected %s", tt.locale, got, tt.expected)
			}
		})
	}
}

func TestLocaleTableSymbol(t *testing.T) {
	table := NewLocaleTable()

	tests := []struct {
		locale   string
		expected string
	}{
		{"en-GB", "£"},
		{"en-US", "$"},
		{"de-DE", "€"},
		{"ja-JP", "¥"},
		{"in-IN", "₹"},
		{"unknown", "$"},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			if got := table.Symbol(tt.locale); got != tt.expected {
				t.Errorf("Symbol(%q) = %s, expected %s", tt.locale, got, tt.expected)
			}
		})
	}
}

func TestLocaleTableWith(t *testing.T) {
	base := NewLocaleTable()
	extended, rejected := base.With(map[string]string{
		"pt_br": "brl",
		"en-GB": "EUR",
		"xx-XX": "NOTACODE",
	})

	if len(rejected) != 1 || rejected[0] != "xx-XX" {
		t.Errorf("With() rejected = %v, expected [xx-XX]", rejected)
	}
	if got := extended.Code("pt-BR"); got != "BRL" {
		t.Errorf("Code(pt-BR) = %s, expected BRL", got)
	}
	if got := extended.Code("en-GB"); got != "EUR" {
		t.Errorf("Code(en-GB) = %s, expected EUR after override", got)
	}
	if got := base.Code("en-GB"); got != "GBP" {
		t.Errorf("base table was modified: Code(en-GB) = %s", got)
	}
	if got := extended.Code("xx-XX"); got != "USD" {
		t.Errorf("Code(xx-XX) = %s, expected fallback USD", got)
	}
}

func TestSymbolForCode(t *testing.T) {
	if got := SymbolForCode("EUR"); got != "€" {
		t.Errorf("SymbolForCode(EUR) = %s, expected €", got)
	}
	if got := SymbolForCode("ZZZ"); got != "ZZZ" {
		t.Errorf("SymbolForCode(ZZZ) = %s, expected the code back", got)
	}
}

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"en_gb":  "en-GB",
		"EN-US":  "en-US",
		"fr":     "fr",
		" de-de": "de-DE",
	}
	for input, expected := range tests {
		if got := Normalize(input); got != expected {
			t.Errorf("Normalize(%q) = %q, expected %q", input, got, expected)
		}
	}
}

var _ Lookup = (*LocaleTable)(nil)
