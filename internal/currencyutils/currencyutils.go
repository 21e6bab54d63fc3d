// Package currencyutils provides the shared locale-aware numeric literal
// parser and currency token normalization used by every extractor. Keeping
// the comma/period disambiguation in one place stops the rules from drifting
// apart between pattern cascades.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency codes produced by token normalization.
const (
	CurrencyCRC = "CRC"
	CurrencyUSD = "USD"
)

var symbolRe = regexp.MustCompile(`[₡¢$\s']`)

// ParseAmount parses a numeric literal that may use either locale convention
// for grouping and decimals. The rules, applied in order:
//
//   - both comma and period present: whichever occurs last is the decimal
//     separator, the other is grouping ("1,234.56" and "1.234,56" are both
//     1234.56)
//   - only commas: a single comma followed by exactly two digits is the
//     decimal separator ("45,00" is 45.00); anything else is grouping
//     ("1,234" is 1234)
//   - only periods: two or fewer trailing digits mean a decimal separator;
//     three trailing digits with grouping shape mean thousands ("1.850" is
//     1850, "1.234.567" is 1234567)
func ParseAmount(literal string) (decimal.Decimal, error) {
	s := symbolRe.ReplaceAllString(strings.TrimSpace(literal), "")
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount literal %q", literal)
	}

	hasComma := strings.Contains(s, ",")
	hasPeriod := strings.Contains(s, ".")

	switch {
	case hasComma && hasPeriod:
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		last := strings.LastIndex(s, ",")
		if strings.Count(s, ",") == 1 && len(s)-last-1 == 2 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasPeriod:
		last := strings.LastIndex(s, ".")
		frac := len(s) - last - 1
		if frac == 3 && (strings.Count(s, ".") > 1 || last <= 3) {
			s = strings.ReplaceAll(s, ".", "")
		} else {
			s = strings.ReplaceAll(s[:last], ".", "") + "." + s[last+1:]
		}
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount %q: %w", literal, err)
	}
	return amount, nil
}

// NormalizeCurrencyToken maps a captured currency symbol or code to an
// ISO-like code. Unrecognized tokens return "" so the caller can apply the
// cascade's default currency.
func NormalizeCurrencyToken(token string) string {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "₡", "¢", "CRC":
		return CurrencyCRC
	case "$", "US$", "USD":
		return CurrencyUSD
	default:
		return ""
	}
}

// FormatAmount renders an amount with its currency code for logs and
// human-facing output, e.g. "CRC 25500.00".
func FormatAmount(amount decimal.Decimal, currency string) string {
	if currency == "" {
		return amount.StringFixed(2)
	}
	return currency + " " + amount.StringFixed(2)
}
