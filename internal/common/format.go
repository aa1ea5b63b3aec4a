package common

import (
	"fmt"
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the ISO 4217 code used when none is configured
const DefaultCurrency = money.USD

// CurrencyCode normalizes an ISO 4217 code, falling back to DefaultCurrency
// for blank or unknown codes.
func CurrencyCode(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if money.GetCurrency(code) == nil {
		return DefaultCurrency
	}
	return code
}

// NewMoney converts an amount in major units to money in the given currency,
// rounding half away from zero to the currency's minor unit.
func NewMoney(v float64, code string) *money.Money {
	cur := money.GetCurrency(CurrencyCode(code))
	factor := decimal.New(1, int32(cur.Fraction))
	minor := decimal.NewFromFloat(v).Mul(factor).Round(0).IntPart()
	return money.New(minor, cur.Code)
}

// FormatMoney formats an amount in the currency's display form, e.g. "$1,234.50"
func FormatMoney(v float64, code string) string {
	return NewMoney(v, code).Display()
}

// FormatSignedMoney formats an amount with an explicit sign, e.g. "+$12.00"
func FormatSignedMoney(v float64, code string) string {
	m := NewMoney(v, code)
	if m.IsPositive() {
		return "+" + m.Display()
	}
	return m.Display()
}

// FormatCompactMoney abbreviates large amounts, e.g. "$12.0B". Amounts under
// a million use the full display form.
func FormatCompactMoney(v float64, code string) string {
	abs := math.Abs(v)
	var num string
	switch {
	case abs >= 1e12:
		num = fmt.Sprintf("%.1fT", abs/1e12)
	case abs >= 1e9:
		num = fmt.Sprintf("%.1fB", abs/1e9)
	case abs >= 1e6:
		num = fmt.Sprintf("%.1fM", abs/1e6)
	default:
		return FormatMoney(v, code)
	}

	cur := money.GetCurrency(CurrencyCode(code))
	out := strings.Replace(cur.Template, "1", num, 1)
	out = strings.Replace(out, "$", cur.Grapheme, 1)
	if v < 0 {
		out = "-" + out
	}
	return out
}

// FormatSignedPct formats a percentage with an explicit sign, e.g. "+3.25%"
func FormatSignedPct(v float64) string {
	if math.Abs(v) < 0.005 {
		return "0.00%"
	}
	return fmt.Sprintf("%+.2f%%", v)
}
