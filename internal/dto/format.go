package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DateLayout  = "2006-01-02 15:04"
	placeholder = "-"
)

var currencySymbols = map[string]string{
	"usd": "$",
	"eur": "€",
	"pln": "zł",
}

// FormatPercent renders a change as "+12.00%" or "-3.50%".
func FormatPercent(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	if !d.IsNegative() {
		return "+" + d.StringFixed(2) + "%"
	}
	return d.StringFixed(2) + "%"
}

// FormatNumber groups thousands with commas and keeps at most two decimals,
// dropping trailing zeros.
func FormatNumber(v float64) string {
	s := decimal.NewFromFloat(v).Round(2).String()

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

func FormatUSD(v float64) string {
	return "$" + FormatNumber(v)
}

// FormatFiat renders an amount held in minor units with its currency symbol.
func FormatFiat(amount int64, currency string) string {
	major := decimal.New(amount, -2).InexactFloat64()
	return CurrencySymbol(currency) + FormatNumber(major)
}

// CurrencySymbol falls back to the upper-cased code for unknown currencies.
func CurrencySymbol(currency string) string {
	code := strings.ToLower(currency)
	if symbol, ok := currencySymbols[code]; ok {
		return symbol
	}
	return strings.ToUpper(code)
}

// Truncate shortens a hash or wallet address to "0x1234...abcd".
func Truncate(s string) string {
	if s == "" {
		return placeholder
	}
	if len(s) <= 10 {
		return s
	}
	return s[:6] + "..." + s[len(s)-4:]
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return placeholder
	}
	return t.Format(DateLayout)
}
