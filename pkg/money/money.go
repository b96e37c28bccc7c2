// Package money holds rounding and display helpers for AUD amounts.
package money

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

var thousand = decimal.NewFromInt(1000)

// Cents rounds to two decimal places.
func Cents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Thousands rounds to the nearest thousand, used for headline figures.
func Thousands(d decimal.Decimal) decimal.Decimal {
	return d.Div(thousand).Round(0).Mul(thousand)
}

// Min returns the smaller amount.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the larger amount.
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// NonNegative clamps negative amounts to zero.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	return Max(d, decimal.Zero)
}

// FormatWhole renders whole dollars with thousands separators, e.g. "$345,270".
func FormatWhole(d decimal.Decimal) string {
	r := d.Round(0)
	sign := ""
	if r.IsNegative() {
		sign = "-"
		r = r.Abs()
	}
	return sign + "$" + humanize.Comma(r.IntPart())
}

// Format renders dollars and cents with thousands separators, e.g. "$1,608.97".
func Format(d decimal.Decimal) string {
	r := d.Round(2)
	sign := ""
	if r.IsNegative() {
		sign = "-"
		r = r.Abs()
	}
	fixed := r.StringFixed(2)
	cents := fixed[strings.IndexByte(fixed, '.'):]
	return sign + "$" + humanize.Comma(r.IntPart()) + cents
}

// Percent renders a percentage value (already scaled by 100) with the given places.
func Percent(d decimal.Decimal, places int32) string {
	return d.StringFixed(places) + "%"
}
