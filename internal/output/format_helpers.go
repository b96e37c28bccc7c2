package output

import (
	"strconv"

	"github.com/homewise/affordability/pkg/money"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as AUD with thousands separators and cents.
func FormatCurrency(amount decimal.Decimal) string { return money.Format(amount) }

// FormatWholeCurrency formats a decimal as AUD rounded to whole dollars.
func FormatWholeCurrency(amount decimal.Decimal) string { return money.FormatWhole(amount) }

// FormatPercentage formats an already-scaled percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return money.Percent(amount, 2) }

// FormatRate formats a rate fraction (0.0685) as a percentage ("6.85%").
func FormatRate(rate decimal.Decimal) string { return money.Percent(rate.Mul(decimalHundred), 2) }

// FormatRatio formats an optional ratio; nil means no income to measure against.
func FormatRatio(ratio *decimal.Decimal) string {
	if ratio == nil {
		return "n/a"
	}
	return ratio.StringFixed(3)
}

var decimalHundred = decimal.NewFromInt(100)

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }
