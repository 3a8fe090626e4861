package export

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Formatter renders numbers the same way in every export
type Formatter struct {
	CurrencySymbol string
}

// Money renders d with the currency prefix and exactly two decimals, e.g. "$1234.50"
func (f Formatter) Money(d decimal.Decimal) string {
	return f.CurrencySymbol + d.StringFixed(2)
}

// Percent renders p with one decimal and a trailing %, e.g. "46.7%"
func (f Formatter) Percent(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64) + "%"
}

// Count renders an integer count
func (f Formatter) Count(n int) string {
	return strconv.Itoa(n)
}
