package chart

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatCurrency renders a price as dollars with thousands separators.
// Whole amounts drop the cents: 25000 -> "$25,000", 1234.5 -> "$1,234.50".
func FormatCurrency(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	whole := d.IntPart()
	out := sign + "$" + printer.Sprintf("%d", whole)

	frac := d.Sub(decimal.NewFromInt(whole))
	if !frac.IsZero() {
		out += strings.TrimPrefix(frac.StringFixed(2), "0")
	}
	return out
}

// FormatCount renders a tick value of a count axis: integers get thousands
// separators, fractions are printed as-is.
func FormatCount(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return printer.Sprintf("%d", int64(v))
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
