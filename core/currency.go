package core

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	currencySymbol = "$"

	// centsExponent scales an integer cent amount to dollars (10^-2).
	centsExponent int32 = -2

	// displayPrecision is the number of fractional digits shown (dollars only).
	displayPrecision int32 = 0
)

// displayPrinter is pinned to US English so grouping never follows the host locale.
var displayPrinter = message.NewPrinter(language.AmericanEnglish)

// CentsToDollars converts an integer cent amount to a whole-dollar amount.
// Uses decimal arithmetic with banker's rounding to avoid floating-point errors.
func CentsToDollars(cents int64) decimal.Decimal {
	return decimal.New(cents, centsExponent).RoundBank(displayPrecision)
}

// FormatCents renders a cent amount as a "$"-prefixed, comma-grouped dollar
// string with no fractional digits, e.g. 123456700 -> "$1,234,567".
// Negative amounts render as "-$1,234".
func FormatCents(cents int64) string {
	dollars := CentsToDollars(cents)

	sign := ""
	if dollars.IsNegative() {
		sign = "-"
		dollars = dollars.Neg()
	}

	return sign + currencySymbol + displayPrinter.Sprintf("%d", dollars.IntPart())
}
