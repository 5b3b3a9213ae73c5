// Package money provides rounding and locale-aware currency formatting.
package money

import (
	"fmt"
	"math"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Round2 rounds an amount to two decimal places (cents).
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// Format renders an amount with the currency's symbol using the given
// BCP 47 locale (e.g. "en-US"). Unknown currency codes fall back to a
// plain dollar rendering rather than failing.
func Format(amount float64, code, locale string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return fmt.Sprintf("$%.2f", amount)
	}

	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.AmericanEnglish
	}

	p := message.NewPrinter(tag)
	return p.Sprintf("%v%v",
		currency.Symbol(unit),
		number.Decimal(amount,
			number.MinFractionDigits(2),
			number.MaxFractionDigits(2),
		),
	)
}

// FormatUSD is a shorthand for the default currency and locale.
func FormatUSD(amount float64) string {
	return Format(amount, "USD", "en-US")
}
