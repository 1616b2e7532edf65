package pricing

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/shopspring/decimal"
)

// FormatAmount renders a monetary amount for display with the given
// currency symbol and locale. Presentation only; engine values stay as
// raw decimals and the engine itself is currency agnostic.
func FormatAmount(amount decimal.Decimal, symbol string, locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	rounded, _ := amount.Round(2).Float64()
	printer := message.NewPrinter(tag)
	return symbol + printer.Sprint(number.Decimal(rounded,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}
