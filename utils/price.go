package utils

import (
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var pricePrinter = newPricePrinter()

func newPricePrinter() *message.Printer {
	tag, err := language.Parse(os.Getenv("APP_LOCALE"))
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag)
}

// FormatPrice renders a two-decimal price with locale-aware digit grouping,
// e.g. "1,499.00" for en and "1.499,00" for id.
func FormatPrice(price float64) string {
	return pricePrinter.Sprint(number.Decimal(price,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
