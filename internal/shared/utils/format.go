package utils

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var amountPrinter = message.NewPrinter(language.English)

// FormatAmount renders a currency amount with thousands separators and two
// decimals, e.g. 1250.5 -> "1,250.50".
func FormatAmount(amount float64) string {
	return amountPrinter.Sprintf("%.2f", amount)
}
