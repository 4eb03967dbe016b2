package services

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var amountPrinter = message.NewPrinter(language.English)

// FormatPHP formats an amount as Philippine pesos with thousands grouping
// and exactly 2 decimal places (e.g., PHP 1,234,567.89). The amount is
// rounded with Round2 first so every surface shows the same figure.
func FormatPHP(amount float64) string {
	amount = Round2(amount)
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	result := "PHP " + amountPrinter.Sprintf("%.2f", amount)
	if negative {
		result = "-" + result
	}
	return result
}

// FormatQuantity renders a quantity the way it is ordered: rounded up to the
// next whole unit, with thousands grouping.
func FormatQuantity(q float64) string {
	return amountPrinter.Sprintf("%d", int64(DisplayQuantity(q)))
}
