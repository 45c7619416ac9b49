package services

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var brl = message.NewPrinter(language.BrazilianPortuguese)

// FormatCurrency formats an amount as Brazilian Real, e.g. R$ 1.234,56.
// Negative amounts keep their sign (-R$ 10,00) so losses are never hidden.
// The amount is rounded with Round2 first, so FormatCurrency(Round2(x)) ==
// FormatCurrency(x).
func FormatCurrency(amount float64) string {
	amount = Round2(amount)
	negative := amount < 0
	if negative {
		amount = -amount
	}

	result := "R$ " + brl.Sprintf("%.2f", amount)
	if negative {
		result = "-" + result
	}
	return result
}

// FormatPercent formats a margin percentage with one decimal, e.g. 85,0%.
func FormatPercent(p float64) string {
	return brl.Sprintf("%.1f", Round2(p)) + "%"
}
