package currency

import (
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"INR": "₹",
	"JPY": "¥",
}

// Currencies rendered without minor units.
var wholeUnits = map[string]bool{
	"IDR": true,
	"JPY": true,
}

// Format renders an amount the way en-US locale formatting does:
// "$1,234.50", "€99.00". Unknown codes are prefixed: "CHF 12.00".
func Format(amount float64, code string) string {
	code = strings.ToUpper(code)
	if code == "" {
		code = "USD"
	}

	decimals := 2
	if wholeUnits[code] {
		decimals = 0
	}

	negative := amount < 0
	if negative {
		amount = -amount
	}

	scale := math.Pow(10, float64(decimals))
	rounded := math.Round(amount*scale) / scale
	formatted := message.NewPrinter(language.AmericanEnglish).
		Sprint(number.Decimal(rounded, number.Scale(decimals)))

	prefix, ok := symbols[code]
	if !ok {
		prefix = code + " "
	}

	result := prefix + formatted
	if negative {
		result = "-" + result
	}
	return result
}
