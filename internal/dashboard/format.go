package dashboard

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// FormatCapacity formatea una capacidad en kWh con separadores en español ("12.500,5 kWh").
func FormatCapacity(d decimal.Decimal) string {
	p := message.NewPrinter(language.Spanish)
	return p.Sprintf("%v kWh", number.Decimal(d.InexactFloat64(), number.MaxFractionDigits(2)))
}

// FormatCount formatea un entero con separadores de miles en español.
func FormatCount(n int) string {
	return message.NewPrinter(language.Spanish).Sprint(number.Decimal(n))
}
