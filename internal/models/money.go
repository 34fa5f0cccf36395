package models

import "github.com/shopspring/decimal"

// AmountScale is the number of decimal places accepted for amounts and fee
// rates. Values derived from them at acceptance carry up to twice as many.
const AmountScale = 6

// FitsScale reports whether d has no more than AmountScale decimal places.
func FitsScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(AmountScale))
}
