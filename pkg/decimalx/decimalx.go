package decimalx

import "github.com/shopspring/decimal"

// MustFromString parses a decimal and panics on malformed input.
// Only intended for literals in tests and fixtures.
func MustFromString(s string) decimal.Decimal {
	res, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return res
}
