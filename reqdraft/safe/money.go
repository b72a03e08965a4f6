package safe

import (
	"github.com/shopspring/decimal"
)

// moneyPlaces is the number of decimal places for monetary amounts.
const moneyPlaces = 2

// Money normalizes an amount to two decimal places with half-up rounding.
//
// Example:
//
//	cost := safe.Money(decimal.NewFromFloat(12.345)) // 12.35
func Money(value decimal.Decimal) decimal.Decimal {
	return value.Round(moneyPlaces)
}

// Total computes quantity x unitCost normalized to two decimal places.
// Non-positive inputs yield decimal.Zero so callers can treat the result as
// "not computable" without a separate error path.
func Total(quantity float64, unitCost decimal.Decimal) decimal.Decimal {
	if quantity <= 0 || !unitCost.IsPositive() {
		return decimal.Zero
	}

	return Money(decimal.NewFromFloat(quantity).Mul(unitCost))
}
