package domain

import "github.com/shopspring/decimal" // Fixed-point money

// MaxAmount is the largest magnitude a decimal(14,2) money column holds
var MaxAmount = decimal.RequireFromString("999999999999.99")

// AmountInRange reports whether d fits a money column
func AmountInRange(d decimal.Decimal) bool {
	return d.Abs().LessThanOrEqual(MaxAmount)
}
