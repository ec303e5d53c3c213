package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PriorityRate множитель итоговой суммы при приоритетной доставке (+10%)
var PriorityRate = decimal.RequireFromString("1.10")

// Subtotal sums price*quantity over lines.
func Subtotal(lines []CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.LineTotal())
	}
	return sum
}

// ApplyPriority returns subtotal with the priority surcharge when priority is set.
func ApplyPriority(subtotal decimal.Decimal, priority bool) decimal.Decimal {
	if !priority {
		return subtotal
	}
	return subtotal.Mul(PriorityRate)
}

// RoundCents is the display rule: 54.978 -> 54.98.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ValidationError describes the first invalid field of an entity.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func fieldError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
