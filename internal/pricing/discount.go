package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

type DiscountKind string

const (
	DiscountPercent DiscountKind = "percent"
	DiscountFixed   DiscountKind = "fixed"
)

func (k DiscountKind) Valid() bool {
	return k == DiscountPercent || k == DiscountFixed
}

// Discount is a promotion's reduction. For DiscountPercent, Value is a
// percentage; for DiscountFixed it is an amount in francs.
type Discount struct {
	Kind  DiscountKind `json:"kind"`
	Value float64      `json:"value"`
}

var hundred = decimal.NewFromInt(100)

// ApplyDiscount reduces amount by the discount. Percentages above 100 are
// treated as 100. The result is rounded to a whole franc and never goes
// below zero, so an oversized discount makes the booking free.
//
// A non-positive amount yields 0. A non-positive (or NaN) value, or an
// unknown kind, leaves amount unchanged.
func ApplyDiscount(amount Money, kind DiscountKind, value float64) Money {
	if amount <= 0 {
		return 0
	}
	if !(value > 0) {
		return amount
	}

	base := decimal.NewFromInt(int64(amount))
	var result decimal.Decimal
	switch kind {
	case DiscountPercent:
		pct := hundred
		if value < 100 {
			pct = decimal.NewFromFloat(value)
		}
		off := base.Mul(pct).Div(hundred).Round(0)
		result = base.Sub(off)
	case DiscountFixed:
		if math.IsInf(value, 1) {
			return 0
		}
		result = base.Sub(decimal.NewFromFloat(value))
	default:
		return amount
	}

	result = result.Round(0)
	if result.Sign() < 0 {
		return 0
	}
	return Money(result.IntPart())
}

// Apply is ApplyDiscount with the receiver's kind and value.
func (d Discount) Apply(amount Money) Money {
	return ApplyDiscount(amount, d.Kind, d.Value)
}
