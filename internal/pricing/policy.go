package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCommissionRate = errors.New("commission rate must be strictly between 0 and 1")
	ErrInvalidRoundingStep   = errors.New("rounding step must be positive")
)

// Policy is the commission policy a Converter applies. It is a business
// rule, not a deployment parameter: production code uses DefaultPolicy.
type Policy struct {
	// CommissionRate is the platform's minimum guaranteed cut of the public price.
	CommissionRate decimal.Decimal
	// RoundingStep is the commercial denomination public prices are rounded up to.
	RoundingStep Money
}

// DefaultPolicy is 3% commission with public prices ending in 000 or 500.
func DefaultPolicy() Policy {
	return Policy{
		CommissionRate: decimal.New(3, -2),
		RoundingStep:   500,
	}
}

func (p Policy) Validate() error {
	if p.CommissionRate.Sign() <= 0 || p.CommissionRate.Cmp(decimal.NewFromInt(1)) >= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidCommissionRate, p.CommissionRate.String())
	}
	if p.RoundingStep <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidRoundingStep, p.RoundingStep)
	}
	return nil
}
