package pricing

import "github.com/shopspring/decimal"

// PriceQuote is a public price together with the owner's guaranteed net
// amount. CommissionAmount absorbs the commercial rounding, so it can be
// larger than the nominal rate but never negative.
type PriceQuote struct {
	NetOwnerAmount   Money `json:"net_owner_amount"`
	PublicAmount     Money `json:"public_amount"`
	CommissionAmount Money `json:"commission_amount"`
}

// Converter translates between owner net prices and customer-facing public
// prices. It holds no mutable state and is safe for concurrent use.
type Converter struct {
	policy   Policy
	netShare decimal.Decimal
}

func NewConverter(policy Policy) (*Converter, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &Converter{
		policy:   policy,
		netShare: decimal.NewFromInt(1).Sub(policy.CommissionRate),
	}, nil
}

// MustNewConverter is like NewConverter but panics on an invalid policy.
func MustNewConverter(policy Policy) *Converter {
	c, err := NewConverter(policy)
	if err != nil {
		panic(err)
	}
	return c
}

var defaultConverter = MustNewConverter(DefaultPolicy())

// DefaultConverter returns the converter for DefaultPolicy.
func DefaultConverter() *Converter {
	return defaultConverter
}

func (c *Converter) Policy() Policy {
	return c.policy
}

// ToPublicPrice returns the price shown to customers for an owner net
// amount: net / (1 - rate), rounded up to a whole franc and then up to the
// next commercial step. A net amount of zero or less means no price is set
// and yields 0.
func (c *Converter) ToPublicPrice(net Money) Money {
	if net <= 0 {
		return 0
	}
	raw := decimal.NewFromInt(int64(net)).Div(c.netShare).Ceil()
	return c.commercialRound(Money(raw.IntPart()))
}

// ToNetPrice estimates the owner's share of a public price. It floors, so
// the estimate never overstates what the owner receives. It is not an exact
// inverse of ToPublicPrice: ToNetPrice(ToPublicPrice(x)) >= x.
func (c *Converter) ToNetPrice(public Money) Money {
	if public <= 0 {
		return 0
	}
	net := decimal.NewFromInt(int64(public)).Mul(c.netShare).Floor()
	return Money(net.IntPart())
}

// PlatformCommission is public - net. Callers must pass a consistent pair;
// the result is not clamped.
func (c *Converter) PlatformCommission(public, net Money) Money {
	return public - net
}

// Quote builds the full price picture for a net amount.
func (c *Converter) Quote(net Money) PriceQuote {
	net = nonNegative(net)
	public := c.ToPublicPrice(net)
	return PriceQuote{
		NetOwnerAmount:   net,
		PublicAmount:     public,
		CommissionAmount: c.PlatformCommission(public, net),
	}
}

// commercialRound rounds up to a multiple of the rounding step. With a step
// of 500 an amount is kept when it ends in 000, moved to x500 when the
// remainder over the thousand is at most 500, and to the next thousand
// otherwise.
func (c *Converter) commercialRound(amount Money) Money {
	step := c.policy.RoundingStep
	if amount%step == 0 {
		return amount
	}
	return (amount/step + 1) * step
}
