package pricing

// PromotionImpact is the before/after picture of an owner-funded promotion.
type PromotionImpact struct {
	OwnerNetBefore    Money `json:"owner_net_before"`
	OwnerNetAfter     Money `json:"owner_net_after"`
	PublicPriceBefore Money `json:"public_price_before"`
	PublicPriceAfter  Money `json:"public_price_after"`
	CommissionBefore  Money `json:"commission_before"`
	CommissionAfter   Money `json:"commission_after"`
	OwnerLoss         Money `json:"owner_loss"`
	CustomerSavings   Money `json:"customer_savings"`
	PlatformDelta     Money `json:"platform_delta"`
}

// Candidate is a promotion that already passed the caller's eligibility
// checks. ID is opaque to the calculator.
type Candidate struct {
	ID       string
	Discount Discount
}

// Selection is the winning candidate and its impact.
type Selection struct {
	Candidate Candidate
	Index     int
	Impact    PromotionImpact
}

// ImpactCalculator computes the effect of promotions. The discount always
// comes out of the owner's net amount; the public price and the commission
// are derived again from the discounted net instead of being scaled.
type ImpactCalculator struct {
	conv *Converter
}

// NewImpactCalculator returns a calculator backed by conv, or by the
// default converter when conv is nil.
func NewImpactCalculator(conv *Converter) *ImpactCalculator {
	if conv == nil {
		conv = DefaultConverter()
	}
	return &ImpactCalculator{conv: conv}
}

func (c *ImpactCalculator) Converter() *Converter {
	return c.conv
}

func (c *ImpactCalculator) ApplyDiscount(amount Money, kind DiscountKind, value float64) Money {
	return ApplyDiscount(amount, kind, value)
}

// ComputeImpact applies the discount to the owner's net price and reports
// the deltas for owner, customer and platform. A negative net is treated
// as no price.
func (c *ImpactCalculator) ComputeImpact(netBefore Money, kind DiscountKind, value float64) PromotionImpact {
	netBefore = nonNegative(netBefore)

	publicBefore := c.conv.ToPublicPrice(netBefore)
	commissionBefore := c.conv.PlatformCommission(publicBefore, netBefore)

	netAfter := ApplyDiscount(netBefore, kind, value)

	publicAfter := c.conv.ToPublicPrice(netAfter)
	commissionAfter := c.conv.PlatformCommission(publicAfter, netAfter)

	return PromotionImpact{
		OwnerNetBefore:    netBefore,
		OwnerNetAfter:     netAfter,
		PublicPriceBefore: publicBefore,
		PublicPriceAfter:  publicAfter,
		CommissionBefore:  commissionBefore,
		CommissionAfter:   commissionAfter,
		OwnerLoss:         netBefore - netAfter,
		CustomerSavings:   publicBefore - publicAfter,
		PlatformDelta:     commissionBefore - commissionAfter,
	}
}

// SelectBestPromotion returns the candidate that saves the customer the
// most. On equal savings the earliest candidate wins. ok is false when
// there are no candidates.
func (c *ImpactCalculator) SelectBestPromotion(candidates []Candidate, netBefore Money) (best Selection, ok bool) {
	for i, cand := range candidates {
		impact := c.ComputeImpact(netBefore, cand.Discount.Kind, cand.Discount.Value)
		if !ok || impact.CustomerSavings > best.Impact.CustomerSavings {
			best = Selection{Candidate: cand, Index: i, Impact: impact}
			ok = true
		}
	}
	return best, ok
}
