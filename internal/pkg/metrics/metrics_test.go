package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"soccerspot/internal/pricing"
)

func TestObservePromotion(t *testing.T) {
	before := testutil.ToFloat64(PromotionsApplied.WithLabelValues("percent"))

	ObservePromotion(pricing.DiscountPercent, 2000)

	assert.Equal(t, before+1, testutil.ToFloat64(PromotionsApplied.WithLabelValues("percent")))
}

func TestObserveQuote(t *testing.T) {
	before := testutil.ToFloat64(QuotesTotal.WithLabelValues("field_price"))

	ObserveQuote("field_price")
	ObserveQuote("field_price")

	assert.Equal(t, before+2, testutil.ToFloat64(QuotesTotal.WithLabelValues("field_price")))
}
