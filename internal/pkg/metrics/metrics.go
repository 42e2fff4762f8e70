package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"soccerspot/internal/pricing"
)

var QuotesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "soccerspot",
	Subsystem: "pricing",
	Name:      "quotes_total",
	Help:      "Price quotes served, by endpoint.",
}, []string{"endpoint"})

var PromotionsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "soccerspot",
	Subsystem: "promotions",
	Name:      "applied_total",
	Help:      "Promotions applied to bookings, by discount kind.",
}, []string{"kind"})

var PromotionSavings = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "soccerspot",
	Subsystem: "promotions",
	Name:      "customer_savings_xof",
	Help:      "Customer savings per applied promotion in XOF.",
	Buckets:   []float64{500, 1000, 2000, 5000, 10000, 20000, 50000},
})

var PaymentNotifications = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "soccerspot",
	Subsystem: "payments",
	Name:      "notifications_total",
	Help:      "Gateway notifications processed, by outcome.",
}, []string{"outcome"})

func ObserveQuote(endpoint string) {
	QuotesTotal.WithLabelValues(endpoint).Inc()
}

func ObservePromotion(kind pricing.DiscountKind, savings pricing.Money) {
	PromotionsApplied.WithLabelValues(string(kind)).Inc()
	PromotionSavings.Observe(float64(savings))
}

func Handler() http.Handler {
	return promhttp.Handler()
}
