package booking

import (
	"time"

	"soccerspot/internal/modules/promotion"
	"soccerspot/internal/pricing"
)

type QuoteRequest struct {
	FieldID         int64     `json:"field_id" binding:"required"`
	StartTime       time.Time `json:"start_time" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"required"`
	PromoCode       string    `json:"promo_code"`
}

// QuoteResponse is the checkout breakdown. Price is the quote before any
// promotion; the top-level amounts are what will actually be charged and paid out.
type QuoteResponse struct {
	FieldID         int64              `json:"field_id"`
	StartTime       time.Time          `json:"start_time"`
	EndTime         time.Time          `json:"end_time"`
	DurationMinutes int                `json:"duration_minutes"`
	Price           pricing.PriceQuote `json:"price"`
	Promotion       *promotion.Applied `json:"promotion,omitempty"`

	AmountToCharge   pricing.Money `json:"amount_to_charge"`
	OwnerPayout      pricing.Money `json:"owner_payout"`
	CommissionAmount pricing.Money `json:"commission_amount"`
	CustomerSavings  pricing.Money `json:"customer_savings"`
}

type CreateBookingResponse struct {
	ID            int64         `json:"id"`
	Status        string        `json:"status"`
	PaymentStatus string        `json:"payment_status"`
	Quote         QuoteResponse `json:"quote"`
}
