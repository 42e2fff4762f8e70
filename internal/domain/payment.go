package domain

import (
	"time"

	"soccerspot/internal/pricing"
)

type GatewayPaymentStatus string

const (
	GatewayPaymentCreated GatewayPaymentStatus = "created"
	GatewayPaymentPaid    GatewayPaymentStatus = "paid"
	GatewayPaymentFailed  GatewayPaymentStatus = "failed"
)

// Payment is one invoice opened with a payment gateway for a booking.
type Payment struct {
	ID            int64                `json:"id"`
	BookingID     int64                `json:"booking_id"`
	Provider      string               `json:"provider"`
	TransactionID string               `json:"transaction_id"`
	Amount        pricing.Money        `json:"amount"`
	Currency      string               `json:"currency"`
	Status        GatewayPaymentStatus `json:"status"`
	PaymentURL    string               `json:"payment_url"`
	NotifyRawBody string               `json:"-"`
	FailureReason string               `json:"failure_reason,omitempty"`
	PaidAt        *time.Time           `json:"paid_at,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}
