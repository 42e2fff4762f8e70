package domain

import (
	"time"

	"soccerspot/internal/pricing"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
	PaymentFree   PaymentStatus = "free"
)

// Booking records what the customer pays and what the owner is owed.
// OwnerNetAmount is the guaranteed payout after any promotion.
type Booking struct {
	ID              int64     `json:"id"`
	FieldID         int64     `json:"field_id"`
	UserID          int64     `json:"user_id"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`

	PublicAmount     pricing.Money `json:"public_amount"`
	OwnerNetAmount   pricing.Money `json:"owner_net_amount"`
	CommissionAmount pricing.Money `json:"commission_amount"`
	PromotionID      *int64        `json:"promotion_id,omitempty"`
	CustomerSavings  pricing.Money `json:"customer_savings"`

	Status        BookingStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
