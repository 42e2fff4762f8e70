package domain

import (
	"time"

	"soccerspot/internal/pricing"
)

// Weekdays is a bit set of days a promotion runs on. The zero value means
// every day.
type Weekdays uint8

func WeekdaysOf(days ...time.Weekday) Weekdays {
	var w Weekdays
	for _, d := range days {
		w |= 1 << uint(d)
	}
	return w
}

func (w Weekdays) Contains(d time.Weekday) bool {
	return w == 0 || w&(1<<uint(d)) != 0
}

// Promotion is an owner-funded discount on one field. An empty Code means
// the promotion applies automatically; otherwise the customer must enter it.
type Promotion struct {
	ID       int64            `json:"id"`
	FieldID  int64            `json:"field_id"`
	OwnerID  int64            `json:"owner_id"`
	Title    string           `json:"title"`
	Code     string           `json:"code,omitempty"`
	Discount pricing.Discount `json:"discount"`

	MinBookingAmount pricing.Money `json:"min_booking_amount"`
	Days             Weekdays      `json:"days"`
	// Slot window in minutes after midnight, start inclusive, end exclusive.
	SlotFromMinute *int       `json:"slot_from_minute,omitempty"`
	SlotToMinute   *int       `json:"slot_to_minute,omitempty"`
	StartsAt       *time.Time `json:"starts_at,omitempty"`
	EndsAt         *time.Time `json:"ends_at,omitempty"`
	MaxUses        *int       `json:"max_uses,omitempty"`
	UsedCount      int        `json:"used_count"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
