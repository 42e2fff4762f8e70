package promotion

import (
	"strings"
	"time"

	"soccerspot/internal/domain"
	"soccerspot/internal/pricing"
)

// BookingContext is what a promotion is matched against. Start must already
// be in the field's local time zone. PublicPrice is the price before any
// promotion.
type BookingContext struct {
	FieldID     int64
	Start       time.Time
	Minutes     int
	PublicPrice pricing.Money
	Code        string
}

// Eligible reports whether p may be applied to the booking.
func Eligible(p domain.Promotion, bc BookingContext) bool {
	if !p.IsActive || p.FieldID != bc.FieldID {
		return false
	}
	if p.StartsAt != nil && bc.Start.Before(*p.StartsAt) {
		return false
	}
	if p.EndsAt != nil && !bc.Start.Before(*p.EndsAt) {
		return false
	}
	if !p.Days.Contains(bc.Start.Weekday()) {
		return false
	}
	if !inSlot(p.SlotFromMinute, p.SlotToMinute, minuteOfDay(bc.Start)) {
		return false
	}
	if bc.PublicPrice < p.MinBookingAmount {
		return false
	}
	if p.MaxUses != nil && p.UsedCount >= *p.MaxUses {
		return false
	}
	if p.Code != "" && !strings.EqualFold(strings.TrimSpace(bc.Code), p.Code) {
		return false
	}
	return true
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// inSlot checks m against [from, to). A window with from > to wraps past
// midnight.
func inSlot(from, to *int, m int) bool {
	switch {
	case from == nil && to == nil:
		return true
	case from == nil:
		return m < *to
	case to == nil:
		return m >= *from
	case *from <= *to:
		return m >= *from && m < *to
	default:
		return m >= *from || m < *to
	}
}
