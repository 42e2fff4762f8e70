package promotion

import (
	"fmt"
	"strings"
	"time"

	"soccerspot/internal/domain"
	"soccerspot/internal/pricing"
)

type CreatePromotionRequest struct {
	FieldID          int64      `json:"field_id" validate:"required,gt=0"`
	Title            string     `json:"title" validate:"required,max=120"`
	Code             string     `json:"code" validate:"omitempty,alphanum,max=32"`
	Kind             string     `json:"kind" validate:"required,oneof=percent fixed"`
	Value            float64    `json:"value" validate:"gt=0"`
	MinBookingAmount int64      `json:"min_booking_amount" validate:"gte=0"`
	Days             []int      `json:"days" validate:"dive,min=0,max=6"`
	SlotFrom         string     `json:"slot_from" validate:"omitempty,datetime=15:04"`
	SlotTo           string     `json:"slot_to" validate:"omitempty,datetime=15:04"`
	StartsAt         *time.Time `json:"starts_at"`
	EndsAt           *time.Time `json:"ends_at"`
	MaxUses          *int       `json:"max_uses" validate:"omitempty,gt=0"`
}

// Applied is the promotion chosen for a booking and its effect on prices.
type Applied struct {
	PromotionID int64                   `json:"promotion_id"`
	Title       string                  `json:"title"`
	Code        string                  `json:"code,omitempty"`
	Discount    pricing.Discount        `json:"discount"`
	Impact      pricing.PromotionImpact `json:"impact"`
}

func (r CreatePromotionRequest) toDomain(ownerID int64) (*domain.Promotion, error) {
	kind := pricing.DiscountKind(r.Kind)
	if kind == pricing.DiscountPercent && r.Value > 100 {
		return nil, fmt.Errorf("%w: percent value must not exceed 100", ErrValidation)
	}
	if r.StartsAt != nil && r.EndsAt != nil && !r.EndsAt.After(*r.StartsAt) {
		return nil, fmt.Errorf("%w: ends_at must be after starts_at", ErrValidation)
	}

	days := make([]time.Weekday, 0, len(r.Days))
	for _, d := range r.Days {
		days = append(days, time.Weekday(d))
	}

	return &domain.Promotion{
		FieldID:          r.FieldID,
		OwnerID:          ownerID,
		Title:            strings.TrimSpace(r.Title),
		Code:             strings.ToUpper(strings.TrimSpace(r.Code)),
		Discount:         pricing.Discount{Kind: kind, Value: r.Value},
		MinBookingAmount: pricing.Money(r.MinBookingAmount),
		Days:             domain.WeekdaysOf(days...),
		SlotFromMinute:   parseClock(r.SlotFrom),
		SlotToMinute:     parseClock(r.SlotTo),
		StartsAt:         r.StartsAt,
		EndsAt:           r.EndsAt,
		MaxUses:          r.MaxUses,
		IsActive:         true,
	}, nil
}

// parseClock turns an already validated "HH:MM" into minutes after midnight.
func parseClock(s string) *int {
	if s == "" {
		return nil
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return nil
	}
	m := t.Hour()*60 + t.Minute()
	return &m
}
