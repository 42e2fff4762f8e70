package promotion

import (
	"testing"
	"time"

	"soccerspot/internal/domain"
	"soccerspot/internal/pricing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func TestEligible(t *testing.T) {
	start := time.Date(2026, 10, 17, 19, 0, 0, 0, time.UTC)
	other := start.Weekday() + 1
	if other > time.Saturday {
		other = time.Sunday
	}

	base := domain.Promotion{
		FieldID:  1,
		Discount: pricing.Discount{Kind: pricing.DiscountPercent, Value: 10},
		IsActive: true,
	}
	bc := BookingContext{FieldID: 1, Start: start, Minutes: 90, PublicPrice: 15500}

	tests := []struct {
		name   string
		modify func(p *domain.Promotion, bc *BookingContext)
		want   bool
	}{
		{"plain promotion", func(*domain.Promotion, *BookingContext) {}, true},
		{"inactive", func(p *domain.Promotion, _ *BookingContext) { p.IsActive = false }, false},
		{"other field", func(p *domain.Promotion, _ *BookingContext) { p.FieldID = 2 }, false},
		{"not started", func(p *domain.Promotion, _ *BookingContext) { p.StartsAt = timePtr(start.Add(time.Hour)) }, false},
		{"starts exactly now", func(p *domain.Promotion, _ *BookingContext) { p.StartsAt = timePtr(start) }, true},
		{"ended", func(p *domain.Promotion, _ *BookingContext) { p.EndsAt = timePtr(start) }, false},
		{"matching weekday", func(p *domain.Promotion, _ *BookingContext) { p.Days = domain.WeekdaysOf(start.Weekday()) }, true},
		{"other weekday", func(p *domain.Promotion, _ *BookingContext) { p.Days = domain.WeekdaysOf(other) }, false},
		{"inside slot", func(p *domain.Promotion, _ *BookingContext) {
			p.SlotFromMinute, p.SlotToMinute = intPtr(18*60), intPtr(22*60)
		}, true},
		{"slot end is exclusive", func(p *domain.Promotion, _ *BookingContext) {
			p.SlotFromMinute, p.SlotToMinute = intPtr(8*60), intPtr(19*60)
		}, false},
		{"overnight slot", func(p *domain.Promotion, _ *BookingContext) {
			p.SlotFromMinute, p.SlotToMinute = intPtr(18*60), intPtr(2*60)
		}, true},
		{"open ended slot", func(p *domain.Promotion, _ *BookingContext) { p.SlotFromMinute = intPtr(20 * 60) }, false},
		{"below minimum amount", func(p *domain.Promotion, _ *BookingContext) { p.MinBookingAmount = 20000 }, false},
		{"minimum amount met", func(p *domain.Promotion, _ *BookingContext) { p.MinBookingAmount = 15500 }, true},
		{"usage cap reached", func(p *domain.Promotion, _ *BookingContext) { p.MaxUses, p.UsedCount = intPtr(3), 3 }, false},
		{"usage left", func(p *domain.Promotion, _ *BookingContext) { p.MaxUses, p.UsedCount = intPtr(3), 2 }, true},
		{"code missing", func(p *domain.Promotion, _ *BookingContext) { p.Code = "GOAL" }, false},
		{"code matches case-insensitively", func(p *domain.Promotion, bc *BookingContext) {
			p.Code = "GOAL"
			bc.Code = " goal "
		}, true},
		{"wrong code", func(p *domain.Promotion, bc *BookingContext) {
			p.Code = "GOAL"
			bc.Code = "PENALTY"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, c := base, bc
			tt.modify(&p, &c)
			assert.Equal(t, tt.want, Eligible(p, c))
		})
	}
}
