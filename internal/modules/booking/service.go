package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"soccerspot/internal/domain"
	"soccerspot/internal/modules/promotion"
	"soccerspot/internal/pkg/metrics"
	"soccerspot/internal/pricing"
	"soccerspot/internal/repository"

	"go.uber.org/zap"
)

type Service struct {
	bookings BookingRepository
	fields   FieldPricer
	promos   PromotionPicker
	conv     *pricing.Converter
	loc      *time.Location
	now      func() time.Time
	log      *zap.Logger
}

type Option func(*Service)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the zone promotion day and slot rules are evaluated in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func NewService(bookings BookingRepository, fields FieldPricer, promos PromotionPicker, conv *pricing.Converter, log *zap.Logger, opts ...Option) *Service {
	if conv == nil {
		conv = pricing.DefaultConverter()
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{
		bookings: bookings,
		fields:   fields,
		promos:   promos,
		conv:     conv,
		loc:      time.UTC,
		now:      time.Now,
		log:      log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Quote prices a prospective booking and applies the best eligible promotion.
func (s *Service) Quote(ctx context.Context, req QuoteRequest) (*QuoteResponse, error) {
	if req.FieldID <= 0 || req.StartTime.IsZero() {
		return nil, fmt.Errorf("%w: field_id and start_time are required", ErrValidation)
	}
	if req.StartTime.Before(s.now()) {
		return nil, fmt.Errorf("%w: start_time is in the past", ErrValidation)
	}

	_, net, err := s.fields.ResolveNet(ctx, req.FieldID, req.DurationMinutes)
	if err != nil {
		return nil, err
	}

	price := s.conv.Quote(net)
	start := req.StartTime.In(s.loc)
	q := &QuoteResponse{
		FieldID:          req.FieldID,
		StartTime:        start,
		EndTime:          start.Add(time.Duration(req.DurationMinutes) * time.Minute),
		DurationMinutes:  req.DurationMinutes,
		Price:            price,
		AmountToCharge:   price.PublicAmount,
		OwnerPayout:      price.NetOwnerAmount,
		CommissionAmount: price.CommissionAmount,
	}

	if s.promos == nil {
		return q, nil
	}
	applied, ok, err := s.promos.BestFor(ctx, promotion.BookingContext{
		FieldID:     req.FieldID,
		Start:       start,
		Minutes:     req.DurationMinutes,
		PublicPrice: price.PublicAmount,
		Code:        strings.TrimSpace(req.PromoCode),
	}, net)
	if err != nil {
		return nil, fmt.Errorf("select promotion: %w", err)
	}
	if ok {
		q.Promotion = applied
		q.AmountToCharge = applied.Impact.PublicPriceAfter
		q.OwnerPayout = applied.Impact.OwnerNetAfter
		q.CommissionAmount = applied.Impact.CommissionAfter
		q.CustomerSavings = applied.Impact.CustomerSavings
	}
	return q, nil
}

// CreateBooking persists the quoted booking. A booking that costs nothing
// is confirmed immediately.
func (s *Service) CreateBooking(ctx context.Context, userID int64, req QuoteRequest) (*domain.Booking, *QuoteResponse, error) {
	q, err := s.Quote(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	b := &domain.Booking{
		FieldID:          q.FieldID,
		UserID:           userID,
		StartTime:        q.StartTime,
		EndTime:          q.EndTime,
		DurationMinutes:  q.DurationMinutes,
		PublicAmount:     q.AmountToCharge,
		OwnerNetAmount:   q.OwnerPayout,
		CommissionAmount: q.CommissionAmount,
		CustomerSavings:  q.CustomerSavings,
		Status:           domain.BookingPending,
		PaymentStatus:    domain.PaymentUnpaid,
	}
	if q.Promotion != nil {
		id := q.Promotion.PromotionID
		b.PromotionID = &id
	}
	if b.PublicAmount == 0 {
		b.Status = domain.BookingConfirmed
		b.PaymentStatus = domain.PaymentFree
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		if errors.Is(err, repository.ErrPromotionExhausted) {
			return nil, nil, ErrPromotionUnavailable
		}
		return nil, nil, fmt.Errorf("create booking: %w", err)
	}

	if q.Promotion != nil {
		metrics.ObservePromotion(q.Promotion.Discount.Kind, q.CustomerSavings)
	}
	s.log.Info("booking created",
		zap.Int64("booking_id", b.ID),
		zap.Int64("field_id", b.FieldID),
		zap.Int64("user_id", userID),
		zap.Int64("public_amount", int64(b.PublicAmount)),
		zap.Int64("owner_net_amount", int64(b.OwnerNetAmount)),
		zap.String("payment_status", string(b.PaymentStatus)),
	)
	return b, q, nil
}

func (s *Service) GetBooking(ctx context.Context, userID int64, role domain.UserRole, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("load booking %d: %w", id, err)
	}
	if b.UserID != userID && role != domain.RoleAdmin {
		return nil, ErrForbidden
	}
	return b, nil
}

func (s *Service) ListMine(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	out, err := s.bookings.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list bookings for user %d: %w", userID, err)
	}
	return out, nil
}
