package booking

import (
	"context"
	"testing"
	"time"

	"soccerspot/internal/domain"
	"soccerspot/internal/modules/catalog"
	"soccerspot/internal/modules/promotion"
	"soccerspot/internal/pricing"
	"soccerspot/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if args.Error(0) == nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockFieldPricer struct {
	mock.Mock
}

func (m *MockFieldPricer) ResolveNet(ctx context.Context, fieldID int64, minutes int) (*domain.Field, pricing.Money, error) {
	args := m.Called(ctx, fieldID, minutes)
	f, _ := args.Get(0).(*domain.Field)
	return f, args.Get(1).(pricing.Money), args.Error(2)
}

type MockPromotionPicker struct {
	mock.Mock
}

func (m *MockPromotionPicker) BestFor(ctx context.Context, bc promotion.BookingContext, netBefore pricing.Money) (*promotion.Applied, bool, error) {
	args := m.Called(ctx, bc, netBefore)
	a, _ := args.Get(0).(*promotion.Applied)
	return a, args.Bool(1), args.Error(2)
}

var fixedNow = time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

func newService(b *MockBookingRepository, f *MockFieldPricer, p *MockPromotionPicker) *Service {
	return NewService(b, f, p, nil, nil, WithClock(func() time.Time { return fixedNow }))
}

func quoteRequest() QuoteRequest {
	return QuoteRequest{FieldID: 1, StartTime: fixedNow.Add(48 * time.Hour), DurationMinutes: 90}
}

func TestService_Quote_NoPromotion(t *testing.T) {
	fields := new(MockFieldPricer)
	fields.On("ResolveNet", mock.Anything, int64(1), 90).Return(&domain.Field{ID: 1}, pricing.Money(15000), nil)
	promos := new(MockPromotionPicker)
	promos.On("BestFor", mock.Anything, mock.MatchedBy(func(bc promotion.BookingContext) bool {
		return bc.PublicPrice == 15500 && bc.Minutes == 90
	}), pricing.Money(15000)).Return(nil, false, nil)

	svc := newService(new(MockBookingRepository), fields, promos)
	q, err := svc.Quote(context.Background(), quoteRequest())

	require.NoError(t, err)
	assert.Nil(t, q.Promotion)
	assert.Equal(t, pricing.Money(15500), q.AmountToCharge)
	assert.Equal(t, pricing.Money(15000), q.OwnerPayout)
	assert.Equal(t, pricing.Money(500), q.CommissionAmount)
	assert.Equal(t, q.StartTime.Add(90*time.Minute), q.EndTime)
	promos.AssertExpectations(t)
}

func TestService_Quote_WithPromotion(t *testing.T) {
	calc := pricing.NewImpactCalculator(nil)
	impact := calc.ComputeImpact(10000, pricing.DiscountPercent, 20)

	fields := new(MockFieldPricer)
	fields.On("ResolveNet", mock.Anything, int64(1), 60).Return(&domain.Field{ID: 1}, pricing.Money(10000), nil)
	promos := new(MockPromotionPicker)
	promos.On("BestFor", mock.Anything, mock.Anything, pricing.Money(10000)).Return(&promotion.Applied{
		PromotionID: 7,
		Discount:    pricing.Discount{Kind: pricing.DiscountPercent, Value: 20},
		Impact:      impact,
	}, true, nil)

	req := quoteRequest()
	req.DurationMinutes = 60
	q, err := newService(new(MockBookingRepository), fields, promos).Quote(context.Background(), req)

	require.NoError(t, err)
	require.NotNil(t, q.Promotion)
	assert.Equal(t, pricing.Money(10500), q.Price.PublicAmount)
	assert.Equal(t, pricing.Money(8500), q.AmountToCharge)
	assert.Equal(t, pricing.Money(8000), q.OwnerPayout)
	assert.Equal(t, pricing.Money(500), q.CommissionAmount)
	assert.Equal(t, pricing.Money(2000), q.CustomerSavings)
}

func TestService_Quote_Validation(t *testing.T) {
	fields := new(MockFieldPricer)
	fields.On("ResolveNet", mock.Anything, int64(1), 45).Return(nil, pricing.Money(0), catalog.ErrInvalidDuration)
	svc := newService(new(MockBookingRepository), fields, new(MockPromotionPicker))
	ctx := context.Background()

	past := quoteRequest()
	past.StartTime = fixedNow.Add(-time.Hour)
	_, err := svc.Quote(ctx, past)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Quote(ctx, QuoteRequest{StartTime: fixedNow.Add(time.Hour), DurationMinutes: 60})
	assert.ErrorIs(t, err, ErrValidation)

	odd := quoteRequest()
	odd.DurationMinutes = 45
	_, err = svc.Quote(ctx, odd)
	assert.ErrorIs(t, err, catalog.ErrInvalidDuration)
}

func TestService_CreateBooking_PersistsPromotedAmounts(t *testing.T) {
	calc := pricing.NewImpactCalculator(nil)
	fields := new(MockFieldPricer)
	fields.On("ResolveNet", mock.Anything, int64(1), 90).Return(&domain.Field{ID: 1}, pricing.Money(15000), nil)
	promos := new(MockPromotionPicker)
	promos.On("BestFor", mock.Anything, mock.Anything, pricing.Money(15000)).Return(&promotion.Applied{
		PromotionID: 7,
		Discount:    pricing.Discount{Kind: pricing.DiscountFixed, Value: 3000},
		Impact:      calc.ComputeImpact(15000, pricing.DiscountFixed, 3000),
	}, true, nil)

	bookings := new(MockBookingRepository)
	bookings.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.UserID == 42 &&
			b.PublicAmount == 12500 &&
			b.OwnerNetAmount == 12000 &&
			b.CommissionAmount == 500 &&
			b.CustomerSavings == 3000 &&
			b.PromotionID != nil && *b.PromotionID == 7 &&
			b.Status == domain.BookingPending &&
			b.PaymentStatus == domain.PaymentUnpaid
	})).Return(nil)

	b, q, err := newService(bookings, fields, promos).CreateBooking(context.Background(), 42, quoteRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(999), b.ID)
	assert.Equal(t, pricing.Money(12500), q.AmountToCharge)
	bookings.AssertExpectations(t)
}

func TestService_CreateBooking_FreeIsConfirmed(t *testing.T) {
	calc := pricing.NewImpactCalculator(nil)
	fields := new(MockFieldPricer)
	fields.On("ResolveNet", mock.Anything, int64(1), 90).Return(&domain.Field{ID: 1}, pricing.Money(15000), nil)
	promos := new(MockPromotionPicker)
	promos.On("BestFor", mock.Anything, mock.Anything, pricing.Money(15000)).Return(&promotion.Applied{
		PromotionID: 8,
		Discount:    pricing.Discount{Kind: pricing.DiscountPercent, Value: 100},
		Impact:      calc.ComputeImpact(15000, pricing.DiscountPercent, 100),
	}, true, nil)

	bookings := new(MockBookingRepository)
	bookings.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.PublicAmount == 0 && b.OwnerNetAmount == 0 &&
			b.Status == domain.BookingConfirmed && b.PaymentStatus == domain.PaymentFree
	})).Return(nil)

	b, _, err := newService(bookings, fields, promos).CreateBooking(context.Background(), 42, quoteRequest())

	require.NoError(t, err)
	assert.Equal(t, domain.PaymentFree, b.PaymentStatus)
}

func TestService_CreateBooking_PromotionExhausted(t *testing.T) {
	calc := pricing.NewImpactCalculator(nil)
	fields := new(MockFieldPricer)
	fields.On("ResolveNet", mock.Anything, int64(1), 90).Return(&domain.Field{ID: 1}, pricing.Money(15000), nil)
	promos := new(MockPromotionPicker)
	promos.On("BestFor", mock.Anything, mock.Anything, mock.Anything).Return(&promotion.Applied{
		PromotionID: 7,
		Impact:      calc.ComputeImpact(15000, pricing.DiscountPercent, 10),
	}, true, nil)
	bookings := new(MockBookingRepository)
	bookings.On("Create", mock.Anything, mock.Anything).Return(repository.ErrPromotionExhausted)

	_, _, err := newService(bookings, fields, promos).CreateBooking(context.Background(), 42, quoteRequest())
	assert.ErrorIs(t, err, ErrPromotionUnavailable)
}

func TestService_GetBooking_Ownership(t *testing.T) {
	bookings := new(MockBookingRepository)
	bookings.On("GetByID", mock.Anything, int64(1)).Return(&domain.Booking{ID: 1, UserID: 42}, nil)
	bookings.On("GetByID", mock.Anything, int64(2)).Return(nil, repository.ErrNotFound)

	svc := newService(bookings, nil, nil)
	ctx := context.Background()

	_, err := svc.GetBooking(ctx, 42, domain.RoleClient, 1)
	assert.NoError(t, err)
	_, err = svc.GetBooking(ctx, 43, domain.RoleClient, 1)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.GetBooking(ctx, 1, domain.RoleAdmin, 1)
	assert.NoError(t, err)
	_, err = svc.GetBooking(ctx, 42, domain.RoleClient, 2)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
