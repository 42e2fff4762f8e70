package booking

import (
	"context"

	"soccerspot/internal/domain"
	"soccerspot/internal/modules/promotion"
	"soccerspot/internal/pricing"
)

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error)
}

// FieldPricer resolves the owner's net price of a field for a duration.
type FieldPricer interface {
	ResolveNet(ctx context.Context, fieldID int64, minutes int) (*domain.Field, pricing.Money, error)
}

type PromotionPicker interface {
	BestFor(ctx context.Context, bc promotion.BookingContext, netBefore pricing.Money) (*promotion.Applied, bool, error)
}
