package promotion

import (
	"context"

	"soccerspot/internal/domain"
)

type PromotionRepository interface {
	Create(ctx context.Context, p *domain.Promotion) error
	GetByID(ctx context.Context, id int64) (*domain.Promotion, error)
	ListActiveForField(ctx context.Context, fieldID int64) ([]domain.Promotion, error)
	Deactivate(ctx context.Context, id int64) error
}

type FieldReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Field, error)
}
