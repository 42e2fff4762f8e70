package catalog

import (
	"context"

	"soccerspot/internal/domain"
	"soccerspot/internal/pricing"
)

type FieldRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Field, error)
	ListActive(ctx context.Context, city string, limit, offset int) ([]domain.Field, error)
	UpdateRates(ctx context.Context, id int64, net1h, net1h30, net2h *pricing.Money) (*domain.Field, error)
}
