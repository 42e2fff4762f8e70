package repository

import (
	"context"

	"soccerspot/internal/domain"
	"soccerspot/internal/pricing"

	"gorm.io/gorm"
)

type FieldRepository struct {
	db *gorm.DB
}

func NewFieldRepository(db *gorm.DB) *FieldRepository {
	return &FieldRepository{db: db}
}

func toDomainField(m fieldModel) *domain.Field {
	return &domain.Field{
		ID:      m.ID,
		OwnerID: m.OwnerID,
		Name:    m.Name,
		City:    m.City,
		Address: m.Address,
		Rates: pricing.FieldRates{
			Net1h:        toMoneyPtr(m.NetPrice1h),
			Net1h30:      toMoneyPtr(m.NetPrice1h30),
			Net2h:        toMoneyPtr(m.NetPrice2h),
			Public1h:     toMoneyPtr(m.PublicPrice1h),
			Public1h30:   toMoneyPtr(m.PublicPrice1h30),
			Public2h:     toMoneyPtr(m.PublicPrice2h),
			PricePerHour: toMoneyPtr(m.PricePerHour),
		},
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toFieldModel(f *domain.Field) fieldModel {
	return fieldModel{
		ID:              f.ID,
		OwnerID:         f.OwnerID,
		Name:            f.Name,
		City:            f.City,
		Address:         f.Address,
		NetPrice1h:      toInt64Ptr(f.Rates.Net1h),
		NetPrice1h30:    toInt64Ptr(f.Rates.Net1h30),
		NetPrice2h:      toInt64Ptr(f.Rates.Net2h),
		PublicPrice1h:   toInt64Ptr(f.Rates.Public1h),
		PublicPrice1h30: toInt64Ptr(f.Rates.Public1h30),
		PublicPrice2h:   toInt64Ptr(f.Rates.Public2h),
		PricePerHour:    toInt64Ptr(f.Rates.PricePerHour),
		IsActive:        f.IsActive,
		CreatedAt:       f.CreatedAt,
		UpdatedAt:       f.UpdatedAt,
	}
}

func (r *FieldRepository) Create(ctx context.Context, f *domain.Field) error {
	m := toFieldModel(f)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*f = *toDomainField(m)
	return nil
}

func (r *FieldRepository) GetByID(ctx context.Context, id int64) (*domain.Field, error) {
	var m fieldModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, notFound(err)
	}
	return toDomainField(m), nil
}

func (r *FieldRepository) ListActive(ctx context.Context, city string, limit, offset int) ([]domain.Field, error) {
	q := r.db.WithContext(ctx).Where("is_active = ?", true)
	if city != "" {
		q = q.Where("LOWER(city) = LOWER(?)", city)
	}

	var rows []fieldModel
	if err := q.Order("id").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Field, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainField(m))
	}
	return out, nil
}

// UpdateRates replaces the owner's net tier prices. Stored public tier
// prices are cleared so the net prices take precedence everywhere.
func (r *FieldRepository) UpdateRates(ctx context.Context, id int64, net1h, net1h30, net2h *pricing.Money) (*domain.Field, error) {
	res := r.db.WithContext(ctx).Model(&fieldModel{}).Where("id = ?", id).Updates(map[string]any{
		"net_price_1h":      toInt64Ptr(net1h),
		"net_price_1h30":    toInt64Ptr(net1h30),
		"net_price_2h":      toInt64Ptr(net2h),
		"public_price_1h":   nil,
		"public_price_1h30": nil,
		"public_price_2h":   nil,
	})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}
