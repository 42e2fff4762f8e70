package repository

import (
	"context"
	"strings"
	"time"

	"soccerspot/internal/domain"
	"soccerspot/internal/pricing"

	"gorm.io/gorm"
)

type PromotionRepository struct {
	db *gorm.DB
}

func NewPromotionRepository(db *gorm.DB) *PromotionRepository {
	return &PromotionRepository{db: db}
}

func toDomainPromotion(m promotionModel) domain.Promotion {
	var code string
	if m.Code != nil {
		code = *m.Code
	}
	return domain.Promotion{
		ID:               m.ID,
		FieldID:          m.FieldID,
		OwnerID:          m.OwnerID,
		Title:            m.Title,
		Code:             code,
		Discount:         pricing.Discount{Kind: pricing.DiscountKind(m.Kind), Value: m.Value},
		MinBookingAmount: pricing.Money(m.MinBookingAmount),
		Days:             domain.Weekdays(m.Days),
		SlotFromMinute:   m.SlotFromMinute,
		SlotToMinute:     m.SlotToMinute,
		StartsAt:         m.StartsAt,
		EndsAt:           m.EndsAt,
		MaxUses:          m.MaxUses,
		UsedCount:        m.UsedCount,
		IsActive:         m.IsActive,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func toPromotionModel(p *domain.Promotion) promotionModel {
	var code *string
	if c := strings.TrimSpace(p.Code); c != "" {
		upper := strings.ToUpper(c)
		code = &upper
	}
	return promotionModel{
		ID:               p.ID,
		FieldID:          p.FieldID,
		OwnerID:          p.OwnerID,
		Title:            p.Title,
		Code:             code,
		Kind:             string(p.Discount.Kind),
		Value:            p.Discount.Value,
		MinBookingAmount: int64(p.MinBookingAmount),
		Days:             int(p.Days),
		SlotFromMinute:   p.SlotFromMinute,
		SlotToMinute:     p.SlotToMinute,
		StartsAt:         p.StartsAt,
		EndsAt:           p.EndsAt,
		MaxUses:          p.MaxUses,
		UsedCount:        p.UsedCount,
		IsActive:         p.IsActive,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// Create stores the promotion. Codes are stored upper-cased.
func (r *PromotionRepository) Create(ctx context.Context, p *domain.Promotion) error {
	m := toPromotionModel(p)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateCode
		}
		return err
	}
	*p = toDomainPromotion(m)
	return nil
}

func (r *PromotionRepository) GetByID(ctx context.Context, id int64) (*domain.Promotion, error) {
	var m promotionModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, notFound(err)
	}
	p := toDomainPromotion(m)
	return &p, nil
}

// ListActiveForField returns active promotions oldest first, which is the
// order ties are broken in.
func (r *PromotionRepository) ListActiveForField(ctx context.Context, fieldID int64) ([]domain.Promotion, error) {
	var rows []promotionModel
	err := r.db.WithContext(ctx).
		Where("field_id = ? AND is_active = ?", fieldID, true).
		Order("created_at, id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Promotion, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainPromotion(m))
	}
	return out, nil
}

func (r *PromotionRepository) Deactivate(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Model(&promotionModel{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeactivateExpired switches off promotions past their end date or out of uses.
func (r *PromotionRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&promotionModel{}).
		Where("is_active = ?", true).
		Where("(ends_at IS NOT NULL AND ends_at <= ?) OR (max_uses IS NOT NULL AND used_count >= max_uses)", now).
		Update("is_active", false)
	return res.RowsAffected, res.Error
}
