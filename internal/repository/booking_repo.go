package repository

import (
	"context"

	"soccerspot/internal/domain"
	"soccerspot/internal/pricing"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:               m.ID,
		FieldID:          m.FieldID,
		UserID:           m.UserID,
		StartTime:        m.StartTime,
		EndTime:          m.EndTime,
		DurationMinutes:  m.DurationMinutes,
		PublicAmount:     pricing.Money(m.PublicAmount),
		OwnerNetAmount:   pricing.Money(m.OwnerNetAmount),
		CommissionAmount: pricing.Money(m.CommissionAmount),
		PromotionID:      m.PromotionID,
		CustomerSavings:  pricing.Money(m.CustomerSavings),
		Status:           domain.BookingStatus(m.Status),
		PaymentStatus:    domain.PaymentStatus(m.PaymentStatus),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:               b.ID,
		FieldID:          b.FieldID,
		UserID:           b.UserID,
		StartTime:        b.StartTime,
		EndTime:          b.EndTime,
		DurationMinutes:  b.DurationMinutes,
		PublicAmount:     int64(b.PublicAmount),
		OwnerNetAmount:   int64(b.OwnerNetAmount),
		CommissionAmount: int64(b.CommissionAmount),
		PromotionID:      b.PromotionID,
		CustomerSavings:  int64(b.CustomerSavings),
		Status:           string(b.Status),
		PaymentStatus:    string(b.PaymentStatus),
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

// Create inserts the booking and, when a promotion was applied, consumes
// one use of it in the same transaction.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if m.PromotionID != nil {
			res := tx.Model(&promotionModel{}).
				Where("id = ? AND is_active = ? AND (max_uses IS NULL OR used_count < max_uses)", *m.PromotionID, true).
				Update("used_count", gorm.Expr("used_count + 1"))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrPromotionExhausted
			}
		}
		return tx.Create(&m).Error
	})
	if err != nil {
		return err
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, notFound(err)
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	var rows []bookingModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_time DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// MarkPaid flips a pending booking to confirmed and paid.
func (r *BookingRepository) MarkPaid(ctx context.Context, id int64) (*domain.Booking, error) {
	res := r.db.WithContext(ctx).Model(&bookingModel{}).Where("id = ?", id).Updates(map[string]any{
		"payment_status": string(domain.PaymentPaid),
		"status":         string(domain.BookingConfirmed),
	})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}
