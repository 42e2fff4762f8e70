package repository

import (
	"context"
	"errors"
	"time"

	"soccerspot/internal/domain"
	"soccerspot/internal/pricing"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func toDomainPayment(m paymentModel) *domain.Payment {
	return &domain.Payment{
		ID:            m.ID,
		BookingID:     m.BookingID,
		Provider:      m.Provider,
		TransactionID: m.TransactionID,
		Amount:        pricing.Money(m.Amount),
		Currency:      m.Currency,
		Status:        domain.GatewayPaymentStatus(m.Status),
		PaymentURL:    m.PaymentURL,
		NotifyRawBody: m.NotifyRawBody,
		FailureReason: m.FailureReason,
		PaidAt:        m.PaidAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	m := paymentModel{
		BookingID:     p.BookingID,
		Provider:      p.Provider,
		TransactionID: p.TransactionID,
		Amount:        int64(p.Amount),
		Currency:      p.Currency,
		Status:        string(p.Status),
		PaymentURL:    p.PaymentURL,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*p = *toDomainPayment(m)
	return nil
}

func (r *PaymentRepository) GetByTransactionID(ctx context.Context, txID string) (*domain.Payment, error) {
	var m paymentModel
	if err := r.db.WithContext(ctx).Where("transaction_id = ?", txID).First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	return toDomainPayment(m), nil
}

// MarkFailed records a rejected notification unless the payment is already paid.
func (r *PaymentRepository) MarkFailed(ctx context.Context, txID, rawBody, reason string) error {
	return r.db.WithContext(ctx).
		Model(&paymentModel{}).
		Where("transaction_id = ? AND status <> ?", txID, string(domain.GatewayPaymentPaid)).
		Updates(map[string]any{
			"status":          string(domain.GatewayPaymentFailed),
			"notify_raw_body": rawBody,
			"failure_reason":  reason,
		}).Error
}

// MarkPaidIdempotent sets the payment to paid once. changed is false when
// it was already paid.
func (r *PaymentRepository) MarkPaidIdempotent(ctx context.Context, txID, rawBody string, paidAt time.Time) (bool, error) {
	var changed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m paymentModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("transaction_id = ?", txID).First(&m).Error; err != nil {
			return notFound(err)
		}
		if m.Status == string(domain.GatewayPaymentPaid) {
			return nil
		}
		res := tx.Model(&paymentModel{}).Where("transaction_id = ?", txID).Updates(map[string]any{
			"status":          string(domain.GatewayPaymentPaid),
			"notify_raw_body": rawBody,
			"failure_reason":  "",
			"paid_at":         paidAt,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.New("payment row not updated")
		}
		changed = true
		return nil
	})
	return changed, err
}

// ExpireStale fails invoices that were never settled and were opened before cutoff.
func (r *PaymentRepository) ExpireStale(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&paymentModel{}).
		Where("status = ? AND created_at < ?", string(domain.GatewayPaymentCreated), cutoff).
		Updates(map[string]any{
			"status":         string(domain.GatewayPaymentFailed),
			"failure_reason": "expired",
		})
	return res.RowsAffected, res.Error
}
