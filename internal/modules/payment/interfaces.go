package payment

import (
	"context"
	"time"

	"soccerspot/internal/domain"
	"soccerspot/internal/pkg/cinetpay"
)

type bookingStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	MarkPaid(ctx context.Context, id int64) (*domain.Booking, error)
}

type paymentRepo interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByTransactionID(ctx context.Context, txID string) (*domain.Payment, error)
	MarkFailed(ctx context.Context, txID, rawBody, reason string) error
	MarkPaidIdempotent(ctx context.Context, txID, rawBody string, paidAt time.Time) (bool, error)
}

// Gateway is the hosted checkout the customer is redirected to.
type Gateway interface {
	CreateInvoice(ctx context.Context, inv cinetpay.Invoice) (*cinetpay.InvoiceResult, error)
	CheckTransaction(ctx context.Context, txID string) (*cinetpay.TransactionStatus, error)
}
