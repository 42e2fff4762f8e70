package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"soccerspot/internal/domain"
	"soccerspot/internal/pkg/cinetpay"
	"soccerspot/internal/pkg/metrics"
	"soccerspot/internal/pricing"
	"soccerspot/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const providerCinetPay = "cinetpay"

type Service struct {
	payments paymentRepo
	bookings bookingStore
	gateway  Gateway
	currency string
	log      *zap.Logger
	now      func() time.Time
}

func NewService(payments paymentRepo, bookings bookingStore, gateway Gateway, currency string, log *zap.Logger) *Service {
	if currency == "" {
		currency = "XOF"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		payments: payments,
		bookings: bookings,
		gateway:  gateway,
		currency: currency,
		log:      log,
		now:      time.Now,
	}
}

// InitPayment opens a gateway invoice for the booking's public amount.
func (s *Service) InitPayment(ctx context.Context, userID int64, req InitPaymentRequest) (*InitPaymentResponse, error) {
	if s.gateway == nil {
		return nil, ErrGatewayUnavailable
	}

	b, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("booking check failed: %w", err)
	}
	if b.UserID != userID {
		return nil, ErrForbidden
	}
	switch {
	case b.PaymentStatus == domain.PaymentPaid:
		return nil, ErrAlreadyPaid
	case b.PaymentStatus == domain.PaymentFree || b.PublicAmount <= 0:
		return nil, ErrNothingToPay
	}

	txID := uuid.NewString()
	inv, err := s.gateway.CreateInvoice(ctx, cinetpay.Invoice{
		TransactionID: txID,
		Amount:        int64(b.PublicAmount),
		Currency:      s.currency,
		Description:   fmt.Sprintf("Booking %d", b.ID),
	})
	if err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}

	p := &domain.Payment{
		BookingID:     b.ID,
		Provider:      providerCinetPay,
		TransactionID: txID,
		Amount:        b.PublicAmount,
		Currency:      s.currency,
		Status:        domain.GatewayPaymentCreated,
		PaymentURL:    inv.PaymentURL,
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("save payment failed: %w", err)
	}

	s.log.Info("payment initialised",
		zap.Int64("booking_id", b.ID),
		zap.String("transaction_id", txID),
		zap.Int64("amount", int64(b.PublicAmount)),
	)
	return &InitPaymentResponse{
		TransactionID: txID,
		PaymentURL:    inv.PaymentURL,
		Amount:        int64(p.Amount),
		Currency:      p.Currency,
		Status:        string(p.Status),
	}, nil
}

// HandleNotification re-checks a transaction with the gateway and settles
// the payment. Repeated notifications for a paid transaction are no-ops.
func (s *Service) HandleNotification(ctx context.Context, txID, rawBody string) error {
	p, err := s.payments.GetByTransactionID(ctx, txID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.PaymentNotifications.WithLabelValues("unknown").Inc()
			return ErrPaymentNotFound
		}
		return err
	}
	if s.gateway == nil {
		return ErrGatewayUnavailable
	}

	st, err := s.gateway.CheckTransaction(ctx, txID)
	if err != nil {
		return fmt.Errorf("check transaction %s: %w", txID, err)
	}
	s.log.Info("gateway transaction checked",
		zap.String("transaction_id", txID),
		zap.String("status", st.Status),
		zap.String("amount", st.Amount.String()),
	)

	switch st.Status {
	case cinetpay.StatusAccepted:
		if !amountEqual(st.Amount, p.Amount) {
			reason := fmt.Sprintf("amount mismatch gateway=%s expected=%d", st.Amount.String(), p.Amount)
			_ = s.payments.MarkFailed(ctx, txID, rawBody, reason)
			metrics.PaymentNotifications.WithLabelValues("mismatch").Inc()
			return ErrAmountMismatch
		}

		changed, err := s.payments.MarkPaidIdempotent(ctx, txID, rawBody, s.now().UTC())
		if err != nil {
			return err
		}
		if _, err := s.bookings.MarkPaid(ctx, p.BookingID); err != nil {
			s.log.Error("failed to mark booking paid", zap.Int64("booking_id", p.BookingID), zap.Error(err))
		}
		if !changed {
			s.log.Info("idempotent notification, already paid", zap.String("transaction_id", txID))
		}
		metrics.PaymentNotifications.WithLabelValues("paid").Inc()

	case cinetpay.StatusRefused, cinetpay.StatusCanceled:
		if err := s.payments.MarkFailed(ctx, txID, rawBody, "gateway status "+st.Status); err != nil {
			return err
		}
		metrics.PaymentNotifications.WithLabelValues("failed").Inc()

	default:
		metrics.PaymentNotifications.WithLabelValues("pending").Inc()
	}
	return nil
}

func amountEqual(got decimal.Decimal, want pricing.Money) bool {
	return got.Equal(decimal.NewFromInt(int64(want)))
}
