package payment

import "errors"

var (
	ErrAmountMismatch     = errors.New("amount mismatch")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrForbidden          = errors.New("booking belongs to another user")
	ErrNothingToPay       = errors.New("booking has nothing to pay")
	ErrAlreadyPaid        = errors.New("booking already paid")
	ErrGatewayUnavailable = errors.New("payment gateway not configured")
)
