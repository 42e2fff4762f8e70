package booking

import "errors"

var (
	ErrValidation           = errors.New("validation error")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrForbidden            = errors.New("booking belongs to another user")
	ErrPromotionUnavailable = errors.New("promotion is no longer available")
)
