package catalog

import "errors"

var (
	ErrFieldNotFound      = errors.New("field not found")
	ErrPriceNotConfigured = errors.New("price not configured for duration")
	ErrInvalidDuration    = errors.New("invalid duration")
	ErrValidation         = errors.New("validation error")
)
