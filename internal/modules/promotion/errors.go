package promotion

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrFieldNotFound     = errors.New("field not found")
	ErrPromotionNotFound = errors.New("promotion not found")
	ErrForbidden         = errors.New("not the field owner")
	ErrDuplicateCode     = errors.New("promotion code already exists on this field")
)
