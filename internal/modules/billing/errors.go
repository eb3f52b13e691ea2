package billing

import "errors"

var (
	ErrValidation          = errors.New("validation error")
	ErrNotFound            = errors.New("recurring reservation not found")
	ErrInvalidBillingRange = errors.New("month is outside the reservation's active range")
)
