package availability

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrUnknownCourt     = errors.New("unknown court")
	ErrRangeUnavailable = errors.New("range not fully free")
	ErrDataIntegrity    = errors.New("conflicting reservations claim the same unit")
)
