package negotiation

import "errors"

var (
	ErrValidation            = errors.New("validation error")
	ErrNotFound              = errors.New("lesson request not found")
	ErrInvalidTransition     = errors.New("transition not allowed from current status")
	ErrMissingCourt          = errors.New("approval requires a chosen court")
	ErrMissingSuggestion     = errors.New("suggest requires an alternative date and time")
	ErrSlotNoLongerAvailable = errors.New("slot no longer available")
)
