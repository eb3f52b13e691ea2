package selection

import "errors"

var (
	ErrValidation                  = errors.New("validation error")
	ErrUnknownCourt                = errors.New("unknown court")
	ErrUnitUnavailable             = errors.New("unit is not free")
	ErrInsufficientContiguousSlots = errors.New("not enough contiguous free units for the category minimum")
	ErrNotAdjacent                 = errors.New("unit is not adjacent to the current selection")
	ErrWouldBreakContinuity        = errors.New("removing the unit would split the selection")
	ErrSlotNoLongerAvailable       = errors.New("slot no longer available")
)
