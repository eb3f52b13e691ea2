package selection

import (
	"context"
	"time"

	"courtbook/internal/domain"
)

// BookingWriter persists a submission atomically: either every one-off in
// the batch is created or none are.
type BookingWriter interface {
	CreateOneOffs(ctx context.Context, bookings []*domain.OneOff) error
}

// GridNotifier is told when committed state changed so live grid viewers
// can re-resolve. Optional; may be nil.
type GridNotifier interface {
	GridInvalidated(date time.Time, courtIDs []int64)
}
