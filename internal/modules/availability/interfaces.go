package availability

import (
	"context"
	"time"

	"courtbook/internal/domain"
)

// ReservationSource feeds the resolver with the three occupancy variants.
// The resolver never assumes how they are stored.
type ReservationSource interface {
	OneOffsFor(ctx context.Context, date time.Time, courtIDs []int64) ([]domain.OneOff, error)
	RecurringPatternsFor(ctx context.Context, courtIDs []int64) ([]domain.Recurring, error)
	LessonsFor(ctx context.Context, date time.Time, courtIDs []int64) ([]domain.LessonSession, error)
}

type CourtRepository interface {
	List(ctx context.Context) ([]domain.Court, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Court, error)
}
