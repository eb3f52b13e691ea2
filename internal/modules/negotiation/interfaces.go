package negotiation

import (
	"context"
	"time"

	"courtbook/internal/domain"
	"courtbook/internal/pkg/timegrid"
)

type RequestRepository interface {
	Create(ctx context.Context, r *domain.LessonRequest) error
	GetByID(ctx context.Context, id int64) (*domain.LessonRequest, error)
	Update(ctx context.Context, r *domain.LessonRequest) error
	ListByRequester(ctx context.Context, requesterID int64) ([]domain.LessonRequest, error)
	ListOpen(ctx context.Context) ([]domain.LessonRequest, error)

	// ApproveWithLesson persists the approved request and its lesson session
	// in one transaction.
	ApproveWithLesson(ctx context.Context, r *domain.LessonRequest, l *domain.LessonSession) error
}

// AvailabilityChecker re-checks the exact target range right before an
// approval commits.
type AvailabilityChecker interface {
	RangeState(ctx context.Context, date time.Time, courtID int64, span timegrid.Span) error
}

type GridNotifier interface {
	GridInvalidated(date time.Time, courtIDs []int64)
}
