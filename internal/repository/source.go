package repository

import (
	"context"
	"time"

	"courtbook/internal/domain"
)

// Source bundles the three per-table repositories into the single
// ReservationSource the availability resolver consumes.
type Source struct {
	oneOffs   *ReservationRepository
	recurring *RecurringRepository
	lessons   *LessonRepository
}

func NewSource(oneOffs *ReservationRepository, recurring *RecurringRepository, lessons *LessonRepository) *Source {
	return &Source{oneOffs: oneOffs, recurring: recurring, lessons: lessons}
}

func (s *Source) OneOffsFor(ctx context.Context, date time.Time, courtIDs []int64) ([]domain.OneOff, error) {
	return s.oneOffs.OneOffsFor(ctx, date, courtIDs)
}

func (s *Source) RecurringPatternsFor(ctx context.Context, courtIDs []int64) ([]domain.Recurring, error) {
	return s.recurring.RecurringPatternsFor(ctx, courtIDs)
}

func (s *Source) LessonsFor(ctx context.Context, date time.Time, courtIDs []int64) ([]domain.LessonSession, error) {
	return s.lessons.LessonsFor(ctx, date, courtIDs)
}
