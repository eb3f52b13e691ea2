package billing

import (
	"context"
	"time"

	"courtbook/internal/domain"
	"courtbook/internal/pkg/clock"
	"courtbook/internal/pkg/pricing"
)

// MonthStatus is one month's rollup for a recurring reservation: how many
// occurrences the pattern generates inside the month, what they cost and
// how much of it is covered by recorded payments.
type MonthStatus struct {
	Year       int                  `json:"year"`
	Month      time.Month           `json:"month"`
	Sessions   int                  `json:"sessions"`
	AmountDue  float64              `json:"amount_due"`
	AmountPaid float64              `json:"amount_paid"`
	Status     domain.BillingStatus `json:"status"`
}

// Service derives monthly payment status for recurring reservations. It is
// a pure function of (pattern, payment records, now): occurrences are
// counted from the weekday pattern on demand, never from materialized rows,
// so history is always reproducible.
type Service struct {
	recurring RecurringRepository
	payments  PaymentSource
	writer    PaymentWriter
	clock     clock.Clock
}

func NewService(recurring RecurringRepository, payments PaymentSource, writer PaymentWriter, clk clock.Clock) *Service {
	return &Service{recurring: recurring, payments: payments, writer: writer, clock: clk}
}

// StatusForMonth computes the rollup for one month of one reservation.
func (s *Service) StatusForMonth(ctx context.Context, recurringID int64, month time.Month, year int) (*MonthStatus, error) {
	r, err := s.recurring.GetByID(ctx, recurringID)
	if err != nil {
		return nil, err
	}
	if !monthInRange(*r, year, month) {
		return nil, ErrInvalidBillingRange
	}
	return s.statusFor(ctx, *r, year, month)
}

// History runs the same computation for every month from the reservation's
// start through the current month (or its end month if earlier), oldest
// first.
func (s *Service) History(ctx context.Context, recurringID int64) ([]MonthStatus, error) {
	r, err := s.recurring.GetByID(ctx, recurringID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	y, m := r.ActiveFrom.Year(), r.ActiveFrom.Month()
	endY, endM := now.Year(), now.Month()
	if r.ActiveTo != nil && beforeMonth(r.ActiveTo.Year(), r.ActiveTo.Month(), endY, endM) {
		endY, endM = r.ActiveTo.Year(), r.ActiveTo.Month()
	}

	var out []MonthStatus
	for !beforeMonth(endY, endM, y, m) {
		st, err := s.statusFor(ctx, *r, y, m)
		if err != nil {
			return nil, err
		}
		out = append(out, *st)
		m++
		if m > time.December {
			m = time.January
			y++
		}
	}
	return out, nil
}

// RecordPayment appends one payment towards a month. Records are never
// mutated; partial payments accumulate.
func (s *Service) RecordPayment(ctx context.Context, recurringID int64, month time.Month, year int, amount float64, method string) (*domain.PaymentRecord, error) {
	if amount <= 0 || month < time.January || month > time.December {
		return nil, ErrValidation
	}
	r, err := s.recurring.GetByID(ctx, recurringID)
	if err != nil {
		return nil, err
	}
	if !monthInRange(*r, year, month) {
		return nil, ErrInvalidBillingRange
	}

	rec := &domain.PaymentRecord{
		RecurringID: recurringID,
		Month:       month,
		Year:        year,
		Amount:      amount,
		Method:      method,
	}
	if err := s.writer.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) statusFor(ctx context.Context, r domain.Recurring, year int, month time.Month) (*MonthStatus, error) {
	records, err := s.payments.RecordsFor(ctx, r.ID, month, year)
	if err != nil {
		return nil, err
	}

	sessions := SessionsInMonth(r, year, month)
	due := pricing.Round(float64(sessions) * r.PricePerSession)
	var paid float64
	for _, rec := range records {
		paid += rec.Amount
	}
	paid = pricing.Round(paid)

	now := s.clock.Now()
	past := beforeMonth(year, month, now.Year(), now.Month())

	var status domain.BillingStatus
	switch {
	case paid >= due:
		status = domain.BillingPaid
	case past:
		// Any shortfall on a closed month is overdue, partial or not.
		status = domain.BillingOverdue
	case paid > 0:
		status = domain.BillingPartial
	default:
		status = domain.BillingUnpaid
	}

	return &MonthStatus{
		Year:       year,
		Month:      month,
		Sessions:   sessions,
		AmountDue:  due,
		AmountPaid: paid,
		Status:     status,
	}, nil
}

// SessionsInMonth counts the weekday-matching dates inside the month
// clipped to the reservation's active range, so patterns starting or ending
// mid-month prorate correctly.
func SessionsInMonth(r domain.Recurring, year int, month time.Month) int {
	day := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	count := 0
	for day.Month() == month {
		if day.Weekday() == r.Weekday && r.CoversDate(day) {
			count++
		}
		day = day.AddDate(0, 0, 1)
	}
	return count
}

func monthInRange(r domain.Recurring, year int, month time.Month) bool {
	if beforeMonth(year, month, r.ActiveFrom.Year(), r.ActiveFrom.Month()) {
		return false
	}
	if r.ActiveTo != nil && beforeMonth(r.ActiveTo.Year(), r.ActiveTo.Month(), year, month) {
		return false
	}
	return true
}

// beforeMonth reports whether (y1,m1) is strictly before (y2,m2).
func beforeMonth(y1 int, m1 time.Month, y2 int, m2 time.Month) bool {
	return y1 < y2 || (y1 == y2 && m1 < m2)
}
