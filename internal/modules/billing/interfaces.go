package billing

import (
	"context"
	"time"

	"courtbook/internal/domain"
)

// PaymentSource reads recorded payments. Records are append-only; the
// aggregator only ever sums them.
type PaymentSource interface {
	RecordsFor(ctx context.Context, recurringID int64, month time.Month, year int) ([]domain.PaymentRecord, error)
}

type PaymentWriter interface {
	Create(ctx context.Context, rec *domain.PaymentRecord) error
}

type RecurringRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Recurring, error)
}
