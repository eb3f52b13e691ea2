package billing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"courtbook/internal/domain"
	"courtbook/internal/pkg/clock"
)

type MockRecurringRepository struct {
	mock.Mock
}

func (m *MockRecurringRepository) GetByID(ctx context.Context, id int64) (*domain.Recurring, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Recurring), args.Error(1)
}

type MockPaymentSource struct {
	mock.Mock
}

func (m *MockPaymentSource) RecordsFor(ctx context.Context, recurringID int64, month time.Month, year int) ([]domain.PaymentRecord, error) {
	args := m.Called(ctx, recurringID, month, year)
	return args.Get(0).([]domain.PaymentRecord), args.Error(1)
}

type MockPaymentWriter struct {
	mock.Mock
}

func (m *MockPaymentWriter) Create(ctx context.Context, rec *domain.PaymentRecord) error {
	args := m.Called(ctx, rec)
	rec.ID = 77
	return args.Error(0)
}

// Mondays at 50 per session, 2026-01-01 through 2026-03-15. January and
// February each have four Mondays; March has two before the 15th.
func mondayPattern() *domain.Recurring {
	end := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	return &domain.Recurring{
		ID:              5,
		CourtID:         1,
		Weekday:         time.Monday,
		FromUnit:        22,
		ToUnit:          24,
		Category:        domain.CategoryTennis,
		PricePerSession: 50,
		ActiveFrom:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		ActiveTo:        &end,
		Active:          true,
	}
}

func payments(amounts ...float64) []domain.PaymentRecord {
	out := make([]domain.PaymentRecord, 0, len(amounts))
	for _, a := range amounts {
		out = append(out, domain.PaymentRecord{RecurringID: 5, Amount: a})
	}
	return out
}

func TestSessionsInMonth(t *testing.T) {
	r := mondayPattern()

	assert.Equal(t, 4, SessionsInMonth(*r, 2026, time.January))
	assert.Equal(t, 4, SessionsInMonth(*r, 2026, time.February))
	// clipped by the March 15 end date: only the 2nd and the 9th
	assert.Equal(t, 2, SessionsInMonth(*r, 2026, time.March))

	// pattern starting mid-month prorates the same way
	late := mondayPattern()
	late.ActiveFrom = time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, SessionsInMonth(*late, 2026, time.January))
}

func TestService_StatusForMonth_Statuses(t *testing.T) {
	now := clock.Fixed(time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC))

	tests := []struct {
		name    string
		month   time.Month
		records []domain.PaymentRecord
		want    domain.BillingStatus
		wantDue float64
	}{
		{"paid in full", time.January, payments(200), domain.BillingPaid, 200},
		{"paid across instalments", time.January, payments(120, 80), domain.BillingPaid, 200},
		{"past shortfall is overdue", time.January, payments(100), domain.BillingOverdue, 200},
		{"past unpaid is overdue", time.January, payments(), domain.BillingOverdue, 200},
		{"current month partial", time.February, payments(50), domain.BillingPartial, 200},
		{"current month unpaid", time.February, payments(), domain.BillingUnpaid, 200},
		{"future month unpaid", time.March, payments(), domain.BillingUnpaid, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recurring := new(MockRecurringRepository)
			source := new(MockPaymentSource)
			recurring.On("GetByID", mock.Anything, int64(5)).Return(mondayPattern(), nil)
			source.On("RecordsFor", mock.Anything, int64(5), tt.month, 2026).Return(tt.records, nil)

			service := NewService(recurring, source, new(MockPaymentWriter), now)
			st, err := service.StatusForMonth(context.Background(), 5, tt.month, 2026)
			require.NoError(t, err)

			assert.Equal(t, tt.want, st.Status)
			assert.Equal(t, tt.wantDue, st.AmountDue)
		})
	}
}

func TestService_StatusForMonth_OutsideActiveRange(t *testing.T) {
	recurring := new(MockRecurringRepository)
	recurring.On("GetByID", mock.Anything, int64(5)).Return(mondayPattern(), nil)

	service := NewService(recurring, new(MockPaymentSource), new(MockPaymentWriter),
		clock.Fixed(time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)))

	_, err := service.StatusForMonth(context.Background(), 5, time.December, 2025)
	assert.ErrorIs(t, err, ErrInvalidBillingRange)

	_, err = service.StatusForMonth(context.Background(), 5, time.April, 2026)
	assert.ErrorIs(t, err, ErrInvalidBillingRange)
}

func TestService_History_StartThroughCurrentMonth(t *testing.T) {
	recurring := new(MockRecurringRepository)
	source := new(MockPaymentSource)
	recurring.On("GetByID", mock.Anything, int64(5)).Return(mondayPattern(), nil)
	source.On("RecordsFor", mock.Anything, int64(5), mock.Anything, 2026).Return(payments(), nil)

	service := NewService(recurring, source, new(MockPaymentWriter),
		clock.Fixed(time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)))

	history, err := service.History(context.Background(), 5)
	require.NoError(t, err)

	require.Len(t, history, 2)
	assert.Equal(t, time.January, history[0].Month)
	assert.Equal(t, time.February, history[1].Month)
	assert.Equal(t, domain.BillingOverdue, history[0].Status)
	assert.Equal(t, domain.BillingUnpaid, history[1].Status)
}

func TestService_History_ClippedByEndDate(t *testing.T) {
	recurring := new(MockRecurringRepository)
	source := new(MockPaymentSource)
	recurring.On("GetByID", mock.Anything, int64(5)).Return(mondayPattern(), nil)
	source.On("RecordsFor", mock.Anything, int64(5), mock.Anything, 2026).Return(payments(200), nil)

	// well past the reservation's end; history stops at March
	service := NewService(recurring, source, new(MockPaymentWriter),
		clock.Fixed(time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)))

	history, err := service.History(context.Background(), 5)
	require.NoError(t, err)

	require.Len(t, history, 3)
	assert.Equal(t, time.March, history[2].Month)
	assert.Equal(t, 100.0, history[2].AmountDue)
	assert.Equal(t, domain.BillingPaid, history[2].Status)
}

func TestService_RecordPayment(t *testing.T) {
	recurring := new(MockRecurringRepository)
	writer := new(MockPaymentWriter)
	recurring.On("GetByID", mock.Anything, int64(5)).Return(mondayPattern(), nil)
	writer.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(recurring, new(MockPaymentSource), writer,
		clock.Fixed(time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)))

	rec, err := service.RecordPayment(context.Background(), 5, time.February, 2026, 50, "card")
	require.NoError(t, err)
	assert.Equal(t, int64(77), rec.ID)
	assert.Equal(t, 50.0, rec.Amount)

	_, err = service.RecordPayment(context.Background(), 5, time.February, 2026, 0, "card")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = service.RecordPayment(context.Background(), 5, time.April, 2026, 50, "card")
	assert.ErrorIs(t, err, ErrInvalidBillingRange)
}
