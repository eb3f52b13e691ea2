package negotiation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"courtbook/internal/domain"
	"courtbook/internal/modules/availability"
	"courtbook/internal/pkg/locks"
	"courtbook/internal/pkg/pricing"
	"courtbook/internal/pkg/timegrid"
)

type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) Create(ctx context.Context, r *domain.LessonRequest) error {
	args := m.Called(ctx, r)
	r.ID = 55
	return args.Error(0)
}

func (m *MockRequestRepository) GetByID(ctx context.Context, id int64) (*domain.LessonRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LessonRequest), args.Error(1)
}

func (m *MockRequestRepository) Update(ctx context.Context, r *domain.LessonRequest) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRequestRepository) ListByRequester(ctx context.Context, requesterID int64) ([]domain.LessonRequest, error) {
	args := m.Called(ctx, requesterID)
	return args.Get(0).([]domain.LessonRequest), args.Error(1)
}

func (m *MockRequestRepository) ListOpen(ctx context.Context) ([]domain.LessonRequest, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.LessonRequest), args.Error(1)
}

func (m *MockRequestRepository) ApproveWithLesson(ctx context.Context, r *domain.LessonRequest, l *domain.LessonSession) error {
	args := m.Called(ctx, r, l)
	if args.Error(0) == nil {
		l.ID = 91
	}
	return args.Error(0)
}

type MockAvailabilityChecker struct {
	mock.Mock
}

func (m *MockAvailabilityChecker) RangeState(ctx context.Context, date time.Time, courtID int64, span timegrid.Span) error {
	args := m.Called(ctx, date, courtID, span)
	return args.Error(0)
}

var requestDay = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func pendingRequest() *domain.LessonRequest {
	return &domain.LessonRequest{
		ID:          55,
		RequesterID: 42,
		Category:    domain.CategoryTennis,
		Date:        requestDay,
		FromUnit:    6,
		ToUnit:      8,
		Status:      domain.RequestPending,
	}
}

func newTestService(requests *MockRequestRepository, checker *MockAvailabilityChecker) *Service {
	return NewService(requests, checker, pricing.Default(),
		timegrid.MustNew("07:00", "23:00"), locks.New(), nil)
}

func TestService_File(t *testing.T) {
	requests := new(MockRequestRepository)
	requests.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(requests, new(MockAvailabilityChecker))

	r, err := service.File(context.Background(), CreateRequest{
		RequesterID: 42, Category: "tennis", Date: "2026-03-02", FromUnit: 6, Units: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RequestPending, r.Status)
	assert.Equal(t, 6, r.FromUnit)
	assert.Equal(t, 8, r.ToUnit)
}

func TestService_File_Validation(t *testing.T) {
	service := newTestService(new(MockRequestRepository), new(MockAvailabilityChecker))

	_, err := service.File(context.Background(), CreateRequest{
		RequesterID: 42, Category: "squash", Date: "2026-03-02", FromUnit: 6, Units: 2,
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = service.File(context.Background(), CreateRequest{
		RequesterID: 42, Category: "tennis", Date: "yesterday", FromUnit: 6, Units: 2,
	})
	assert.ErrorIs(t, err, ErrValidation)

	// span runs past the end of the day
	_, err = service.File(context.Background(), CreateRequest{
		RequesterID: 42, Category: "tennis", Date: "2026-03-02", FromUnit: 31, Units: 2,
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_Transition_ApproveCreatesLesson(t *testing.T) {
	requests := new(MockRequestRepository)
	checker := new(MockAvailabilityChecker)

	requests.On("GetByID", mock.Anything, int64(55)).Return(pendingRequest(), nil)
	checker.On("RangeState", mock.Anything, requestDay, int64(1), timegrid.Span{From: 6, To: 8}).Return(nil)
	requests.On("ApproveWithLesson", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	service := newTestService(requests, checker)

	courtID := int64(1)
	r, err := service.Transition(context.Background(), 55, TransitionRequest{Action: "approve", CourtID: &courtID})
	require.NoError(t, err)

	assert.Equal(t, domain.RequestApproved, r.Status)
	require.NotNil(t, r.CourtID)
	assert.Equal(t, int64(1), *r.CourtID)
	require.NotNil(t, r.QuotedPrice)
	assert.Equal(t, 10.0, *r.QuotedPrice) // two tennis units at 5.00

	requests.AssertCalled(t, "ApproveWithLesson", mock.Anything,
		mock.MatchedBy(func(req *domain.LessonRequest) bool {
			return req.Status == domain.RequestApproved && req.CourtID != nil && *req.CourtID == 1
		}),
		mock.MatchedBy(func(l *domain.LessonSession) bool {
			return l.CourtID == 1 && l.FromUnit == 6 && l.ToUnit == 8 &&
				l.Status == domain.LessonScheduled && l.RequestID != nil && *l.RequestID == 55
		}))
}

func TestService_Transition_ApproveWithoutCourt(t *testing.T) {
	requests := new(MockRequestRepository)
	requests.On("GetByID", mock.Anything, int64(55)).Return(pendingRequest(), nil)

	service := newTestService(requests, new(MockAvailabilityChecker))

	_, err := service.Transition(context.Background(), 55, TransitionRequest{Action: "approve"})
	assert.ErrorIs(t, err, ErrMissingCourt)
}

func TestService_Transition_ApproveLosesRaceKeepsStatus(t *testing.T) {
	requests := new(MockRequestRepository)
	checker := new(MockAvailabilityChecker)

	r := pendingRequest()
	requests.On("GetByID", mock.Anything, int64(55)).Return(r, nil)
	// an ad hoc booking took the slot between filing and approval
	checker.On("RangeState", mock.Anything, requestDay, int64(1), timegrid.Span{From: 6, To: 8}).
		Return(availability.ErrRangeUnavailable)

	service := newTestService(requests, checker)

	courtID := int64(1)
	_, err := service.Transition(context.Background(), 55, TransitionRequest{Action: "approve", CourtID: &courtID})
	assert.ErrorIs(t, err, ErrSlotNoLongerAvailable)

	assert.Equal(t, domain.RequestPending, r.Status)
	requests.AssertNotCalled(t, "ApproveWithLesson", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Transition_ApproveWriteFailureKeepsRequest(t *testing.T) {
	requests := new(MockRequestRepository)
	checker := new(MockAvailabilityChecker)

	r := pendingRequest()
	requests.On("GetByID", mock.Anything, int64(55)).Return(r, nil)
	checker.On("RangeState", mock.Anything, requestDay, int64(1), timegrid.Span{From: 6, To: 8}).Return(nil)
	// the transactional write rolls back as a unit, so a failure must leave
	// no trace on the request either
	requests.On("ApproveWithLesson", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("connection reset"))

	service := newTestService(requests, checker)

	courtID := int64(1)
	_, err := service.Transition(context.Background(), 55, TransitionRequest{Action: "approve", CourtID: &courtID})
	assert.Error(t, err)

	assert.Equal(t, domain.RequestPending, r.Status)
	assert.Nil(t, r.CourtID)
	assert.Nil(t, r.QuotedPrice)
	requests.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_Transition_SuggestThenAccept(t *testing.T) {
	requests := new(MockRequestRepository)
	checker := new(MockAvailabilityChecker)

	r := pendingRequest()
	requests.On("GetByID", mock.Anything, int64(55)).Return(r, nil)
	requests.On("Update", mock.Anything, mock.Anything).Return(nil)
	requests.On("ApproveWithLesson", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	service := newTestService(requests, checker)

	// coach counter-proposes 11:00-12:00 on the same day
	date := "2026-03-02"
	from, units := 8, 2
	out, err := service.Transition(context.Background(), 55, TransitionRequest{
		Action: "suggest", Date: &date, FromUnit: &from, Units: &units,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RequestChanged, out.Status)
	require.NotNil(t, out.SuggestedFromUnit)
	assert.Equal(t, 8, *out.SuggestedFromUnit)

	// acceptance approves at the suggested time, not the original one
	checker.On("RangeState", mock.Anything, requestDay, int64(1), timegrid.Span{From: 8, To: 10}).Return(nil)

	courtID := int64(1)
	out, err = service.Transition(context.Background(), 55, TransitionRequest{Action: "accept", CourtID: &courtID})
	require.NoError(t, err)
	assert.Equal(t, domain.RequestApproved, out.Status)
	assert.Equal(t, 8, out.FromUnit)
	assert.Equal(t, 10, out.ToUnit)
}

func TestService_Transition_AcceptRequiresSuggestion(t *testing.T) {
	requests := new(MockRequestRepository)

	r := pendingRequest()
	r.Status = domain.RequestChanged
	requests.On("GetByID", mock.Anything, int64(55)).Return(r, nil)

	service := newTestService(requests, new(MockAvailabilityChecker))

	courtID := int64(1)
	_, err := service.Transition(context.Background(), 55, TransitionRequest{Action: "accept", CourtID: &courtID})
	assert.ErrorIs(t, err, ErrMissingSuggestion)
}

func TestService_Transition_AcceptOnlyFromChanged(t *testing.T) {
	requests := new(MockRequestRepository)
	requests.On("GetByID", mock.Anything, int64(55)).Return(pendingRequest(), nil)

	service := newTestService(requests, new(MockAvailabilityChecker))

	courtID := int64(1)
	_, err := service.Transition(context.Background(), 55, TransitionRequest{Action: "accept", CourtID: &courtID})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestService_Transition_Reject(t *testing.T) {
	requests := new(MockRequestRepository)
	requests.On("GetByID", mock.Anything, int64(55)).Return(pendingRequest(), nil)
	requests.On("Update", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(requests, new(MockAvailabilityChecker))

	r, err := service.Transition(context.Background(), 55, TransitionRequest{Action: "reject", Note: "no coach free"})
	require.NoError(t, err)
	assert.Equal(t, domain.RequestRejected, r.Status)
	assert.Equal(t, "no coach free", r.Notes)
}

func TestService_Transition_TerminalIsFinal(t *testing.T) {
	requests := new(MockRequestRepository)

	r := pendingRequest()
	r.Status = domain.RequestRejected
	requests.On("GetByID", mock.Anything, int64(55)).Return(r, nil)

	service := newTestService(requests, new(MockAvailabilityChecker))

	_, err := service.Transition(context.Background(), 55, TransitionRequest{Action: "approve"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestService_Transition_UnknownAction(t *testing.T) {
	requests := new(MockRequestRepository)
	requests.On("GetByID", mock.Anything, int64(55)).Return(pendingRequest(), nil)

	service := newTestService(requests, new(MockAvailabilityChecker))

	_, err := service.Transition(context.Background(), 55, TransitionRequest{Action: "escalate"})
	assert.ErrorIs(t, err, ErrValidation)
}
