package negotiation

import (
	"context"
	"errors"
	"time"

	"courtbook/internal/domain"
	"courtbook/internal/modules/availability"
	"courtbook/internal/pkg/locks"
	"courtbook/internal/pkg/pricing"
	"courtbook/internal/pkg/timegrid"
)

type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionSuggest Action = "suggest"
	ActionAccept  Action = "accept"
)

// Service runs the lesson request lifecycle:
//
//	pending -> approved | rejected | changed
//	changed -> accepted (-> approved) | changed | rejected
//
// approved and rejected are terminal; a fresh request is needed to retry.
// Every path into approved re-checks availability for the exact target
// range under the court write lock, so an approval can never allocate a
// unit a competing commit already took.
type Service struct {
	requests     RequestRepository
	availability AvailabilityChecker
	policy       *pricing.Policy
	grid         *timegrid.Grid
	locks        *locks.CourtLocks
	notifier     GridNotifier
}

func NewService(
	requests RequestRepository,
	av AvailabilityChecker,
	policy *pricing.Policy,
	grid *timegrid.Grid,
	courtLocks *locks.CourtLocks,
	notifier GridNotifier,
) *Service {
	return &Service{
		requests:     requests,
		availability: av,
		policy:       policy,
		grid:         grid,
		locks:        courtLocks,
		notifier:     notifier,
	}
}

// File creates a new pending request.
func (s *Service) File(ctx context.Context, req CreateRequest) (*domain.LessonRequest, error) {
	cat := domain.CourtCategory(req.Category)
	if !cat.Valid() {
		return nil, ErrValidation
	}
	date, err := timegrid.ParseDay(req.Date)
	if err != nil {
		return nil, ErrValidation
	}
	span := timegrid.Span{From: req.FromUnit, To: req.FromUnit + req.Units}
	if !s.grid.ValidSpan(span) {
		return nil, ErrValidation
	}

	r := &domain.LessonRequest{
		RequesterID: req.RequesterID,
		Category:    cat,
		Date:        date,
		FromUnit:    span.From,
		ToUnit:      span.To,
		Status:      domain.RequestPending,
		Notes:       req.Notes,
	}
	if err := s.requests.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.LessonRequest, error) {
	return s.requests.GetByID(ctx, id)
}

func (s *Service) ListByRequester(ctx context.Context, requesterID int64) ([]domain.LessonRequest, error) {
	return s.requests.ListByRequester(ctx, requesterID)
}

// ListOpen returns the requests a coach still has to act on.
func (s *Service) ListOpen(ctx context.Context) ([]domain.LessonRequest, error) {
	return s.requests.ListOpen(ctx)
}

// Transition applies one action to the request and returns its new state.
// Failed approvals leave the request in its prior status so the actor can
// pick a different court or time.
func (s *Service) Transition(ctx context.Context, id int64, req TransitionRequest) (*domain.LessonRequest, error) {
	r, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status.Terminal() {
		return nil, ErrInvalidTransition
	}

	switch Action(req.Action) {
	case ActionApprove:
		return s.approve(ctx, r, req)
	case ActionAccept:
		return s.accept(ctx, r, req)
	case ActionSuggest:
		return s.suggest(ctx, r, req)
	case ActionReject:
		return s.reject(ctx, r, req)
	default:
		return nil, ErrValidation
	}
}

// approve commits the request at its effective time. On the accept path
// the suggested values have already been copied into the requested fields.
func (s *Service) approve(ctx context.Context, r *domain.LessonRequest, req TransitionRequest) (*domain.LessonRequest, error) {
	if req.CourtID == nil {
		return nil, ErrMissingCourt
	}
	courtID := *req.CourtID
	span := timegrid.Span{From: r.FromUnit, To: r.ToUnit}

	unlock := s.locks.Lock([]int64{courtID})
	defer unlock()

	if err := s.availability.RangeState(ctx, r.Date, courtID, span); err != nil {
		if errors.Is(err, availability.ErrRangeUnavailable) {
			// A conflicting allocation landed after the request was filed.
			// The request keeps its prior status.
			return nil, ErrSlotNoLongerAvailable
		}
		return nil, err
	}

	// Price is fixed now, from the same per-unit table as ad hoc
	// selections; later policy changes never reprice an approved request.
	price, err := s.rangePrice(r.Category, r.Date, span)
	if err != nil {
		return nil, err
	}

	lesson := &domain.LessonSession{
		CourtID:   courtID,
		Date:      r.Date,
		FromUnit:  span.From,
		ToUnit:    span.To,
		Category:  r.Category,
		Status:    domain.LessonScheduled,
		RequestID: &r.ID,
	}

	approved := *r
	approved.Status = domain.RequestApproved
	approved.CourtID = &courtID
	approved.QuotedPrice = &price
	if req.Note != "" {
		approved.Notes = req.Note
	}

	// One transaction: the lesson row and the status flip land together or
	// not at all. A write failure here leaves the request untouched.
	if err := s.requests.ApproveWithLesson(ctx, &approved, lesson); err != nil {
		return nil, err
	}
	*r = approved

	if s.notifier != nil {
		s.notifier.GridInvalidated(r.Date, []int64{courtID})
	}
	return r, nil
}

// accept takes the last-suggested time as the effective requested time and
// re-enters the approval path, conflict check included.
func (s *Service) accept(ctx context.Context, r *domain.LessonRequest, req TransitionRequest) (*domain.LessonRequest, error) {
	if r.Status != domain.RequestChanged {
		return nil, ErrInvalidTransition
	}
	if r.SuggestedDate == nil || r.SuggestedFromUnit == nil || r.SuggestedToUnit == nil {
		return nil, ErrMissingSuggestion
	}

	r.Date = *r.SuggestedDate
	r.FromUnit = *r.SuggestedFromUnit
	r.ToUnit = *r.SuggestedToUnit
	return s.approve(ctx, r, req)
}

// suggest counter-proposes an alternative time; availability is not touched.
func (s *Service) suggest(ctx context.Context, r *domain.LessonRequest, req TransitionRequest) (*domain.LessonRequest, error) {
	if req.Date == nil || req.FromUnit == nil || req.Units == nil {
		return nil, ErrMissingSuggestion
	}
	date, err := timegrid.ParseDay(*req.Date)
	if err != nil {
		return nil, ErrValidation
	}
	span := timegrid.Span{From: *req.FromUnit, To: *req.FromUnit + *req.Units}
	if !s.grid.ValidSpan(span) {
		return nil, ErrValidation
	}

	r.Status = domain.RequestChanged
	r.SuggestedDate = &date
	r.SuggestedFromUnit = &span.From
	r.SuggestedToUnit = &span.To
	if req.Note != "" {
		r.Notes = req.Note
	}
	if err := s.requests.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) reject(ctx context.Context, r *domain.LessonRequest, req TransitionRequest) (*domain.LessonRequest, error) {
	r.Status = domain.RequestRejected
	if req.Note != "" {
		r.Notes = req.Note
	}
	if err := s.requests.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) rangePrice(cat domain.CourtCategory, date time.Time, span timegrid.Span) (float64, error) {
	var total float64
	for i := span.From; i < span.To; i++ {
		p, err := s.policy.UnitPrice(cat, s.grid.UnitStart(date, i))
		if err != nil {
			return 0, err
		}
		total += p
	}
	return pricing.Round(total), nil
}
