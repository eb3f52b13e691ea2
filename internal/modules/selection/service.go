package selection

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"courtbook/internal/domain"
	"courtbook/internal/modules/availability"
	"courtbook/internal/pkg/locks"
	"courtbook/internal/pkg/pricing"
	"courtbook/internal/pkg/timegrid"
	"courtbook/internal/repository"
)

// Service validates, prices and commits multi-court selections. The commit
// path re-runs the exact same rule set as the interactive toggles against a
// fresh availability snapshot, inside the per-court write locks, so two
// concurrent submissions can never both observe "free".
type Service struct {
	availability *availability.Service
	bookings     BookingWriter
	policy       *pricing.Policy
	locks        *locks.CourtLocks
	notifier     GridNotifier
}

func NewService(av *availability.Service, bookings BookingWriter, policy *pricing.Policy, courtLocks *locks.CourtLocks, notifier GridNotifier) *Service {
	return &Service{
		availability: av,
		bookings:     bookings,
		policy:       policy,
		locks:        courtLocks,
		notifier:     notifier,
	}
}

// ValidateAndPrice checks a submission against current availability and
// returns the priced quote. Rule failures are expected and come back inside
// the quote, not as errors.
func (s *Service) ValidateAndPrice(ctx context.Context, req SubmitRequest) (*Quote, error) {
	date, picks, err := s.parse(req)
	if err != nil {
		return nil, err
	}

	grid, err := s.availability.Resolve(ctx, date, courtIDsOf(picks))
	if err != nil {
		return nil, err
	}

	sel, err := ValidateRuns(grid, picks)
	if err != nil {
		if code, ok := ruleCode(err); ok {
			return &Quote{Valid: false, Errors: []string{code}}, nil
		}
		return nil, err
	}

	quote, err := s.price(grid, date, sel)
	if err != nil {
		return nil, err
	}
	return quote, nil
}

// Commit re-validates against a fresh snapshot under the court locks and
// persists the whole submission atomically. On conflict the caller's
// selection is untouched; only the commit needs retrying.
func (s *Service) Commit(ctx context.Context, req SubmitRequest) ([]int64, error) {
	date, picks, err := s.parse(req)
	if err != nil {
		return nil, err
	}
	if req.MemberID == nil && req.GuestName == "" {
		return nil, ErrValidation
	}

	courtIDs := courtIDsOf(picks)
	unlock := s.locks.Lock(courtIDs)
	defer unlock()

	grid, err := s.availability.Resolve(ctx, date, courtIDs)
	if err != nil {
		return nil, err
	}

	sel, err := ValidateRuns(grid, picks)
	if err != nil {
		if errors.Is(err, ErrUnitUnavailable) {
			// A competing write landed after the client assembled its
			// selection. Retryable.
			return nil, ErrSlotNoLongerAvailable
		}
		return nil, err
	}

	bookings := make([]*domain.OneOff, 0, len(sel))
	for _, courtID := range courtIDs {
		run := sel[courtID]
		cg := grid.Court(courtID)
		price, err := s.runPrice(cg.Category, date, run)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, &domain.OneOff{
			CourtID:    courtID,
			Date:       date,
			FromUnit:   run.From,
			ToUnit:     run.To,
			MemberID:   req.MemberID,
			GuestName:  req.GuestName,
			Category:   cg.Category,
			TotalPrice: price,
		})
	}

	if err := s.bookings.CreateOneOffs(ctx, bookings); err != nil {
		if errors.Is(err, repository.ErrOverlap) {
			return nil, ErrSlotNoLongerAvailable
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23P01" && pgErr.ConstraintName == "no_court_overlap" {
			return nil, ErrSlotNoLongerAvailable
		}
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.GridInvalidated(date, courtIDs)
	}

	ids := make([]int64, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.ID)
	}
	return ids, nil
}

func (s *Service) parse(req SubmitRequest) (time.Time, map[int64][]int, error) {
	date, err := timegrid.ParseDay(req.Date)
	if err != nil {
		return time.Time{}, nil, ErrValidation
	}
	if len(req.Picks) == 0 {
		return time.Time{}, nil, ErrValidation
	}
	picks := make(map[int64][]int, len(req.Picks))
	for _, p := range req.Picks {
		if _, dup := picks[p.CourtID]; dup {
			return time.Time{}, nil, ErrValidation
		}
		picks[p.CourtID] = p.Units
	}
	return date, picks, nil
}

func (s *Service) price(grid *availability.Grid, date time.Time, sel Selection) (*Quote, error) {
	quote := &Quote{Valid: true, Errors: []string{}}
	for _, cg := range grid.Courts {
		run, ok := sel[cg.CourtID]
		if !ok {
			continue
		}
		price, err := s.runPrice(cg.Category, date, run)
		if err != nil {
			return nil, err
		}
		quote.Courts = append(quote.Courts, CourtQuote{
			CourtID: cg.CourtID,
			Units:   sel.Units(cg.CourtID),
			Price:   price,
		})
		quote.Total += price
	}
	quote.Total = pricing.Round(quote.Total)
	return quote, nil
}

// runPrice sums the per-unit price over the run. Never a rate times unit
// count: runs straddling the pricing cutover mix rates.
func (s *Service) runPrice(cat domain.CourtCategory, date time.Time, run timegrid.Span) (float64, error) {
	tg := s.availability.TimeGrid()
	var total float64
	for i := run.From; i < run.To; i++ {
		p, err := s.policy.UnitPrice(cat, tg.UnitStart(date, i))
		if err != nil {
			return 0, err
		}
		total += p
	}
	return pricing.Round(total), nil
}

func courtIDsOf(picks map[int64][]int) []int64 {
	ids := make([]int64, 0, len(picks))
	for id := range picks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func ruleCode(err error) (string, bool) {
	switch {
	case errors.Is(err, ErrInsufficientContiguousSlots):
		return "INSUFFICIENT_CONTIGUOUS_SLOTS", true
	case errors.Is(err, ErrNotAdjacent):
		return "NOT_ADJACENT", true
	case errors.Is(err, ErrWouldBreakContinuity):
		return "WOULD_BREAK_CONTINUITY", true
	case errors.Is(err, ErrUnitUnavailable):
		return "UNIT_UNAVAILABLE", true
	case errors.Is(err, availability.ErrDataIntegrity):
		return "DATA_INTEGRITY_CONFLICT", true
	default:
		return "", false
	}
}
