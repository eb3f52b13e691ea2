package availability

import (
	"context"
	"time"

	"courtbook/internal/domain"
	"courtbook/internal/pkg/clock"
	"courtbook/internal/pkg/timegrid"
)

type UnitState string

const (
	UnitFree     UnitState = "free"
	UnitPast     UnitState = "past"
	UnitOccupied UnitState = "occupied"
	UnitConflict UnitState = "conflict"
)

// Cell is the resolved state of one (court, unit) pair.
type Cell struct {
	State UnitState         `json:"state"`
	Kind  domain.SourceKind `json:"kind,omitempty"`
}

type CourtGrid struct {
	CourtID  int64                `json:"court_id"`
	Name     string               `json:"name"`
	Category domain.CourtCategory `json:"category"`
	MinUnits int                  `json:"min_units"`
	Units    []Cell               `json:"units"`
}

// Grid is one day's occupancy map across the requested courts.
type Grid struct {
	Date   time.Time
	Courts []CourtGrid
}

func (g *Grid) Court(id int64) *CourtGrid {
	for i := range g.Courts {
		if g.Courts[i].CourtID == id {
			return &g.Courts[i]
		}
	}
	return nil
}

// Service derives per-court, per-unit availability from the three
// reservation sources. It is a pure read projection: no side effects, cheap
// to call repeatedly, and it backs both the display grid and the pre-commit
// re-validation.
type Service struct {
	src    ReservationSource
	courts CourtRepository
	grid   *timegrid.Grid
	clock  clock.Clock
}

func NewService(src ReservationSource, courts CourtRepository, grid *timegrid.Grid, clk clock.Clock) *Service {
	return &Service{src: src, courts: courts, grid: grid, clock: clk}
}

// TimeGrid exposes the lattice so callers can price and label units.
func (s *Service) TimeGrid() *timegrid.Grid { return s.grid }

// Resolve builds the occupancy grid for date. Passing no courtIDs resolves
// every active court.
func (s *Service) Resolve(ctx context.Context, date time.Time, courtIDs []int64) (*Grid, error) {
	date = timegrid.Day(date)

	var (
		courts []domain.Court
		err    error
	)
	if len(courtIDs) == 0 {
		courts, err = s.courts.List(ctx)
	} else {
		courts, err = s.courts.GetByIDs(ctx, courtIDs)
	}
	if err != nil {
		return nil, err
	}
	if len(courtIDs) > 0 && len(courts) != len(dedupe(courtIDs)) {
		return nil, ErrUnknownCourt
	}

	ids := make([]int64, 0, len(courts))
	for _, c := range courts {
		ids = append(ids, c.ID)
	}

	occupancies, err := s.collect(ctx, date, ids)
	if err != nil {
		return nil, err
	}
	byCourt := make(map[int64][]domain.Occupancy, len(ids))
	for _, o := range occupancies {
		byCourt[o.CourtID] = append(byCourt[o.CourtID], o)
	}

	now := s.clock.Now()
	out := &Grid{Date: date, Courts: make([]CourtGrid, 0, len(courts))}
	for _, c := range courts {
		cg := CourtGrid{
			CourtID:  c.ID,
			Name:     c.Name,
			Category: c.Category,
			MinUnits: c.Category.MinUnits(),
			Units:    s.overlay(date, byCourt[c.ID], now),
		}
		out.Courts = append(out.Courts, cg)
	}
	return out, nil
}

// RangeState re-checks one exact court/date/unit-range. nil means every unit
// is free; ErrRangeUnavailable means at least one unit is past or occupied;
// ErrDataIntegrity means the range touches a unit claimed by two sources and
// must block any commit or approval until an operator resolves it.
func (s *Service) RangeState(ctx context.Context, date time.Time, courtID int64, span timegrid.Span) error {
	if !s.grid.ValidSpan(span) {
		return ErrValidation
	}
	g, err := s.Resolve(ctx, date, []int64{courtID})
	if err != nil {
		return err
	}
	cg := g.Court(courtID)
	if cg == nil {
		return ErrUnknownCourt
	}
	for i := span.From; i < span.To; i++ {
		switch cg.Units[i].State {
		case UnitConflict:
			return ErrDataIntegrity
		case UnitFree:
		default:
			return ErrRangeUnavailable
		}
	}
	return nil
}

// collect gathers the exhaustive occupancy set for date: stored one-offs,
// recurring patterns expanded on demand, and scheduled lessons. Patterns are
// never materialized as rows.
func (s *Service) collect(ctx context.Context, date time.Time, courtIDs []int64) ([]domain.Occupancy, error) {
	var out []domain.Occupancy

	oneOffs, err := s.src.OneOffsFor(ctx, date, courtIDs)
	if err != nil {
		return nil, err
	}
	for _, b := range oneOffs {
		out = append(out, b.Occupancy())
	}

	patterns, err := s.src.RecurringPatternsFor(ctx, courtIDs)
	if err != nil {
		return nil, err
	}
	for _, r := range patterns {
		if r.OccursOn(date) {
			out = append(out, r.Occupancy())
		}
	}

	lessons, err := s.src.LessonsFor(ctx, date, courtIDs)
	if err != nil {
		return nil, err
	}
	for _, l := range lessons {
		if l.Status == domain.LessonScheduled {
			out = append(out, l.Occupancy())
		}
	}
	return out, nil
}

func (s *Service) overlay(date time.Time, occupancies []domain.Occupancy, now time.Time) []Cell {
	units := make([]Cell, s.grid.Units())
	for i := range units {
		units[i] = Cell{State: UnitFree}
	}

	for _, o := range occupancies {
		from, to := o.FromUnit, o.ToUnit
		if from < 0 {
			from = 0
		}
		if to > len(units) {
			to = len(units)
		}
		for i := from; i < to; i++ {
			switch units[i].State {
			case UnitFree:
				units[i] = Cell{State: UnitOccupied, Kind: o.Kind}
			default:
				// Two sources claim the same unit. Surface it, never pick one.
				units[i] = Cell{State: UnitConflict}
			}
		}
	}

	// Units before "now" on the current date can never be selected,
	// whatever else claims them.
	for i := range units {
		if s.grid.UnitStart(date, i).Before(now) && units[i].State != UnitConflict {
			units[i] = Cell{State: UnitPast}
		}
	}
	return units
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
