package timegrid

import (
	"errors"
	"fmt"
	"time"
)

// UnitDuration is the width of one slot on the lattice.
const UnitDuration = 30 * time.Minute

var ErrBadWindow = errors.New("invalid open/close window")

// Grid is the fixed 30-minute lattice of a business day. Units are addressed
// by index 0..Units()-1, where index 0 starts at opening time.
type Grid struct {
	openMin  int // minutes from midnight
	closeMin int
}

func New(open, close string) (*Grid, error) {
	openMin, err := parseClock(open)
	if err != nil {
		return nil, err
	}
	closeMin, err := parseClock(close)
	if err != nil {
		return nil, err
	}
	if closeMin <= openMin || (closeMin-openMin)%int(UnitDuration.Minutes()) != 0 {
		return nil, ErrBadWindow
	}
	return &Grid{openMin: openMin, closeMin: closeMin}, nil
}

func MustNew(open, close string) *Grid {
	g, err := New(open, close)
	if err != nil {
		panic(err)
	}
	return g
}

// Units reports how many units fit in one day.
func (g *Grid) Units() int {
	return (g.closeMin - g.openMin) / int(UnitDuration.Minutes())
}

// UnitStart returns the wall-clock start of the unit at idx on the given day.
func (g *Grid) UnitStart(day time.Time, idx int) time.Time {
	d := Day(day)
	return d.Add(time.Duration(g.openMin)*time.Minute + time.Duration(idx)*UnitDuration)
}

func (g *Grid) UnitEnd(day time.Time, idx int) time.Time {
	return g.UnitStart(day, idx).Add(UnitDuration)
}

// Clock returns the "15:04" label of the unit at idx.
func (g *Grid) Clock(idx int) string {
	m := g.openMin + idx*int(UnitDuration.Minutes())
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// IndexAt maps a wall-clock instant to the index of the unit containing it.
// ok is false when the instant falls outside the open window.
func (g *Grid) IndexAt(t time.Time) (int, bool) {
	m := t.Hour()*60 + t.Minute()
	if m < g.openMin || m >= g.closeMin {
		return 0, false
	}
	return (m - g.openMin) / int(UnitDuration.Minutes()), true
}

// Valid reports whether idx addresses a unit on this grid.
func (g *Grid) Valid(idx int) bool {
	return idx >= 0 && idx < g.Units()
}

// ValidSpan reports whether [from,to) is a non-empty range on this grid.
func (g *Grid) ValidSpan(s Span) bool {
	return s.From >= 0 && s.To <= g.Units() && s.From < s.To
}

// Span is a half-open unit range [From,To) on one day and one resource.
type Span struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func (s Span) Len() int { return s.To - s.From }

func (s Span) Contains(idx int) bool { return idx >= s.From && idx < s.To }

func (s Span) Overlaps(o Span) bool { return s.From < o.To && o.From < s.To }

// Day truncates t to midnight UTC; all grid dates are stored this way.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a "2006-01-02" date into a grid day.
func ParseDay(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return Day(d), nil
}

func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
