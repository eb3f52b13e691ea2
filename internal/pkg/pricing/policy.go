package pricing

import (
	"errors"
	"math"
	"time"

	"courtbook/internal/domain"
)

var ErrUnknownCategory = errors.New("no pricing rule for category")

// Policy maps (category, unit start) to a per-unit price. Rates are per
// 30-minute unit, i.e. half the nominal hourly rate. The policy is pure and
// must be queried once per unit so selections straddling a rate cutover
// total correctly.
type Policy struct {
	rules map[domain.CourtCategory]rule
}

type rule struct {
	base       float64
	peak       float64
	cutoverMin int // minutes from midnight; -1 when flat
}

func New() *Policy {
	return &Policy{rules: make(map[domain.CourtCategory]rule)}
}

// Default is the club's standard table: tennis flat, padel with an evening
// tier from 18:00 regardless of weekday.
func Default() *Policy {
	p := New()
	p.SetFlat(domain.CategoryTennis, 5.0)
	p.SetTwoTier(domain.CategoryPadel, 7.5, 9.0, "18:00")
	return p
}

func (p *Policy) SetFlat(cat domain.CourtCategory, perUnit float64) {
	p.rules[cat] = rule{base: perUnit, peak: perUnit, cutoverMin: -1}
}

// SetTwoTier prices units starting before the cutover clock time at before,
// and units starting at or after it at after.
func (p *Policy) SetTwoTier(cat domain.CourtCategory, before, after float64, cutover string) {
	t, err := time.Parse("15:04", cutover)
	if err != nil {
		panic(err)
	}
	p.rules[cat] = rule{base: before, peak: after, cutoverMin: t.Hour()*60 + t.Minute()}
}

// UnitPrice returns the price of the single unit starting at start.
func (p *Policy) UnitPrice(cat domain.CourtCategory, start time.Time) (float64, error) {
	r, ok := p.rules[cat]
	if !ok {
		return 0, ErrUnknownCategory
	}
	if r.cutoverMin >= 0 && start.Hour()*60+start.Minute() >= r.cutoverMin {
		return r.peak, nil
	}
	return r.base, nil
}

// Round normalizes a summed total to cents.
func Round(v float64) float64 {
	return math.Round(v*100) / 100
}
