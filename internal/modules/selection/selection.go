package selection

import (
	"sort"

	"courtbook/internal/modules/availability"
	"courtbook/internal/pkg/timegrid"
)

// Selection holds the in-progress picks as one contiguous run per court.
// It is transient: built by toggles against an availability snapshot and
// destroyed on submit or cancel. The same rules run where the selection is
// assembled and again, authoritatively, at commit time.
type Selection map[int64]timegrid.Span

func (s Selection) clone() Selection {
	out := make(Selection, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Units returns the picked unit indexes for one court, in order.
func (s Selection) Units(courtID int64) []int {
	run, ok := s[courtID]
	if !ok {
		return nil
	}
	out := make([]int, 0, run.Len())
	for i := run.From; i < run.To; i++ {
		out = append(out, i)
	}
	return out
}

// Toggle applies one pick/unpick event and returns the resulting selection.
// Rules, in order:
//   - first pick on a court atomically selects a run of the category
//     minimum starting at unit;
//   - growth only onto a unit directly before or after the run;
//   - unpicking at or below the minimum clears the court entirely;
//   - unpicking above the minimum must not split the run.
func Toggle(grid *availability.Grid, sel Selection, courtID int64, unit int) (Selection, error) {
	cg := grid.Court(courtID)
	if cg == nil {
		return nil, ErrUnknownCourt
	}
	if unit < 0 || unit >= len(cg.Units) {
		return nil, ErrValidation
	}

	run, has := sel[courtID]
	if has && run.Contains(unit) {
		return remove(sel, courtID, run, unit, cg.MinUnits)
	}

	if cg.Units[unit].State != availability.UnitFree {
		return nil, ErrUnitUnavailable
	}

	if !has {
		return anchor(grid, sel, courtID, unit, cg.MinUnits)
	}
	return grow(sel, courtID, run, unit)
}

func anchor(grid *availability.Grid, sel Selection, courtID int64, unit, min int) (Selection, error) {
	cg := grid.Court(courtID)
	if unit+min > len(cg.Units) {
		return nil, ErrInsufficientContiguousSlots
	}
	for i := unit; i < unit+min; i++ {
		if cg.Units[i].State != availability.UnitFree {
			return nil, ErrInsufficientContiguousSlots
		}
	}
	out := sel.clone()
	out[courtID] = timegrid.Span{From: unit, To: unit + min}
	return out, nil
}

func grow(sel Selection, courtID int64, run timegrid.Span, unit int) (Selection, error) {
	switch unit {
	case run.From - 1:
		run.From--
	case run.To:
		run.To++
	default:
		return nil, ErrNotAdjacent
	}
	out := sel.clone()
	out[courtID] = run
	return out, nil
}

func remove(sel Selection, courtID int64, run timegrid.Span, unit, min int) (Selection, error) {
	out := sel.clone()

	// Shrinking below the minimum is never partial: start over.
	if run.Len() <= min {
		delete(out, courtID)
		return out, nil
	}

	switch unit {
	case run.From:
		run.From++
	case run.To - 1:
		run.To--
	default:
		return nil, ErrWouldBreakContinuity
	}
	out[courtID] = run
	return out, nil
}

// ValidateRuns checks a submitted pick set against a fresh availability
// snapshot: per court the units must form exactly one contiguous run of at
// least the category minimum, with every unit free. This is the same rule
// set the toggles enforce, re-run server-side so the two can never skew.
func ValidateRuns(grid *availability.Grid, picks map[int64][]int) (Selection, error) {
	if len(picks) == 0 {
		return nil, ErrValidation
	}
	sel := make(Selection, len(picks))
	for courtID, units := range picks {
		cg := grid.Court(courtID)
		if cg == nil {
			return nil, ErrUnknownCourt
		}
		if len(units) < cg.MinUnits {
			return nil, ErrInsufficientContiguousSlots
		}

		sorted := append([]int(nil), units...)
		sort.Ints(sorted)
		for i, u := range sorted {
			if u < 0 || u >= len(cg.Units) {
				return nil, ErrValidation
			}
			if i > 0 && u != sorted[i-1]+1 {
				return nil, ErrWouldBreakContinuity
			}
			switch cg.Units[u].State {
			case availability.UnitFree:
			case availability.UnitConflict:
				return nil, availability.ErrDataIntegrity
			default:
				return nil, ErrUnitUnavailable
			}
		}
		sel[courtID] = timegrid.Span{From: sorted[0], To: sorted[len(sorted)-1] + 1}
	}
	return sel, nil
}
