package domain

import "time"

type CourtCategory string

const (
	CategoryTennis CourtCategory = "tennis"
	CategoryPadel  CourtCategory = "padel"
)

// MinUnits is the smallest bookable run for the category, in 30-minute
// units: one hour of tennis, two hours of padel.
func (c CourtCategory) MinUnits() int {
	switch c {
	case CategoryPadel:
		return 4
	default:
		return 2
	}
}

func (c CourtCategory) Valid() bool {
	return c == CategoryTennis || c == CategoryPadel
}

type Court struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Category  CourtCategory `json:"category"`
	Active    bool          `json:"active"`
	CreatedAt time.Time     `json:"created_at"`
}
