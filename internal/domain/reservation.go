package domain

import "time"

// SourceKind tags which reservation variant claims a unit.
type SourceKind string

const (
	SourceOneOff    SourceKind = "one_off"
	SourceRecurring SourceKind = "recurring"
	SourceLesson    SourceKind = "lesson"
)

// Occupancy is the common projection of all reservation variants: a claimed
// half-open unit range on one court. The availability resolver only ever
// works on this shape.
type Occupancy struct {
	CourtID  int64      `json:"court_id"`
	FromUnit int        `json:"from_unit"`
	ToUnit   int        `json:"to_unit"`
	Kind     SourceKind `json:"kind"`
}

// OneOff is a single ad hoc court booking by a member or a walk-in guest.
type OneOff struct {
	ID         int64         `json:"id"`
	CourtID    int64         `json:"court_id"`
	Date       time.Time     `json:"date"`
	FromUnit   int           `json:"from_unit"`
	ToUnit     int           `json:"to_unit"`
	MemberID   *int64        `json:"member_id,omitempty"`
	GuestName  string        `json:"guest_name,omitempty"`
	Category   CourtCategory `json:"category"`
	TotalPrice float64       `json:"total_price"`
	CreatedAt  time.Time     `json:"created_at"`
}

func (b OneOff) Occupancy() Occupancy {
	return Occupancy{CourtID: b.CourtID, FromUnit: b.FromUnit, ToUnit: b.ToUnit, Kind: SourceOneOff}
}

// Recurring is a weekly standing booking. Occurrences are never stored as
// rows; they are expanded on demand from the pattern.
type Recurring struct {
	ID              int64         `json:"id"`
	CourtID         int64         `json:"court_id"`
	Weekday         time.Weekday  `json:"weekday"`
	FromUnit        int           `json:"from_unit"`
	ToUnit          int           `json:"to_unit"`
	Category        CourtCategory `json:"category"`
	PricePerSession float64       `json:"price_per_session"`
	ActiveFrom      time.Time     `json:"active_from"`
	ActiveTo        *time.Time    `json:"active_to,omitempty"`
	Active          bool          `json:"active"`
	HolderID        *int64        `json:"holder_id,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}

// OccursOn reports whether the pattern generates an occurrence on day
// (day is a midnight-UTC date).
func (r Recurring) OccursOn(day time.Time) bool {
	if !r.Active || day.Weekday() != r.Weekday {
		return false
	}
	return r.CoversDate(day)
}

// CoversDate reports whether day falls inside the active range, ignoring
// the weekday and the active flag.
func (r Recurring) CoversDate(day time.Time) bool {
	if day.Before(truncateDay(r.ActiveFrom)) {
		return false
	}
	if r.ActiveTo != nil && day.After(truncateDay(*r.ActiveTo)) {
		return false
	}
	return true
}

func (r Recurring) Occupancy() Occupancy {
	return Occupancy{CourtID: r.CourtID, FromUnit: r.FromUnit, ToUnit: r.ToUnit, Kind: SourceRecurring}
}

type LessonStatus string

const (
	LessonScheduled LessonStatus = "scheduled"
	LessonCompleted LessonStatus = "completed"
	LessonCancelled LessonStatus = "cancelled"
)

// LessonSession is an instructor-led session on a court. Only scheduled
// sessions occupy grid units.
type LessonSession struct {
	ID        int64         `json:"id"`
	CourtID   int64         `json:"court_id"`
	Date      time.Time     `json:"date"`
	FromUnit  int           `json:"from_unit"`
	ToUnit    int           `json:"to_unit"`
	Category  CourtCategory `json:"category"`
	Status    LessonStatus  `json:"status"`
	CoachID   int64         `json:"coach_id"`
	RequestID *int64        `json:"request_id,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

func (l LessonSession) Occupancy() Occupancy {
	return Occupancy{CourtID: l.CourtID, FromUnit: l.FromUnit, ToUnit: l.ToUnit, Kind: SourceLesson}
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
