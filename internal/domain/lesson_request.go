package domain

import "time"

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestChanged  RequestStatus = "changed"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// Terminal reports whether no further transition is legal; a fresh request
// must be filed to retry.
func (s RequestStatus) Terminal() bool {
	return s == RequestApproved || s == RequestRejected
}

// LessonRequest is a negotiation between a requester and the coach over a
// proposed session time. The current counter-proposal lives on the request
// itself so server and client cannot disagree on what was last suggested.
type LessonRequest struct {
	ID          int64         `json:"id"`
	RequesterID int64         `json:"requester_id"`
	Category    CourtCategory `json:"category"`
	Date        time.Time     `json:"date"`
	FromUnit    int           `json:"from_unit"`
	ToUnit      int           `json:"to_unit"`
	Status      RequestStatus `json:"status"`

	SuggestedDate     *time.Time `json:"suggested_date,omitempty"`
	SuggestedFromUnit *int       `json:"suggested_from_unit,omitempty"`
	SuggestedToUnit   *int       `json:"suggested_to_unit,omitempty"`

	Notes       string   `json:"notes,omitempty"`
	CourtID     *int64   `json:"court_id,omitempty"`
	QuotedPrice *float64 `json:"quoted_price,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
