package selection

type SubmitRequest struct {
	Date      string       `json:"date" binding:"required"`
	MemberID  *int64       `json:"member_id"`
	GuestName string       `json:"guest_name"`
	Picks     []CourtPicks `json:"picks" binding:"required"`
}

type CourtPicks struct {
	CourtID int64 `json:"court_id" binding:"required"`
	Units   []int `json:"units" binding:"required"`
}

type CourtQuote struct {
	CourtID int64   `json:"court_id"`
	Units   []int   `json:"units"`
	Price   float64 `json:"price"`
}

type Quote struct {
	Valid  bool         `json:"valid"`
	Total  float64      `json:"total"`
	Errors []string     `json:"errors"`
	Courts []CourtQuote `json:"courts,omitempty"`
}
