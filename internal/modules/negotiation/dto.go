package negotiation

type CreateRequest struct {
	RequesterID int64  `json:"requester_id" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Date        string `json:"date" binding:"required"`
	FromUnit    int    `json:"from_unit"`
	Units       int    `json:"units" binding:"required"`
	Notes       string `json:"notes"`
}

type TransitionRequest struct {
	Action   string  `json:"action" binding:"required"`
	CourtID  *int64  `json:"court_id"`
	Date     *string `json:"date"`
	FromUnit *int    `json:"from_unit"`
	Units    *int    `json:"units"`
	Note     string  `json:"note"`
}
