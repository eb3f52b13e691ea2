package availability

type GridResponse struct {
	Date   string              `json:"date"`
	Units  []string            `json:"units"` // clock label per unit index
	Courts []CourtGridResponse `json:"courts"`
}

type CourtGridResponse struct {
	CourtID  int64    `json:"court_id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	MinUnits int      `json:"min_units"`
	States   []string `json:"states"`
	Kinds    []string `json:"kinds"`
}
