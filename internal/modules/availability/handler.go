package availability

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"courtbook/internal/pkg/response"
	"courtbook/internal/pkg/timegrid"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/availability", h.GetGrid)
	rg.GET("/courts", h.ListCourts)
}

func (h *Handler) GetGrid(c *gin.Context) {
	date, err := timegrid.ParseDay(c.Query("date"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date must be YYYY-MM-DD")
		return
	}

	courtIDs, err := parseIDList(c.Query("court_ids"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "court_ids must be a comma-separated id list")
		return
	}

	grid, err := h.service.Resolve(c.Request.Context(), date, courtIDs)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownCourt):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Unknown court id")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to resolve availability")
		}
		return
	}

	tg := h.service.TimeGrid()
	out := GridResponse{
		Date:   grid.Date.Format("2006-01-02"),
		Units:  make([]string, tg.Units()),
		Courts: make([]CourtGridResponse, 0, len(grid.Courts)),
	}
	for i := range out.Units {
		out.Units[i] = tg.Clock(i)
	}
	for _, cg := range grid.Courts {
		cr := CourtGridResponse{
			CourtID:  cg.CourtID,
			Name:     cg.Name,
			Category: string(cg.Category),
			MinUnits: cg.MinUnits,
			States:   make([]string, len(cg.Units)),
			Kinds:    make([]string, len(cg.Units)),
		}
		for i, cell := range cg.Units {
			cr.States[i] = string(cell.State)
			cr.Kinds[i] = string(cell.Kind)
		}
		out.Courts = append(out.Courts, cr)
	}

	response.Success(c, http.StatusOK, out)
}

func (h *Handler) ListCourts(c *gin.Context) {
	courts, err := h.service.courts.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list courts")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"courts": courts})
}

func parseIDList(s string) ([]int64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
