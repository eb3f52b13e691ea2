package negotiation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gorm.io/gorm"

	"courtbook/internal/modules/availability"
	"courtbook/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/requests", h.Create)
	rg.GET("/requests", h.List)
	rg.GET("/requests/:id", h.Get)
	rg.POST("/requests/:id/transition", h.Transition)
}

// RegisterCoachRoutes mounts the coach's inbox; the group carries the
// coach-role middleware.
func (h *Handler) RegisterCoachRoutes(rg *gin.RouterGroup) {
	rg.GET("/requests/open", h.ListOpen)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	r, err := h.service.File(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"request": r})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	r, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"request": r})
}

func (h *Handler) List(c *gin.Context) {
	requesterID, err := strconv.ParseInt(c.Query("requester_id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "requester_id is required")
		return
	}
	requests, err := h.service.ListByRequester(c.Request.Context(), requesterID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"requests": requests})
}

func (h *Handler) ListOpen(c *gin.Context) {
	requests, err := h.service.ListOpen(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"requests": requests})
}

func (h *Handler) Transition(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	// Approving and counter-proposing are the coach's side of the exchange;
	// accepting or declining a suggestion stays with the requester.
	if coachAction(Action(req.Action)) && c.GetString("role") != "coach" {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only coaches can approve or counter-propose")
		return
	}

	r, err := h.service.Transition(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"request": r})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrMissingCourt), errors.Is(err, ErrMissingSuggestion):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Transition not allowed from current status")
	case errors.Is(err, ErrSlotNoLongerAvailable):
		response.Error(c, http.StatusConflict, "SLOT_TAKEN", "Slot no longer available, pick a different court or time")
	case errors.Is(err, availability.ErrDataIntegrity):
		response.Error(c, http.StatusConflict, "DATA_INTEGRITY", "Conflicting reservations claim the same unit")
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Lesson request not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process lesson request")
	}
}

func coachAction(a Action) bool {
	return a == ActionApprove || a == ActionSuggest
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request id")
		return 0, false
	}
	return id, true
}
