package selection

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"courtbook/internal/modules/availability"
	"courtbook/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts the read-only validation endpoint.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/selection/validate", h.Validate)
}

// RegisterProtectedRoutes mounts the committing endpoint behind auth.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/selection/commit", h.Commit)
}

func (h *Handler) Validate(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	quote, err := h.service.ValidateAndPrice(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, quote)
}

func (h *Handler) Commit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	ids, err := h.service.Commit(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"booking_ids": ids})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid selection request")
	case errors.Is(err, ErrUnknownCourt), errors.Is(err, availability.ErrUnknownCourt):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Unknown court id")
	case errors.Is(err, ErrInsufficientContiguousSlots):
		response.Error(c, http.StatusBadRequest, "INSUFFICIENT_CONTIGUOUS_SLOTS", "Not enough contiguous free units")
	case errors.Is(err, ErrNotAdjacent):
		response.Error(c, http.StatusBadRequest, "NOT_ADJACENT", "Unit is not adjacent to the selection")
	case errors.Is(err, ErrWouldBreakContinuity):
		response.Error(c, http.StatusBadRequest, "WOULD_BREAK_CONTINUITY", "Removal would split the selection")
	case errors.Is(err, ErrSlotNoLongerAvailable):
		response.Error(c, http.StatusConflict, "SLOT_TAKEN", "Slot no longer available, re-resolve and retry")
	case errors.Is(err, availability.ErrDataIntegrity):
		response.Error(c, http.StatusConflict, "DATA_INTEGRITY", "Conflicting reservations claim the same unit")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process selection")
	}
}
