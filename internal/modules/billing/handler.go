package billing

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"gorm.io/gorm"

	"courtbook/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/billing/:recurring_id", h.MonthStatus)
	rg.GET("/billing/:recurring_id/history", h.History)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/billing/:recurring_id/payments", h.RecordPayment)
}

func (h *Handler) MonthStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "month must be 1-12")
		return
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "year is required")
		return
	}

	st, err := h.service.StatusForMonth(c.Request.Context(), id, time.Month(month), year)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, st)
}

func (h *Handler) History(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	rollup, err := h.service.History(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"months": rollup})
}

type recordPaymentRequest struct {
	Month  int     `json:"month" binding:"required"`
	Year   int     `json:"year" binding:"required"`
	Amount float64 `json:"amount" binding:"required"`
	Method string  `json:"method"`
}

func (h *Handler) RecordPayment(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req recordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	rec, err := h.service.RecordPayment(c.Request.Context(), id, time.Month(req.Month), req.Year, req.Amount, req.Method)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"payment": rec})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid billing request")
	case errors.Is(err, ErrInvalidBillingRange):
		response.Error(c, http.StatusBadRequest, "INVALID_BILLING_RANGE", "Month is outside the reservation's active range")
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Recurring reservation not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute billing status")
	}
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("recurring_id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid recurring reservation id")
		return 0, false
	}
	return id, true
}
