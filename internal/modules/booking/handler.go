package booking

import (
	"errors"
	"net/http"
	"strconv"

	"soccerspot/internal/domain"
	"soccerspot/internal/modules/catalog"
	"soccerspot/internal/pkg/metrics"
	"soccerspot/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings/quote", h.Quote)
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.CreateBooking)
	rg.GET("/bookings", h.ListMine)
	rg.GET("/bookings/:id", h.GetBooking)
}

// Quote handles POST /api/v1/bookings/quote
func (h *Handler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	q, err := h.service.Quote(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	metrics.ObserveQuote("booking_quote")

	response.Success(c, http.StatusOK, q)
}

// CreateBooking handles POST /api/v1/bookings
func (h *Handler) CreateBooking(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, q, err := h.service.CreateBooking(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"booking": CreateBookingResponse{
			ID:            b.ID,
			Status:        string(b.Status),
			PaymentStatus: string(b.PaymentStatus),
			Quote:         *q,
		},
	})
}

// GetBooking handles GET /api/v1/bookings/:id
func (h *Handler) GetBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	b, err := h.service.GetBooking(c.Request.Context(), c.GetInt64("user_id"), domain.UserRole(c.GetString("role")), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

// ListMine handles GET /api/v1/bookings
func (h *Handler) ListMine(c *gin.Context) {
	limit := 20
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	offset := 0
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v > 0 {
		offset = v
	}

	items, err := h.service.ListMine(c.Request.Context(), c.GetInt64("user_id"), limit, offset)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": items})
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, catalog.ErrInvalidDuration):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, catalog.ErrFieldNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Field not found")
	case errors.Is(err, catalog.ErrPriceNotConfigured):
		response.Error(c, http.StatusUnprocessableEntity, "PRICE_NOT_CONFIGURED", "No price is configured for this duration")
	case errors.Is(err, ErrBookingNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
	case errors.Is(err, ErrPromotionUnavailable):
		response.Error(c, http.StatusConflict, "PROMOTION_UNAVAILABLE", "The promotion was used up, please quote again")
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
