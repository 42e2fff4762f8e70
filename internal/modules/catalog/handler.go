package catalog

import (
	"errors"
	"net/http"
	"strconv"

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
	rg.GET("/fields", h.ListFields)
	rg.GET("/fields/:id", h.GetField)
	rg.GET("/fields/:id/price", h.GetPrice)
	rg.GET("/fields/:id/prices", h.GetPrices)
}

// RegisterOwnerRoutes expects ownership middleware on the group.
func (h *Handler) RegisterOwnerRoutes(rg *gin.RouterGroup) {
	rg.PUT("/fields/:id/rates", h.UpdateRates)
}

// ListFields handles GET /api/v1/fields
func (h *Handler) ListFields(c *gin.Context) {
	limit := 20
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	page := 1
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		page = v
	}

	fields, err := h.service.ListFields(c.Request.Context(), c.Query("city"), limit, (page-1)*limit)
	if err != nil {
		handleError(c, err)
		return
	}
	metrics.ObserveQuote("field_list")

	response.Success(c, http.StatusOK, gin.H{
		"fields": fields,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
		},
	})
}

// GetField handles GET /api/v1/fields/:id
func (h *Handler) GetField(c *gin.Context) {
	fieldID, ok := parseID(c)
	if !ok {
		return
	}

	field, err := h.service.GetField(c.Request.Context(), fieldID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"field": field})
}

// GetPrice handles GET /api/v1/fields/:id/price?minutes=90
func (h *Handler) GetPrice(c *gin.Context) {
	fieldID, ok := parseID(c)
	if !ok {
		return
	}

	minutes, err := strconv.Atoi(c.DefaultQuery("minutes", "60"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_DURATION", "minutes must be a number")
		return
	}

	quote, err := h.service.Quote(c.Request.Context(), fieldID, minutes)
	if err != nil {
		handleError(c, err)
		return
	}
	metrics.ObserveQuote("field_price")

	response.Success(c, http.StatusOK, quote)
}

// GetPrices handles GET /api/v1/fields/:id/prices
func (h *Handler) GetPrices(c *gin.Context) {
	fieldID, ok := parseID(c)
	if !ok {
		return
	}

	quotes, err := h.service.Tiers(c.Request.Context(), fieldID)
	if err != nil {
		handleError(c, err)
		return
	}
	metrics.ObserveQuote("field_prices")

	response.Success(c, http.StatusOK, gin.H{"prices": quotes})
}

// UpdateRates handles PUT /api/v1/owner/fields/:id/rates
func (h *Handler) UpdateRates(c *gin.Context) {
	fieldID, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	quotes, err := h.service.UpdateRates(c.Request.Context(), fieldID, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"prices": quotes})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid field ID")
		return 0, false
	}
	return id, true
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrFieldNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Field not found")
	case errors.Is(err, ErrInvalidDuration):
		response.Error(c, http.StatusBadRequest, "INVALID_DURATION", err.Error())
	case errors.Is(err, ErrPriceNotConfigured):
		response.Error(c, http.StatusUnprocessableEntity, "PRICE_NOT_CONFIGURED", "No price is configured for this duration")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
