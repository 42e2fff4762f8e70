package payment

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"soccerspot/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service *Service
	log     *zap.Logger
}

func NewHandler(service *Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/init", h.InitPayment)
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/cinetpay/notify", h.Notify)
	// The gateway probes the notify URL with GET before using it.
	rg.GET("/payments/cinetpay/notify", func(c *gin.Context) { c.String(http.StatusOK, "OK") })
}

// InitPayment handles POST /api/v1/payments/init
func (h *Handler) InitPayment(c *gin.Context) {
	var req InitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	resp, err := h.service.InitPayment(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
		case errors.Is(err, ErrNothingToPay):
			response.Error(c, http.StatusConflict, "NOTHING_TO_PAY", "This booking is free")
		case errors.Is(err, ErrAlreadyPaid):
			response.Error(c, http.StatusConflict, "ALREADY_PAID", "This booking is already paid")
		case errors.Is(err, ErrGatewayUnavailable):
			response.Error(c, http.StatusServiceUnavailable, "PAYMENTS_DISABLED", "Online payment is not available")
		default:
			h.log.Error("payment init failed", zap.Int64("booking_id", req.BookingID), zap.Error(err))
			response.Error(c, http.StatusBadGateway, "GATEWAY_ERROR", "Could not reach the payment gateway")
		}
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// Notify handles POST /api/v1/payments/cinetpay/notify
func (h *Handler) Notify(c *gin.Context) {
	rawBody, _ := io.ReadAll(io.LimitReader(c.Request.Body, 64<<10))
	form, _ := url.ParseQuery(string(rawBody))

	txID := strings.TrimSpace(form.Get("cpm_trans_id"))
	if txID == "" {
		txID = strings.TrimSpace(c.Query("cpm_trans_id"))
	}
	if txID == "" {
		c.String(http.StatusBadRequest, "bad request")
		return
	}

	err := h.service.HandleNotification(c.Request.Context(), txID, string(rawBody))
	if err != nil {
		h.log.Warn("cinetpay notification failed", zap.String("transaction_id", txID), zap.Error(err))
		switch {
		case errors.Is(err, ErrPaymentNotFound):
			c.String(http.StatusNotFound, "not found")
		case errors.Is(err, ErrAmountMismatch):
			c.String(http.StatusForbidden, "forbidden")
		default:
			c.String(http.StatusInternalServerError, "internal error")
		}
		return
	}
	c.String(http.StatusOK, "OK")
}
