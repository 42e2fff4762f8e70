package promotion

import (
	"errors"
	"net/http"
	"strconv"

	"soccerspot/internal/domain"
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
	rg.GET("/fields/:id/promotions", h.ListForField)
}

func (h *Handler) RegisterOwnerRoutes(rg *gin.RouterGroup) {
	rg.POST("/promotions", h.Create)
	rg.DELETE("/promotions/:id", h.Deactivate)
}

// Create handles POST /api/v1/owner/promotions
func (h *Handler) Create(c *gin.Context) {
	var req CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), domain.UserRole(c.GetString("role")), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"promotion": p})
}

// Deactivate handles DELETE /api/v1/owner/promotions/:id
func (h *Handler) Deactivate(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid promotion ID")
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), c.GetInt64("user_id"), domain.UserRole(c.GetString("role")), id); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deactivated": id})
}

// ListForField handles GET /api/v1/fields/:id/promotions
func (h *Handler) ListForField(c *gin.Context) {
	fieldID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || fieldID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid field ID")
		return
	}

	promos, err := h.service.ListActive(c.Request.Context(), fieldID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"promotions": promos})
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrFieldNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Field not found")
	case errors.Is(err, ErrPromotionNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Promotion not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't own this field")
	case errors.Is(err, ErrDuplicateCode):
		response.Error(c, http.StatusConflict, "DUPLICATE_CODE", "A promotion with this code already exists")
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
