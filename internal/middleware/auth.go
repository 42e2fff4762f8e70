package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"soccerspot/internal/domain"
	"soccerspot/internal/pkg/jwt"
	"soccerspot/internal/pkg/response"
	"soccerspot/internal/repository"

	"github.com/gin-gonic/gin"
)

// JWTAuth validates the bearer token and stores user_id and role in the context.
func JWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			response.Abort(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Missing Authorization header")
			return
		}

		if !strings.HasPrefix(h, "Bearer ") {
			response.Abort(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be Bearer token")
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		claims, err := jwtService.ValidateToken(tokenStr)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

type FieldReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Field, error)
}

// OwnershipChecker verifies that the caller owns the field in URL param "id".
type OwnershipChecker struct {
	fields FieldReader
}

func NewOwnershipChecker(fields FieldReader) *OwnershipChecker {
	return &OwnershipChecker{fields: fields}
}

func (oc *OwnershipChecker) CheckFieldOwnership() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt64("user_id")
		if userID == 0 {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		}

		fieldID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || fieldID <= 0 {
			response.Abort(c, http.StatusBadRequest, "INVALID_ID", "Invalid field ID")
			return
		}

		field, err := oc.fields.GetByID(c.Request.Context(), fieldID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				response.Abort(c, http.StatusNotFound, "NOT_FOUND", "Field not found")
				return
			}
			response.Abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
			return
		}

		if field.OwnerID != userID && c.GetString("role") != string(domain.RoleAdmin) {
			response.Abort(c, http.StatusForbidden, "FORBIDDEN", "You don't own this field")
			return
		}

		c.Next()
	}
}
