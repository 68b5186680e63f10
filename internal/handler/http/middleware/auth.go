package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
	"github.com/mikiasgoitom/Learnify/internal/handler/http/dto"
	"github.com/mikiasgoitom/Learnify/internal/usecase"
	usecasecontract "github.com/mikiasgoitom/Learnify/internal/usecase/contract"
)

// Context keys set by AuthMiddleWare.
const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// AuthMiddleWare validates the bearer access token and loads the user.
// Deactivated accounts are rejected even with a valid token.
func AuthMiddleWare(userUsecase usecasecontract.IUserUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Authorization header is missing or malformed"})
			return
		}

		user, err := userUsecase.Authenticate(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			if errors.Is(err, usecase.ErrAccountInactive) {
				c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Error: "Account is deactivated"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Invalid or expired token"})
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextUserRole, string(user.Role))
		c.Next()
	}
}

// RequireRole lets the request through only for the listed roles. It must
// run after AuthMiddleWare.
func RequireRole(roles ...entity.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := entity.UserRole(c.GetString(ContextUserRole))
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Error: "You do not have permission to perform this action"})
	}
}
