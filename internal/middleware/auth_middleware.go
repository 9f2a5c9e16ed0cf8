package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"vehicle-rental/internal/models"
	"vehicle-rental/internal/services"
	"vehicle-rental/internal/utils"
	"vehicle-rental/pkg/logger"
)

// TokenValidator resolves an access token to the caller.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*services.Principal, error)
}

// AuthRequired middleware validates the bearer token and sets user context. Browsers cannot set
// headers on websocket upgrades, so a token query parameter is accepted as well.
func AuthRequired(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization header required")
			c.Abort()
			return
		}

		principal, err := validator.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "INVALID_TOKEN", utils.ErrInvalidToken)
			c.Abort()
			return
		}

		c.Set(utils.ContextUserID, principal.UserID)
		c.Set(utils.ContextUserRole, string(principal.Role))
		c.Request = c.Request.WithContext(logger.ContextWithUserID(c.Request.Context(), principal.UserID))

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		token := strings.TrimPrefix(header, "Bearer ")
		if token == header {
			return ""
		}
		return strings.TrimSpace(token)
	}
	return c.Query("token")
}

// ProviderRequired middleware ensures user is a provider
func ProviderRequired() gin.HandlerFunc {
	return requireRole(models.UserRoleProvider)
}

// CustomerRequired middleware ensures user is a customer
func CustomerRequired() gin.HandlerFunc {
	return requireRole(models.UserRoleCustomer)
}

func requireRole(role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := CurrentPrincipal(c)
		if !ok {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		if principal.Role != role {
			utils.ForbiddenResponse(c, "Only a "+string(role)+" can do this")
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentPrincipal returns the caller set by AuthRequired.
func CurrentPrincipal(c *gin.Context) (services.Principal, bool) {
	rawID, ok := c.Get(utils.ContextUserID)
	if !ok {
		return services.Principal{}, false
	}
	userID, ok := rawID.(uint64)
	if !ok {
		return services.Principal{}, false
	}
	role := c.GetString(utils.ContextUserRole)
	return services.Principal{UserID: userID, Role: models.UserRole(role)}, true
}
