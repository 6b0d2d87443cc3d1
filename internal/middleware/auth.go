package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campfirehq/youthorg-api/internal/handler"
	authService "github.com/campfirehq/youthorg-api/internal/service/auth"
)

// Context keys set by Authenticate.
const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
	ContextUserRole  = "userRole"
)

type AuthMiddleware struct {
	authSvc *authService.Service
}

func NewAuthMiddleware(authSvc *authService.Service) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// Authenticate verifies the JWT bearer token and sets caller identity in the
// request context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("missing authorization header"))
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid authorization format"))
			c.Abort()
			return
		}

		claims, err := m.authSvc.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid token"))
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID.String())
		c.Set(ContextUserEmail, claims.Email)
		c.Set(ContextUserRole, claims.Role)
		c.Next()
	}
}

// RequireRole gates a route group to the listed roles. It assumes
// Authenticate already ran.
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		if _, ok := allowed[role]; !ok {
			c.JSON(http.StatusForbidden, handler.NewErrorResponse("permission denied"))
			c.Abort()
			return
		}
		c.Next()
	}
}
