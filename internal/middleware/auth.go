package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"github.com/nirban/hms-api/internal/handler"
	"github.com/nirban/hms-api/internal/model"
	authService "github.com/nirban/hms-api/internal/service/auth"
)

const contextUserKey = "currentUser"

type AuthMiddleware struct {
	authSvc   *authService.Service
	userCache *cache.Cache
}

func NewAuthMiddleware(authSvc *authService.Service) *AuthMiddleware {
	// Short TTL: verification flips must take effect quickly, so the
	// cache only absorbs bursts of requests from the same session.
	return &AuthMiddleware{
		authSvc:   authSvc,
		userCache: cache.New(30*time.Second, time.Minute),
	}
}

// Authenticate verifies the bearer token and sets the current user in
// the request context.
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
		token := parts[1]

		if cached, found := m.userCache.Get(token); found {
			c.Set(contextUserKey, cached.(*model.User))
			c.Next()
			return
		}

		user, err := m.authSvc.UserFromToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid token"))
			c.Abort()
			return
		}

		m.userCache.Set(token, user, cache.DefaultExpiration)
		c.Set(contextUserKey, user)
		c.Next()
	}
}

// RequireRole gates a route group to one role.
func (m *AuthMiddleware) RequireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
			c.Abort()
			return
		}
		if user.Role != role {
			c.JSON(http.StatusForbidden, handler.NewErrorResponse("permission denied"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireVerified rejects fulfiller-role users an admin has not yet
// approved.
func (m *AuthMiddleware) RequireVerified() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
			c.Abort()
			return
		}
		if user.Role.RequiresVerification() && !user.IsVerified {
			c.JSON(http.StatusForbidden, handler.NewErrorResponse(
				"Access denied. Your account is not yet verified by an admin."))
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser pulls the authenticated user out of the gin context.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	value, exists := c.Get(contextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*model.User)
	return user, ok
}
