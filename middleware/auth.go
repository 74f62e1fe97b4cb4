package middleware

import (
	"net/http"
	"strings"

	"microcourses/helper"
	"microcourses/models"
	"microcourses/services"

	"github.com/gin-gonic/gin"
)

// UserResolver loads the live record behind a token.
type UserResolver interface {
	GetUserByID(id uint) (*models.User, error)
}

// AuthMiddleware validates the bearer token and re-resolves the user on every
// request, so role and application changes apply without a new token.
func AuthMiddleware(tokens *services.TokenManager, users UserResolver, h *helper.HTTPHelper) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			h.SendUnauthorizedError(c, "No token, authorization denied")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || strings.TrimSpace(tokenString) == "" {
			h.SendUnauthorizedError(c, "Bearer token required")
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(tokenString))
		if err != nil {
			h.SendUnauthorizedError(c, "Token is not valid")
			return
		}

		user, err := users.GetUserByID(claims.UserID)
		if err != nil {
			if h.GetStatusCode(err) == http.StatusNotFound {
				h.SendUnauthorizedError(c, "User no longer exists")
				return
			}
			h.SendInternalError(c, err)
			return
		}

		c.Set(helper.ContextUserKey, user)
		c.Set(helper.ContextUserIDKey, user.ID)
		c.Set(helper.ContextRoleKey, user.Role)

		c.Next()
	}
}

// RequireRole allows the request through only for the listed roles.
func RequireRole(h *helper.HTTPHelper, roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := helper.CurrentUser(c)
		if !ok {
			h.SendUnauthorizedError(c, "User role not found")
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		h.SendForbiddenError(c, "User role "+string(user.Role)+" is not authorized to access this route")
	}
}
