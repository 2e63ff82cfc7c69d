package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	jwtsvc "minemarket/internal/pkg/jwt"
	"minemarket/internal/pkg/response"
)

// Auth verifies the bearer token and stores user_id and role on the context.
func Auth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			response.Fail(c, http.StatusUnauthorized, "You are not logged in")
			c.Abort()
			return
		}

		if !strings.HasPrefix(h, "Bearer ") {
			response.Fail(c, http.StatusUnauthorized, "Invalid Authorization header")
			c.Abort()
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			response.Fail(c, http.StatusUnauthorized, "Empty token")
			c.Abort()
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			response.Fail(c, http.StatusUnauthorized, "Invalid token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", string(claims.Role))

		c.Next()
	}
}
