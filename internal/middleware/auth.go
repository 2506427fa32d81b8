package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kashala/atm-finder-go/internal/service"
	"github.com/kashala/atm-finder-go/pkg/response"
)

// UserIDKey is the gin context key carrying the authenticated user id.
const UserIDKey = "userID"

// Auth validates the Authorization bearer token and stores the user id in
// the request context.
func Auth(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "Missing Authorization header")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		userID, err := auth.ParseToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// CurrentUserID pulls the authenticated user id out of the context.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
