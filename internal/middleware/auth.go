package middleware

import (
	"net/http"
	"strings"

	"userbase-be/internal/jwt"

	"github.com/gin-gonic/gin"
)

// UserIDKey is the gin context key under which the authenticated user's ID
// is stored.
const UserIDKey = "user_id"

// AuthMiddleware returns a gin middleware that requires a valid bearer
// token. A missing token responds 401; a token that is present but fails
// verification (bad signature, malformed, expired) responds 403.
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header required",
			})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header must be of the form 'Bearer <token>'",
			})
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}
