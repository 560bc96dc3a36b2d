package middleware

import (
	"net/http"
	"strings"

	"clinic-backend/internal/auth"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the JWT and stores the caller's identity on the
// request context. The token comes from the Authorization header, or from the
// "token" query parameter for websocket clients that cannot set headers.
func AuthMiddleware(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""

		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			tokenString = strings.TrimPrefix(header, "Bearer ")
		} else {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing authorization token"})
			return
		}

		claims, err := jwtManager.VerifyToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Next()
	}
}

func requireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	}
}

func ClinicOnly() gin.HandlerFunc {
	return requireRoles("clinic")
}

func ClinicOrAdmin() gin.HandlerFunc {
	return requireRoles("clinic", "admin")
}

func AdminOnly() gin.HandlerFunc {
	return requireRoles("admin")
}
