package middleware

import (
	"literary_voice/internal/utils" // Admin token parsing
	"net/http"                      // HTTP status codes
	"strings"                       // Header parsing

	"github.com/gin-gonic/gin" // Gin web framework
	"github.com/sirupsen/logrus"
)

// RoleContextKey is where the token's role is stored on the gin context
const RoleContextKey = "role"

// bearerToken extracts the token from an "Authorization: Bearer <token>" header
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false // Other schemes are not accepted
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// JWTAuthMiddleware accepts admin tokens signed with secret and records their role
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		claims, err := utils.ParseJWT(token, secret) // Signature, algorithm and expiry checks
		if err != nil {
			logrus.WithError(err).WithField("path", c.FullPath()).Warn("rejected admin token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set(RoleContextKey, claims.Role)
		c.Next()
	}
}
