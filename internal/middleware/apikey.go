package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"github.com/gin-gonic/gin" // Gin web framework
)

// APIKeyHeader carries the caller's bearer credential
const APIKeyHeader = "X-API-Key"

// APIKeyContextKey is where the key is stored on the gin context
const APIKeyContextKey = "apiKey"

// APIKeyMiddleware requires the X-API-Key header; the ledger validates the key itself
func APIKeyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := strings.TrimSpace(c.GetHeader(APIKeyHeader)) // Get API key header
		// Check if the header is present
		if apiKey == "" {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API key required"})
			return
		}
		c.Set(APIKeyContextKey, apiKey) // Store key in context
		c.Next()                        // Proceed to the next handler
	}
}
