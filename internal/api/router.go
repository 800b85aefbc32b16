package api

import (
	"literary_voice/internal/ledger"     // Ledger service
	"literary_voice/internal/middleware" // Custom middleware
	"net/http"                           // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// ServiceName is reported by the health endpoint
const ServiceName = "Literary Voice API"

// HealthHandler reports liveness
func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": ServiceName})
	}
}

// RegisterRoutes wires every ledger endpoint onto r.
// Admin listing routes are only mounted when jwtSecret is set.
func RegisterRoutes(r *gin.Engine, svc *ledger.Service, jwtSecret string) {
	r.GET("/health", HealthHandler()) // Health endpoint

	// Auth routes
	r.POST("/signup", SignupHandler(svc)) // Registration endpoint
	r.POST("/login", LoginHandler(svc))   // Login endpoint

	// Credit routes (protected by API key)
	keyed := r.Group("/")
	keyed.Use(middleware.APIKeyMiddleware())
	keyed.GET("/balance", BalanceHandler(svc))      // Balance endpoint
	keyed.POST("/deduct", DeductHandler(svc))       // Deduction endpoint
	keyed.GET("/transactions", HistoryHandler(svc)) // Transaction history endpoint

	// Administrative grant authorised by the admin secret in the body
	r.POST("/add_credits", AddCreditsHandler(svc))

	if jwtSecret == "" {
		return
	}
	r.POST("/admin/token", AdminTokenHandler(svc, jwtSecret)) // Admin token endpoint
	// Admin routes (protected, admin only)
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(jwtSecret), middleware.AdminOnlyMiddleware())
	adminGroup.GET("/users", ListUsersHandler(svc))               // List users endpoint
	adminGroup.GET("/transactions", ListTransactionsHandler(svc)) // List transactions endpoint
}
