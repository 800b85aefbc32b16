package api

import (
	"literary_voice/internal/ledger" // Ledger service
	"literary_voice/internal/utils"  // Utility functions
	"net/http"                       // HTTP status codes
	"time"                           // Date filter parsing

	"github.com/gin-gonic/gin" // Gin web framework
)

// AdminTokenRequest exchanges the admin secret for a bearer token
type AdminTokenRequest struct {
	AdminKey string `json:"admin_key"` // Shared admin secret
}

// AdminTokenHandler issues a short-lived admin JWT
func AdminTokenHandler(svc *ledger.Service, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdminTokenRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Verify the shared secret
		if err := svc.CheckAdminKey(req.AdminKey); err != nil {
			respondError(c, err)
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(utils.RoleAdmin, jwtSecret, utils.AdminTokenTTL)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token}) // Return the token
	}
}

// ListUsersHandler returns all accounts with their balances
func ListUsersHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, pageSize := pageParams(c) // Read pagination
		out, err := svc.ListUsers(c.Request.Context(), page, pageSize)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out) // Return the page
	}
}

// ListTransactionsHandler returns all transactions, with optional filtering by email, action, or date
func ListTransactionsHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, pageSize := pageParams(c) // Read pagination
		from, err := parseTimeBound(c.Query("from"), false)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date"})
			return
		}
		to, err := parseTimeBound(c.Query("to"), true)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date"})
			return
		}
		filter := ledger.TransactionFilter{
			Email:    c.Query("email"),  // Filter by account
			Action:   c.Query("action"), // Filter by action label
			From:     from,              // Filter by start time
			To:       to,                // Filter by end time
			Page:     page,              // Current page
			PageSize: pageSize,          // Page size
		}
		out, err := svc.ListTransactions(c.Request.Context(), filter)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out) // Return the page
	}
}

// parseTimeBound accepts RFC3339 or a plain UTC date. A plain date used as
// an upper bound covers the whole day. Empty input means no bound.
func parseTimeBound(value string, upper bool) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	day, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, err
	}
	if upper {
		day = day.AddDate(0, 0, 1).Add(-time.Nanosecond) // Last instant of that day
	}
	return day, nil
}
