package api

import (
	"fmt"                                // Message formatting
	"literary_voice/internal/ledger"     // Ledger service
	"literary_voice/internal/middleware" // API key context
	"net/http"                           // HTTP status codes
	"strconv"                            // String conversion

	"github.com/gin-gonic/gin" // Gin web framework
)

// DeductRequest represents a deduction request
type DeductRequest struct {
	Amount int    `json:"amount"` // Credits to spend
	Action string `json:"action"` // Action label
}

// AddCreditsRequest represents an administrative credit grant
type AddCreditsRequest struct {
	Email    string `json:"email"`     // Target account
	Amount   int    `json:"amount"`    // Credits to add
	AdminKey string `json:"admin_key"` // Shared admin secret
}

// BalanceHandler returns the caller's credit balance
func BalanceHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetString(middleware.APIKeyContextKey)        // Get API key from context
		credits, err := svc.Balance(c.Request.Context(), apiKey) // Look up balance
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"credits": credits}) // Return balance
	}
}

// DeductHandler spends credits on behalf of the caller
func DeductHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetString(middleware.APIKeyContextKey) // Get API key from context
		var req DeductRequest                              // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		credits, err := svc.Deduct(c.Request.Context(), apiKey, req.Amount, req.Action) // Atomic deduction
		if err != nil {
			respondError(c, err)
			return
		}
		// Return the new balance
		c.JSON(http.StatusOK, gin.H{
			"credits": credits,                                        // New balance
			"message": fmt.Sprintf("%d credits deducted", req.Amount), // Human readable message
		})
	}
}

// AddCreditsHandler grants credits to an account, authorised by the admin secret
func AddCreditsHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddCreditsRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		credits, err := svc.AddCredits(c.Request.Context(), req.Email, req.Amount, req.AdminKey) // Grant credits
		if err != nil {
			respondError(c, err)
			return
		}
		// Return the new balance
		c.JSON(http.StatusOK, gin.H{
			"credits": credits,                                      // New balance
			"message": fmt.Sprintf("%d credits added", req.Amount), // Human readable message
		})
	}
}

// HistoryHandler returns the caller's transactions, newest first
func HistoryHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetString(middleware.APIKeyContextKey) // Get API key from context
		page, pageSize := pageParams(c)                    // Read pagination
		out, err := svc.History(c.Request.Context(), apiKey, page, pageSize)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out) // Return transaction page
	}
}

// pageParams reads page and page_size, invalid values fall back to defaults
func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))                                       // Page number
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(ledger.DefaultPageSize))) // Page size
	return ledger.ClampPage(page, pageSize)
}
