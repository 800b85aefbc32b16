package api

import (
	"literary_voice/internal/ledger" // Ledger service
	"net/http"                       // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// CredentialsRequest is the body of signup and login
type CredentialsRequest struct {
	Email    string `json:"email"`    // Account email
	Password string `json:"password"` // Plain password
}

// SignupHandler registers a new account and returns its api key
func SignupHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CredentialsRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		acct, err := svc.Signup(c.Request.Context(), req.Email, req.Password) // Create the account
		if err != nil {
			respondError(c, err)
			return
		}
		// Return the new credential
		c.JSON(http.StatusCreated, gin.H{
			"api_key": acct.APIKey,                    // Bearer credential
			"credits": acct.Credits,                   // Starting balance
			"message": "Account created successfully", // Human readable message
		})
	}
}

// LoginHandler authenticates a user and returns the existing api key
func LoginHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CredentialsRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		acct, err := svc.Login(c.Request.Context(), req.Email, req.Password) // Verify credentials
		if err != nil {
			respondError(c, err)
			return
		}
		// Return the credential and balance
		c.JSON(http.StatusOK, gin.H{
			"api_key": acct.APIKey,         // Bearer credential
			"credits": acct.Credits,        // Current balance
			"message": "Login successful", // Human readable message
		})
	}
}
