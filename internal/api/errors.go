package api

import (
	"errors"                         // Error inspection
	"literary_voice/internal/ledger" // Ledger errors
	"net/http"                       // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// statusFor maps ledger error kinds to HTTP status codes
func statusFor(kind ledger.Kind) int {
	switch kind {
	case ledger.KindValidation, ledger.KindConflict:
		return http.StatusBadRequest // Duplicate signup keeps the 400 contract
	case ledger.KindAuth:
		return http.StatusUnauthorized
	case ledger.KindInsufficientCredits:
		return http.StatusPaymentRequired
	case ledger.KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// respondError writes the error body for err, hiding storage failures
func respondError(c *gin.Context, err error) {
	var lerr *ledger.Error
	if errors.As(err, &lerr) {
		c.JSON(statusFor(lerr.Kind), gin.H{"error": lerr.Message})
		return
	}
	// Log unexpected failures with request context
	logrus.WithFields(logrus.Fields{
		"path":  c.FullPath(), // Route
		"error": err.Error(),  // Error message
	}).Error("Request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
