// Package handlers contains the gin handlers for both presentation surfaces:
// the staff admin console and the customer client app. Every response uses
// the same JSON envelope: {"status": "success"|"error", "message"?, "data"?}.
package handlers

import (
	"errors"
	"net/http"

	"github.com/fidelease/fidelease-backend/internal/services"
	"github.com/gin-gonic/gin"
)

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"status": "success", "data": data})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"status": "success", "message": message})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"status": "error", "message": message})
}

// respondDomainError maps service errors onto HTTP statuses. Unexpected
// errors are not leaked to clients.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrGiftNotFound),
		errors.Is(err, services.ErrFactureNotFound),
		errors.Is(err, services.ErrCodeNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInsufficientPoints):
		respondError(c, http.StatusBadRequest, err.Error())
	case services.IsValidation(err):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrEmailTaken):
		respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}
