package handlers

import (
	"errors"
	"net/http"

	"mocktest-service/internal/models"

	"github.com/gin-gonic/gin"
)

// userID returns the caller identity forwarded by the gateway.
func userID(c *gin.Context) string {
	return c.GetHeader("X-User-ID")
}

// userName returns the optional display name forwarded by the gateway.
func userName(c *gin.Context) string {
	return c.GetHeader("X-User-Name")
}

// respondError maps the domain error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, models.ErrInvalidState), errors.Is(err, models.ErrValidation):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
