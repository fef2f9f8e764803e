// Package api exposes the application operations as a JSON HTTP API.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/info-mnml/Otokogi/internal/auth"
	"github.com/info-mnml/Otokogi/internal/service"
)

// fail writes the JSON error response for a service failure, mapping the
// typed failures to HTTP status codes.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrInvalidArgument),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrEmailExists):
		status = http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrTransactionFailed):
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// badRequest writes a 400 for malformed request bodies.
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
