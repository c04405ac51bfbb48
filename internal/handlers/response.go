// Package handlers contains HTTP request handlers for the series service.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Biriato/ProyectoWeb/internal/middleware"
	"github.com/Biriato/ProyectoWeb/internal/service"
	"github.com/Biriato/ProyectoWeb/internal/validation"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RespondError writes an {error} body with the given status.
func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// LogAndRespondError logs err with the request logger before responding.
func LogAndRespondError(c *gin.Context, status int, err error, message string) {
	middleware.Logger(c).Error(message, zap.Error(err), zap.Int("status", status))
	RespondError(c, status, message)
}

// RespondValidation writes the structured {errors:[{field,message}]} body.
func RespondValidation(c *gin.Context, errs validation.Errors) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
}

// bindJSON binds the request body and answers 400 on failure.
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		RespondValidation(c, validation.FromBindError(err))
		return false
	}
	return true
}

// idParam parses a positive integer path parameter.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		RespondValidation(c, validation.Errors{{Field: name, Message: "must be a positive integer"}})
		return 0, false
	}
	return id, true
}

// queryInt reads an optional integer query parameter.
func queryInt(c *gin.Context, name string, defaultValue int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		RespondValidation(c, validation.Errors{{Field: name, Message: "must be of type integer"}})
		return 0, false
	}
	return n, true
}

// respondServiceError maps service and validation errors onto HTTP statuses.
func respondServiceError(c *gin.Context, err error, fallback string) {
	var fieldErrs validation.Errors
	switch {
	case errors.As(err, &fieldErrs):
		RespondValidation(c, fieldErrs)
	case errors.Is(err, service.ErrEmailTaken):
		RespondError(c, http.StatusBadRequest, "email already registered")
	case errors.Is(err, service.ErrSeriesAlreadyInList):
		RespondError(c, http.StatusBadRequest, "series already in list")
	case errors.Is(err, service.ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, service.ErrIncorrectPassword):
		RespondError(c, http.StatusUnauthorized, "incorrect password")
	case errors.Is(err, service.ErrForbidden):
		RespondError(c, http.StatusForbidden, "access denied")
	case errors.Is(err, service.ErrUserNotFound):
		RespondError(c, http.StatusNotFound, "user not found")
	case errors.Is(err, service.ErrSeriesNotFound):
		RespondError(c, http.StatusNotFound, "series not found")
	case errors.Is(err, service.ErrListNotFound):
		RespondError(c, http.StatusNotFound, "list not found")
	case errors.Is(err, service.ErrEntryNotFound):
		RespondError(c, http.StatusNotFound, "series not in list")
	case errors.Is(err, service.ErrTooManyAttempts):
		RespondError(c, http.StatusTooManyRequests, "too many failed login attempts, try again later")
	default:
		LogAndRespondError(c, http.StatusInternalServerError, err, fallback)
	}
}

// callerClaims returns the authenticated caller or answers 401.
func callerClaims(c *gin.Context) (*service.Claims, bool) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}
	return claims, true
}
