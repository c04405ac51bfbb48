// Package service implements the business logic of the series service.
package service

import "errors"

// Domain errors returned by the services. Handlers translate them into
// HTTP status codes.
var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrIncorrectPassword   = errors.New("old password is incorrect")
	ErrTooManyAttempts     = errors.New("too many failed login attempts")
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailTaken          = errors.New("email already registered")
	ErrForbidden           = errors.New("forbidden")
	ErrSeriesNotFound      = errors.New("series not found")
	ErrListNotFound        = errors.New("list not found")
	ErrEntryNotFound       = errors.New("series is not in the list")
	ErrSeriesAlreadyInList = errors.New("series is already in the list")
)
