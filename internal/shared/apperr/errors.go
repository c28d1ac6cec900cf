// Package apperr defines the error kinds shared by every feature and how they map to HTTP status codes.
package apperr

import (
	"errors"
	"net/http"
)

// Error kinds. Feature errors wrap exactly one of these so the transport layer can classify them
// with errors.Is without knowing the feature.
var (
	// ErrValidation marks malformed or semantically invalid input.
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks an absent entity (get/update/delete/upload target).
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a duplicate unique field or a state that forbids the operation.
	ErrConflict = errors.New("conflict")
	// ErrUnauthorized marks missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrStorage marks a failure writing uploaded content.
	ErrStorage = errors.New("storage failure")
)

// kindStatus is checked in order; the first kind matched by errors.Is wins.
var kindStatus = []struct {
	kind   error
	status int
}{
	{ErrValidation, http.StatusBadRequest},
	{ErrNotFound, http.StatusNotFound},
	{ErrConflict, http.StatusConflict},
	{ErrUnauthorized, http.StatusUnauthorized},
	{ErrStorage, http.StatusInternalServerError},
}

// StatusCode returns the HTTP status for err. Errors of no known kind are unexpected and map to 500.
func StatusCode(err error) int {
	for _, ks := range kindStatus {
		if errors.Is(err, ks.kind) {
			return ks.status
		}
	}
	return http.StatusInternalServerError
}

// IsUnexpected reports whether err belongs to none of the known kinds.
func IsUnexpected(err error) bool {
	for _, ks := range kindStatus {
		if errors.Is(err, ks.kind) {
			return false
		}
	}
	return true
}
