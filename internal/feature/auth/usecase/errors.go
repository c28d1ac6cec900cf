// Package usecase implements the business logic for the auth feature.
package usecase

import (
	"fmt"

	"catalog_backend/internal/shared/apperr"
)

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = fmt.Errorf("user not found: %w", apperr.ErrNotFound)

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = fmt.Errorf("email already registered: %w", apperr.ErrConflict)

	// ErrInvalidCredentials is returned for an unknown email and for a wrong password alike.
	ErrInvalidCredentials = fmt.Errorf("incorrect email or password: %w", apperr.ErrUnauthorized)

	// ErrWeakPassword is returned when a password does not meet the minimum requirements.
	ErrWeakPassword = fmt.Errorf("password must be at least %d characters long: %w", minPasswordLength, apperr.ErrValidation)

	// ErrPasswordTooLong is returned when a password exceeds what bcrypt can hash.
	ErrPasswordTooLong = fmt.Errorf("password must be at most %d bytes long: %w", maxPasswordBytes, apperr.ErrValidation)
)
