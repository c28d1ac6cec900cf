package usecase

import (
	"fmt"

	"catalog_backend/internal/shared/apperr"
)

// ErrBookNotFound is returned when no book has the requested ID.
var ErrBookNotFound = fmt.Errorf("book not found: %w", apperr.ErrNotFound)
