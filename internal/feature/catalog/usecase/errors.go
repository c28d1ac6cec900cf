package usecase

import (
	"fmt"

	"catalog_backend/internal/shared/apperr"
)

var (
	// ErrCategoryNotFound is returned when no category has the requested ID.
	ErrCategoryNotFound = fmt.Errorf("category not found: %w", apperr.ErrNotFound)
	// ErrCategoryNameTaken is returned when another category already uses the name.
	ErrCategoryNameTaken = fmt.Errorf("category name already exists: %w", apperr.ErrConflict)
	// ErrParentNotFound is returned when parent_id names no category.
	ErrParentNotFound = fmt.Errorf("parent category does not exist: %w", apperr.ErrValidation)
	// ErrCategoryCycle is returned when a write would make a category its own ancestor.
	ErrCategoryCycle = fmt.Errorf("category cannot be its own ancestor: %w", apperr.ErrValidation)
	// ErrCategoryTooDeep is returned when the ancestor chain is longer than maxCategoryDepth.
	ErrCategoryTooDeep = fmt.Errorf("category tree is deeper than %d levels: %w", maxCategoryDepth, apperr.ErrValidation)
	// ErrCategoryHasChildren is returned when deleting a category that still has children.
	ErrCategoryHasChildren = fmt.Errorf("category still has child categories: %w", apperr.ErrConflict)

	// ErrProductNotFound is returned when no product has the requested ID.
	ErrProductNotFound = fmt.Errorf("product not found: %w", apperr.ErrNotFound)
	// ErrProductNameTaken is returned when another product already uses the name.
	ErrProductNameTaken = fmt.Errorf("product name already exists: %w", apperr.ErrConflict)
	// ErrInvalidPrice is returned for a price that does not fit decimal(10,2) or is negative.
	ErrInvalidPrice = fmt.Errorf("price must be between 0 and 99999999.99 with at most 2 decimal places: %w", apperr.ErrValidation)
	// ErrInvalidStock is returned for a negative stock quantity.
	ErrInvalidStock = fmt.Errorf("stock_quantity must not be negative: %w", apperr.ErrValidation)
	// ErrInvalidPagination is returned for a negative skip or limit.
	ErrInvalidPagination = fmt.Errorf("skip and limit must not be negative: %w", apperr.ErrValidation)

	// ErrMissingFilename is returned when an upload carries no file name.
	ErrMissingFilename = fmt.Errorf("uploaded file has no name: %w", apperr.ErrValidation)
	// ErrUnsupportedImage is returned when the file extension is not an accepted image type.
	ErrUnsupportedImage = fmt.Errorf("unsupported image type: %w", apperr.ErrValidation)
)
