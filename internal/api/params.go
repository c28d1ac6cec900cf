package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	"catalog_backend/internal/shared/apperr"
)

const (
	// DefaultLimit is applied when the limit query parameter is absent.
	DefaultLimit = 10
	// MaxLimit caps the page size a client may request.
	MaxLimit = 100
)

// PathID binds a positive integer path parameter such as /books/:id.
func PathID(c *gin.Context, name string) (uint, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return 0, fmt.Errorf("invalid format for parameter %s: %v: %w", name, err, apperr.ErrValidation)
	}
	if id <= 0 {
		return 0, fmt.Errorf("parameter %s must be positive: %w", name, apperr.ErrValidation)
	}
	return uint(id), nil
}

// ListWindow binds the optional skip and limit query parameters.
// Missing values fall back to 0 and DefaultLimit, limit is capped at MaxLimit.
func ListWindow(c *gin.Context) (Pagination, error) {
	var skip, limit *int
	query := c.Request.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "skip", query, &skip); err != nil {
		return Pagination{}, fmt.Errorf("invalid format for parameter skip: %v: %w", err, apperr.ErrValidation)
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", query, &limit); err != nil {
		return Pagination{}, fmt.Errorf("invalid format for parameter limit: %v: %w", err, apperr.ErrValidation)
	}

	p := Pagination{Skip: 0, Limit: DefaultLimit}
	if skip != nil {
		p.Skip = *skip
	}
	if limit != nil {
		p.Limit = *limit
	}
	if p.Skip < 0 || p.Limit < 0 {
		return Pagination{}, fmt.Errorf("skip and limit must not be negative: %w", apperr.ErrValidation)
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p, nil
}

// WriteError maps err onto its HTTP status and writes the error body.
// Unexpected failures carry the underlying message for diagnostics.
func WriteError(c *gin.Context, err error) {
	msg := err.Error()
	if apperr.IsUnexpected(err) {
		msg = "unexpected error: " + msg
	}
	c.AbortWithStatusJSON(apperr.StatusCode(err), ErrorResponse{Error: msg})
}
