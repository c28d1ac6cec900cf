package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog_backend/internal/api"
	"catalog_backend/internal/shared/apperr"
)

// MaxUploadBytes limits the whole multipart request body.
const MaxUploadBytes = 10 << 20

const fileField = "file"

var errMissingFile = fmt.Errorf("multipart field %q is required: %w", fileField, apperr.ErrValidation)

// openFilePart returns the "file" part of a multipart request without buffering it.
// The caller owns the returned stream.
func openFilePart(c *gin.Context) (string, io.ReadCloser, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadBytes)
	mr, err := c.Request.MultipartReader()
	if err != nil {
		return "", nil, fmt.Errorf("invalid multipart request: %v: %w", err, apperr.ErrValidation)
	}
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return "", nil, errMissingFile
		}
		if err != nil {
			return "", nil, fmt.Errorf("invalid multipart request: %w: %w", err, apperr.ErrValidation)
		}
		if part.FormName() == fileField {
			return part.FileName(), part, nil
		}
		_ = part.Close()
	}
}

// writeUploadError maps an oversized body to 413 and everything else through api.WriteError.
func writeUploadError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		slog.Warn("upload too large", "limit", tooLarge.Limit, "remote_addr", c.ClientIP())
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, api.ErrorResponse{
			Error: fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit),
		})
		return
	}
	if apperr.StatusCode(err) >= http.StatusInternalServerError {
		slog.Error("upload failed", "error", err, "remote_addr", c.ClientIP())
	}
	api.WriteError(c, err)
}
