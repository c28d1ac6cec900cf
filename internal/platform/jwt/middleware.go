package jwtmw

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"catalog_backend/internal/shared/apperr"
)

// Context keys set by AuthRequired.
const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
)

// unauthorizedBody is the single response for every rejection so callers learn nothing about the cause.
var unauthorizedBody = gin.H{"error": "could not validate credentials"}

// TokenVerifier returns the subject carried by a valid token.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// PrincipalResolver maps a token subject onto a stored user ID.
// An error wrapping apperr.ErrNotFound means the subject no longer names a user.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, subject string) (uint, error)
}

// AuthRequired returns a Gin middleware that admits only requests carrying a valid bearer token
// whose subject still resolves to a user.
func AuthRequired(tokens TokenVerifier, users PrincipalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		// auth-scheme is case-insensitive (RFC 7235)
		scheme, tokenStr, ok := strings.Cut(c.GetHeader("Authorization"), " ")
		tokenStr = strings.TrimSpace(tokenStr)
		if !ok || !strings.EqualFold(scheme, "Bearer") || tokenStr == "" {
			reject(c)
			return
		}

		subject, err := tokens.Verify(tokenStr)
		if err != nil {
			slog.Debug("bearer token rejected", "error", err, "remote_addr", c.ClientIP())
			reject(c)
			return
		}

		userID, err := users.ResolvePrincipal(c.Request.Context(), subject)
		if errors.Is(err, apperr.ErrNotFound) {
			slog.Warn("token subject did not resolve", "error", err, "remote_addr", c.ClientIP())
			reject(c)
			return
		}
		if err != nil {
			slog.Error("failed to resolve token subject", "error", err, "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "unexpected error: " + err.Error()})
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUserEmail, subject)
		c.Next()
	}
}

// CurrentUserID returns the user admitted by AuthRequired.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

func reject(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, unauthorizedBody)
}
