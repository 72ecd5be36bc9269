package model

import (
	"context"
	"time"
)

type basePathCtxKey struct{}

// ContextWithBasePath stores the base path prefix in context.
func ContextWithBasePath(ctx context.Context, basePath string) context.Context {
	return context.WithValue(ctx, basePathCtxKey{}, basePath)
}

// BasePathFromContext retrieves the base path from context (empty string if not set).
func BasePathFromContext(ctx context.Context) string {
	bp, _ := ctx.Value(basePathCtxKey{}).(string)
	return bp
}

type csrfCtxKey struct{}

// ContextWithCSRFToken stores the CSRF token in context.
func ContextWithCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, csrfCtxKey{}, token)
}

// CSRFTokenFromContext retrieves the CSRF token from context.
func CSRFTokenFromContext(ctx context.Context) string {
	t, _ := ctx.Value(csrfCtxKey{}).(string)
	return t
}

// SiteConfig holds runtime settings set via CLI flags.
type SiteConfig struct {
	Lang          string
	BasePath      string        // URL prefix for sub-path deployments (e.g. "/ru")
	SecureCookies bool          // Set Secure flag on cookies (disable for local dev)
	SessionTTL    time.Duration // Idle time before a visitor's state is dropped
	ContactDelay  time.Duration // Simulated send time of the contact form
	Metrics       bool          // Serve /metrics
}
