// Package context provides request-scoped values extraction.
package context

import (
	"context"
)

// ClientContext describes the anonymous visitor behind a request.
// The portal has no accounts; this is only used to attribute submissions in logs.
type ClientContext struct {
	IP        string
	UserAgent string
	Referer   string
}

type clientContextKey struct{}

// WithClient adds ClientContext to context.
func WithClient(ctx context.Context, client *ClientContext) context.Context {
	return context.WithValue(ctx, clientContextKey{}, client)
}

// GetClient returns ClientContext from context.
func GetClient(ctx context.Context) *ClientContext {
	if v, ok := ctx.Value(clientContextKey{}).(*ClientContext); ok {
		return v
	}
	return nil
}

// GetClientIP returns the visitor IP from context or empty string.
func GetClientIP(ctx context.Context) string {
	if c := GetClient(ctx); c != nil {
		return c.IP
	}
	return ""
}
