// Package hctx carries the authenticated username on request contexts.
package hctx

import "context"

type contextKey int

const usernameKey contextKey = iota

// Manager implements model.ContextManager for HTTP requests.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// WithUsername returns a child context carrying the authenticated username.
func (m *Manager) WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey, username)
}

// Username retrieves the authenticated username from the context.
func (m *Manager) Username(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(usernameKey).(string)
	if !ok || username == "" {
		return "", false
	}
	return username, true
}
