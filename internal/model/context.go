package model

import "context"

// ContextManager sets and retrieves the authenticated username on a request
// context. Every store operation receives the identity explicitly; nothing
// reads an ambient global.
type ContextManager interface {
	WithUsername(ctx context.Context, username string) context.Context
	Username(ctx context.Context) (string, bool)
}
