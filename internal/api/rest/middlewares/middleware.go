package middlewares

import (
	"context"
	"net/http"
)

type Middleware interface {
	Handle(next http.Handler) http.Handler
}

type contextKey int

const (
	accountIDKey contextKey = iota
	requestIDKey
)

// WithAccountID returns a copy of ctx carrying the authenticated account ID.
func WithAccountID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, accountIDKey, id)
}

// GetAccountIDFromContext returns the account ID set by the authorization middleware.
func GetAccountIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(accountIDKey).(int64)
	return id, ok
}

// GetRequestIDFromContext returns the request ID set by the request logger.
func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
