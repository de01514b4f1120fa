package http

import (
	"context"

	"krayaa-backend/internal/domain"
)

type contextKey string

const userContextKey contextKey = "auth-user"

// UserFromContext returns the authenticated user attached by the auth
// middleware, or nil for unauthenticated requests.
func UserFromContext(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userContextKey).(*domain.User)
	return user
}

// WithUser attaches the authenticated user to the request context.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}
