package security

import (
	"context"
	"errors"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Identity is a verified caller extracted from an authentication token.
type Identity struct {
	UID   string
	Email string
}

// TokenVerifier validates a bearer token and returns the identity it
// asserts. Implementations: Firebase ID tokens in production, locally
// signed HS256 tokens in dev and test.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}
