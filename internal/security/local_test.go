package security

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocalVerifier_RoundTrip(t *testing.T) {
	v := NewLocalVerifier("test-secret-0123456789abcdef0123456789")
	ctx := context.Background()

	token, err := v.GenerateToken("uid-1", "student@kiit.ac.in", time.Hour)
	assert.NoError(t, err)

	identity, err := v.Verify(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, "uid-1", identity.UID)
	assert.Equal(t, "student@kiit.ac.in", identity.Email)
}

func TestLocalVerifier_Expired(t *testing.T) {
	v := NewLocalVerifier("test-secret-0123456789abcdef0123456789")

	token, err := v.GenerateToken("uid-1", "student@kiit.ac.in", -time.Minute)
	assert.NoError(t, err)

	_, err = v.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestLocalVerifier_WrongSecret(t *testing.T) {
	signer := NewLocalVerifier("test-secret-0123456789abcdef0123456789")
	verifier := NewLocalVerifier("another-secret-entirely-0123456789ab")

	token, err := signer.GenerateToken("uid-1", "", time.Hour)
	assert.NoError(t, err)

	_, err = verifier.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLocalVerifier_Garbage(t *testing.T) {
	v := NewLocalVerifier("test-secret-0123456789abcdef0123456789")
	_, err := v.Verify(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
