package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("secret", "municipal-incidents", time.Hour)
	userID := uuid.New()

	token, err := svc.Issue(userID)
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestTokenService_RejectsWrongSecret(t *testing.T) {
	token, err := NewTokenService("secret", "municipal-incidents", time.Hour).Issue(uuid.New())
	require.NoError(t, err)

	_, err = NewTokenService("other", "municipal-incidents", time.Hour).Validate(token)
	assert.Error(t, err)
}

func TestTokenService_RejectsWrongIssuer(t *testing.T) {
	token, err := NewTokenService("secret", "someone-else", time.Hour).Issue(uuid.New())
	require.NoError(t, err)

	_, err = NewTokenService("secret", "municipal-incidents", time.Hour).Validate(token)
	assert.Error(t, err)
}

func TestTokenService_RejectsExpired(t *testing.T) {
	svc := NewTokenService("secret", "municipal-incidents", time.Minute)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.Validate(token)
	assert.Error(t, err)
}

func TestTokenService_RejectsGarbage(t *testing.T) {
	_, err := NewTokenService("secret", "municipal-incidents", time.Hour).Validate("not-a-token")
	assert.Error(t, err)
}
