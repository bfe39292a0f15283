package devauth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UNO-CSCI4830/SureSight-sub001/internal/ports"
)

func TestNewProvider_RequiresIdentityFields(t *testing.T) {
	t.Parallel()
	_, err := NewProvider(Config{Email: "dev@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AuthID")

	_, err = NewProvider(Config{AuthID: "dev-user"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Email")
}

func TestProvider_Begin(t *testing.T) {
	t.Parallel()
	provider, err := NewProvider(Config{AuthID: "dev-user", Email: "dev@example.com"})
	require.NoError(t, err)

	authURL, state, nonce, err := provider.Begin(context.Background(), ports.BeginInput{RedirectURL: "/dashboard"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(authURL, "/auth/callback?code=dev&state="), "auth URL should target the local callback, got %q", authURL)
	assert.Len(t, state, 24)
	assert.Len(t, nonce, 24)
	assert.Contains(t, authURL, state)

	// Each flow gets fresh state.
	_, state2, _, err := provider.Begin(context.Background(), ports.BeginInput{RedirectURL: "/dashboard"})
	require.NoError(t, err)
	assert.NotEqual(t, state, state2)
}

func TestProvider_Exchange(t *testing.T) {
	t.Parallel()
	provider, err := NewProvider(Config{
		AuthID: "dev-user",
		Email:  "dev@example.com",
		Groups: []string{"homeowners", "suresight-admins"},
	})
	require.NoError(t, err)

	identity, err := provider.Exchange(context.Background(), ports.ExchangeInput{Code: "dev"})
	require.NoError(t, err)

	assert.Equal(t, "dev-user", identity.AuthID)
	assert.Equal(t, "dev@example.com", identity.Email)
	assert.Equal(t, []string{"homeowners", "suresight-admins"}, identity.Groups)
	require.NotNil(t, identity.EmailConfirmedAt)
	assert.True(t, identity.ExpiresAt.After(time.Now()), "dev identity should not be pre-expired")
}

func TestProvider_ExchangeRefreshesNearExpiry(t *testing.T) {
	t.Parallel()
	provider, err := NewProvider(Config{
		AuthID:          "dev-user",
		Email:           "dev@example.com",
		SessionDuration: time.Hour,
	})
	require.NoError(t, err)

	provider.identity.ExpiresAt = time.Now().Add(time.Minute)

	identity, err := provider.Exchange(context.Background(), ports.ExchangeInput{Code: "dev"})
	require.NoError(t, err)
	assert.Greater(t, time.Until(identity.ExpiresAt), 30*time.Minute)
}
