package strategy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"library-auth/internal/auth"
	"library-auth/internal/auth/credentials"
	"library-auth/internal/auth/mapper"
	"library-auth/internal/auth/resolver"
	"library-auth/internal/user"
)

func newRegistry(t *testing.T) (*Registry, *credentials.Service) {
	t.Helper()

	store := user.NewMemoryStore()
	creds := credentials.NewService(store, nil)
	res := resolver.New(store, nil)
	log := zap.NewNop()

	reg := NewRegistry(
		NewLocal(creds, res),
		NewProvider("google", mapper.Google{}, res, log),
		NewProvider("kakao", mapper.Kakao{}, res, log),
	)
	return reg, creds
}

func TestRegistryUnknownStrategy(t *testing.T) {
	reg, _ := newRegistry(t)

	_, err := reg.Authenticate(context.Background(), "github", Input{})
	assert.ErrorIs(t, err, auth.ErrUnknownStrategy)
}

func TestLocalStrategyAuthenticates(t *testing.T) {
	ctx := context.Background()
	reg, creds := newRegistry(t)

	_, err := creds.Register(ctx, "bob@x.com", "pw123secret", "Bob")
	require.NoError(t, err)

	out, err := reg.Authenticate(ctx, "local", Input{
		Email:    "bob@x.com",
		Password: "pw123secret",
	})
	require.NoError(t, err)
	require.True(t, out.IsAuthenticated())
	assert.Equal(t, user.SourceLocal, out.User.Source)
	assert.Equal(t, "bob@x.com", out.User.Email)
}

func TestLocalStrategyRejectsWrongPassword(t *testing.T) {
	ctx := context.Background()
	reg, creds := newRegistry(t)

	_, err := creds.Register(ctx, "bob@x.com", "pw123secret", "Bob")
	require.NoError(t, err)

	out, err := reg.Authenticate(ctx, "local", Input{
		Email:    "bob@x.com",
		Password: "nope-nope-nope",
	})
	require.NoError(t, err)
	assert.True(t, out.IsRejected())
	assert.Equal(t, auth.ReasonInvalidCredentials, out.Reason)
}

func TestProviderStrategyRejectsMalformedPayload(t *testing.T) {
	reg, _ := newRegistry(t)

	out, err := reg.Authenticate(context.Background(), "google", Input{
		RawProfile: map[string]any{"email": "bob@x.com"}, // no sub
	})
	require.NoError(t, err)
	assert.True(t, out.IsRejected())
	assert.Equal(t, auth.ReasonMalformedProfile, out.Reason)
}

func TestLocalThenGoogleConflicts(t *testing.T) {
	ctx := context.Background()
	reg, creds := newRegistry(t)

	_, err := creds.Register(ctx, "bob@x.com", "pw123secret", "Bob")
	require.NoError(t, err)

	out, err := reg.Authenticate(ctx, "google", Input{
		RawProfile: map[string]any{
			"sub":   "108123456789",
			"email": "bob@x.com",
		},
	})
	require.NoError(t, err)
	require.True(t, out.IsConflict())
	assert.Equal(t, user.SourceLocal, out.Conflict.Existing)
	assert.Equal(t, user.SourceGoogle, out.Conflict.Attempted)
}
