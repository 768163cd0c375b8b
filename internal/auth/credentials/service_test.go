package credentials

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-auth/internal/user"
)

func TestRegisterAndVerify(t *testing.T) {
	ctx := context.Background()
	svc := NewService(user.NewMemoryStore(), nil)

	registered, err := svc.Register(ctx, "Bob@X.com", "pw123secret", "Bob")
	require.NoError(t, err)
	assert.Equal(t, "bob@x.com", registered.Email)
	assert.Equal(t, user.SourceLocal, registered.Source)
	assert.NotEmpty(t, registered.PasswordHash)
	assert.NotEqual(t, "pw123secret", registered.PasswordHash)

	verified, err := svc.Verify(ctx, "bob@x.com", "pw123secret")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, verified.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := NewService(user.NewMemoryStore(), nil)

	_, err := svc.Register(ctx, "bob@x.com", "pw123secret", "Bob")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "BOB@x.com", "otherpassword", "Bobby")
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestRegisterShortPassword(t *testing.T) {
	svc := NewService(user.NewMemoryStore(), nil)

	_, err := svc.Register(context.Background(), "bob@x.com", "pw", "Bob")
	assert.Error(t, err)
}

func TestVerifyWrongPassword(t *testing.T) {
	ctx := context.Background()
	svc := NewService(user.NewMemoryStore(), nil)

	_, err := svc.Register(ctx, "bob@x.com", "pw123secret", "Bob")
	require.NoError(t, err)

	_, err = svc.Verify(ctx, "bob@x.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyUnknownEmailSameError(t *testing.T) {
	svc := NewService(user.NewMemoryStore(), nil)

	// unknown email must be indistinguishable from a wrong password
	_, err := svc.Verify(context.Background(), "nobody@x.com", "whatever123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyRejectsNonLocalUser(t *testing.T) {
	ctx := context.Background()
	store := user.NewMemoryStore()
	require.NoError(t, store.Create(ctx, &user.User{
		ID:     "u1",
		Email:  "carol@x.com",
		Source: user.SourceGoogle,
	}))

	svc := NewService(store, func() time.Time { return time.Unix(1, 0) })

	_, err := svc.Verify(ctx, "carol@x.com", "whatever123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
