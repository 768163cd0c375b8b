package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-auth/internal/user"
)

func newTestCodec(t *testing.T) (*Codec, *user.MemoryStore) {
	t.Helper()
	users := user.NewMemoryStore()
	return NewCodec(NewMemoryStore(), users, time.Hour), users
}

func seedUser(t *testing.T, users *user.MemoryStore) *user.User {
	t.Helper()
	u := &user.User{
		ID:          "u1",
		Email:       "bob@x.com",
		DisplayName: "Bob",
		Source:      user.SourceLocal,
	}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func TestMintRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	codec, users := newTestCodec(t)
	u := seedUser(t, users)

	token, err := codec.Mint(ctx, u)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	restored, err := codec.Restore(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, u.ID, restored.ID)
	assert.Equal(t, u.Email, restored.Email)
	assert.Equal(t, u.Source, restored.Source)
}

func TestRestoreSeesFreshUserFields(t *testing.T) {
	ctx := context.Background()
	codec, users := newTestCodec(t)
	u := seedUser(t, users)

	token, err := codec.Mint(ctx, u)
	require.NoError(t, err)

	// mutate the row after minting; the next restore must see it
	u.DisplayName = "Robert"
	require.NoError(t, users.Update(ctx, u))

	restored, err := codec.Restore(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "Robert", restored.DisplayName)
}

func TestRestoreDeletedUser(t *testing.T) {
	ctx := context.Background()
	codec, users := newTestCodec(t)
	u := seedUser(t, users)

	token, err := codec.Mint(ctx, u)
	require.NoError(t, err)

	require.NoError(t, users.Delete(ctx, u.ID))

	restored, err := codec.Restore(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, restored)

	// the stale session is gone too
	s, err := codec.sessions.Get(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestRestoreUnknownToken(t *testing.T) {
	codec, _ := newTestCodec(t)

	restored, err := codec.Restore(context.Background(), "no-such-token")
	require.NoError(t, err)
	assert.Nil(t, restored)
}

func TestRestoreEmptyToken(t *testing.T) {
	codec, _ := newTestCodec(t)

	restored, err := codec.Restore(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, restored)
}

func TestRevokeThenRestore(t *testing.T) {
	ctx := context.Background()
	codec, users := newTestCodec(t)
	u := seedUser(t, users)

	token, err := codec.Mint(ctx, u)
	require.NoError(t, err)

	require.NoError(t, codec.Revoke(ctx, token))
	require.NoError(t, codec.Revoke(ctx, token)) // idempotent

	restored, err := codec.Restore(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, restored)
}

func TestRestoreExpiredSession(t *testing.T) {
	ctx := context.Background()
	users := user.NewMemoryStore()
	codec := NewCodec(NewMemoryStore(), users, time.Hour)
	u := seedUser(t, users)

	token, err := codec.Mint(ctx, u)
	require.NoError(t, err)

	codec.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	restored, err := codec.Restore(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, restored)
}
