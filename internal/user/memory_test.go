package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreEmailUniqueness(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Create(ctx, &User{ID: "u1", Email: "bob@x.com", Source: SourceLocal}))

	// same email, different casing, different source
	err := store.Create(ctx, &User{ID: "u2", Email: "BOB@X.com", Source: SourceGoogle})
	assert.ErrorIs(t, err, ErrEmailTaken)

	found, err := store.FindByEmail(ctx, "Bob@x.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "u1", found.ID)
}

func TestMemoryStoreFindMissReturnsNil(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	byEmail, err := store.FindByEmail(ctx, "nobody@x.com")
	require.NoError(t, err)
	assert.Nil(t, byEmail)

	byID, err := store.FindByID(ctx, "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, byID)
}

func TestMemoryStoreUpdate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	u := &User{ID: "u1", Email: "bob@x.com", Source: SourceLocal}
	require.NoError(t, store.Create(ctx, u))

	u.DisplayName = "Bob"
	require.NoError(t, store.Update(ctx, u))

	found, err := store.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Bob", found.DisplayName)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "bob@x.com", NormalizeEmail("  Bob@X.COM "))
}
