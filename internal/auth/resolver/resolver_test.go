package resolver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-auth/internal/auth"
	"library-auth/internal/user"
)

func googleProfile(email string) auth.Profile {
	return auth.Profile{
		ProviderID: "108123456789",
		Email:      email,
		FirstName:  "Bob",
		LastName:   "Ross",
		AvatarURL:  "https://lh3.example.com/bob.png",
		Source:     user.SourceGoogle,
	}
}

func TestResolveCreatesUserOnFirstLogin(t *testing.T) {
	ctx := context.Background()
	store := user.NewMemoryStore()
	r := New(store, func() time.Time { return time.Unix(100, 0) })

	out, err := r.Resolve(ctx, googleProfile("Bob@X.com "))
	require.NoError(t, err)
	require.True(t, out.IsAuthenticated())

	assert.Equal(t, "bob@x.com", out.User.Email)
	assert.Equal(t, user.SourceGoogle, out.User.Source)
	assert.Equal(t, "Bob Ross", out.User.DisplayName)
	assert.Equal(t, time.Unix(100, 0), out.User.LastVisitedAt)
	assert.NotEmpty(t, out.User.ID)
}

func TestResolveIdempotentSecondLogin(t *testing.T) {
	ctx := context.Background()
	store := user.NewMemoryStore()

	clock := time.Unix(100, 0)
	r := New(store, func() time.Time { return clock })

	first, err := r.Resolve(ctx, googleProfile("bob@x.com"))
	require.NoError(t, err)
	require.True(t, first.IsAuthenticated())

	clock = time.Unix(200, 0)
	second, err := r.Resolve(ctx, googleProfile("bob@x.com"))
	require.NoError(t, err)
	require.True(t, second.IsAuthenticated())

	// id and source stay fixed, last visit advances
	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Equal(t, first.User.Source, second.User.Source)
	assert.Equal(t, time.Unix(200, 0), second.User.LastVisitedAt)
}

func TestResolveSourceConflict(t *testing.T) {
	ctx := context.Background()
	store := user.NewMemoryStore()
	r := New(store, nil)

	local := &user.User{
		ID:           "u1",
		Email:        "bob@x.com",
		Source:       user.SourceLocal,
		PasswordHash: "$2a$10$hash",
	}
	require.NoError(t, store.Create(ctx, local))

	out, err := r.Resolve(ctx, googleProfile("bob@x.com"))
	require.NoError(t, err)
	require.True(t, out.IsConflict())

	assert.Equal(t, user.SourceLocal, out.Conflict.Existing)
	assert.Equal(t, user.SourceGoogle, out.Conflict.Attempted)

	// conflict mutates nothing and creates no second row
	stored, err := store.FindByEmail(ctx, "bob@x.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", stored.ID)
	assert.True(t, stored.LastVisitedAt.IsZero())
}

// raceStore simulates a concurrent request winning the create between
// our miss and our insert: FindByEmail sees nothing until Create has
// failed with ErrEmailTaken.
type raceStore struct {
	user.Store
	winner  *user.User
	created bool
}

func (s *raceStore) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	if !s.created {
		return nil, nil
	}
	return s.winner, nil
}

func (s *raceStore) Create(ctx context.Context, u *user.User) error {
	s.created = true
	return user.ErrEmailTaken
}

func (s *raceStore) Update(ctx context.Context, u *user.User) error {
	s.winner = u
	return nil
}

func TestResolveCreateRaceSameSource(t *testing.T) {
	winner := &user.User{ID: "winner", Email: "bob@x.com", Source: user.SourceGoogle}
	store := &raceStore{winner: winner}
	r := New(store, func() time.Time { return time.Unix(300, 0) })

	out, err := r.Resolve(context.Background(), googleProfile("bob@x.com"))
	require.NoError(t, err)
	require.True(t, out.IsAuthenticated())
	assert.Equal(t, "winner", out.User.ID)
	assert.Equal(t, time.Unix(300, 0), out.User.LastVisitedAt)
}

func TestResolveCreateRaceDifferentSource(t *testing.T) {
	winner := &user.User{ID: "winner", Email: "bob@x.com", Source: user.SourceLocal}
	store := &raceStore{winner: winner}
	r := New(store, nil)

	out, err := r.Resolve(context.Background(), googleProfile("bob@x.com"))
	require.NoError(t, err)
	require.True(t, out.IsConflict())
	assert.Equal(t, user.SourceLocal, out.Conflict.Existing)
}

func TestResolveEmptyEmail(t *testing.T) {
	r := New(user.NewMemoryStore(), nil)

	_, err := r.Resolve(context.Background(), auth.Profile{Source: user.SourceGoogle})
	assert.ErrorIs(t, err, auth.ErrMalformedProfile)
}
