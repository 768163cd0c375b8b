package user

import (
	"context"
	"errors"
)

var (
	// ErrEmailTaken is returned by Create when another row already owns
	// the email. The store's unique index is the authority under races.
	ErrEmailTaken = errors.New("user: email already taken")

	// ErrStoreUnavailable wraps transient store failures (connectivity,
	// timeouts). Callers decide whether to retry; this package never does.
	ErrStoreUnavailable = errors.New("user: store unavailable")
)

// Store is the narrow persistence interface the auth core consumes.
// Lookups return (nil, nil) when no row matches.
type Store interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
}
