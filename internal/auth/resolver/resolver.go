// Package resolver maps verified authentication inputs to canonical
// user rows. It is the only place where identity-to-user mapping
// logic lives.
package resolver

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"library-auth/internal/auth"
	"library-auth/internal/user"
)

// Resolver finds or creates the canonical user for a normalized
// profile. Email is the merge key across identity sources; a source
// mismatch is a terminal conflict, never an automatic merge — otherwise
// a local account registered with a victim's email could capture the
// victim's later OAuth logins.
type Resolver struct {
	users user.Store
	now   func() time.Time
}

func New(users user.Store, clock func() time.Time) *Resolver {
	if clock == nil {
		clock = time.Now
	}
	return &Resolver{users: users, now: clock}
}

// Resolve implements find-or-create-by-email with source-conflict
// detection. On every authenticated outcome LastVisitedAt is advanced,
// regardless of which method the login came through.
func (r *Resolver) Resolve(ctx context.Context, p auth.Profile) (auth.Outcome, error) {
	email := user.NormalizeEmail(p.Email)
	if email == "" {
		return auth.Outcome{}, auth.ErrMalformedProfile
	}

	existing, err := r.users.FindByEmail(ctx, email)
	if err != nil {
		return auth.Outcome{}, err
	}

	if existing == nil {
		created, err := r.create(ctx, p, email)
		if err == nil {
			return auth.Authenticated(created), nil
		}
		if !errors.Is(err, user.ErrEmailTaken) {
			return auth.Outcome{}, err
		}

		// Lost a create race; the unique index decided the winner.
		// Re-read it so the source check below still applies.
		existing, err = r.users.FindByEmail(ctx, email)
		if err != nil {
			return auth.Outcome{}, err
		}
		if existing == nil {
			return auth.Outcome{}, user.ErrEmailTaken
		}
	}

	if existing.Source != p.Source {
		// No state is mutated on conflict.
		return auth.Conflicted(existing.Source, p.Source), nil
	}

	existing.LastVisitedAt = r.now()
	if err := r.users.Update(ctx, existing); err != nil {
		return auth.Outcome{}, err
	}

	return auth.Authenticated(existing), nil
}

func (r *Resolver) create(ctx context.Context, p auth.Profile, email string) (*user.User, error) {
	now := r.now()
	u := &user.User{
		ID:            uuid.NewString(),
		Email:         email,
		DisplayName:   p.DisplayName(),
		AvatarURL:     p.AvatarURL,
		Source:        p.Source,
		LastVisitedAt: now,
		CreatedAt:     now,
	}
	if err := r.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
