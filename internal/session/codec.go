package session

import (
	"context"
	"time"

	"library-auth/internal/user"
)

// Codec serializes an authenticated user down to an id-only session
// token and restores the full record on each request. The indirection
// is deliberate: nothing about the user is cached in the session, so a
// fresh store lookup backs every restore.
type Codec struct {
	sessions Store
	users    user.Store
	ttl      time.Duration
	now      func() time.Time
}

func NewCodec(sessions Store, users user.Store, ttl time.Duration) *Codec {
	return &Codec{
		sessions: sessions,
		users:    users,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Mint creates a session token holding only the user id.
func (c *Codec) Mint(ctx context.Context, u *user.User) (string, error) {
	id, err := GenerateID()
	if err != nil {
		return "", err
	}

	s := Session{
		SessionID: id,
		UserID:    u.ID,
		ExpiresAt: c.now().Add(c.ttl),
	}
	if err := c.sessions.Create(ctx, s); err != nil {
		return "", err
	}

	return id, nil
}

// Restore resolves a token back to its user. A missing or expired
// session, or a token whose user has since been deleted, yields
// (nil, nil): an ordinary logged-out state, not an error.
func (c *Codec) Restore(ctx context.Context, token string) (*user.User, error) {
	if token == "" {
		return nil, nil
	}

	s, err := c.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}
	if c.now().After(s.ExpiresAt) {
		_ = c.sessions.Delete(ctx, token)
		return nil, nil
	}

	u, err := c.users.FindByID(ctx, s.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		// dead user reference; drop the stale session
		_ = c.sessions.Delete(ctx, token)
		return nil, nil
	}

	return u, nil
}

// Revoke deletes the session behind a token. Idempotent.
func (c *Codec) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return c.sessions.Delete(ctx, token)
}
