package session

import (
	"context"
	"time"
)

// Session holds only identity pointers, never auth state. Storing just
// the user id keeps the payload small and means any change to the user
// row is visible on the very next request.
type Session struct {
	SessionID string
	UserID    string
	ExpiresAt time.Time
}

// Store defines how sessions are stored and retrieved. Get returns
// (nil, nil) when the session does not exist.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}
