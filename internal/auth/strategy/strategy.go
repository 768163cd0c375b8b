// Package strategy holds the pluggable authentication methods and the
// registry that dispatches between them.
package strategy

import (
	"context"

	"library-auth/internal/auth"
)

// Input carries the credential material for one attempt. Local logins
// fill Email/Password; provider logins fill RawProfile with the
// already-exchanged payload.
type Input struct {
	Email      string
	Password   string
	RawProfile map[string]any
}

// Strategy is one authentication method. Implementations are immutable
// after construction and safe for concurrent use.
type Strategy interface {
	Name() string
	Authenticate(ctx context.Context, in Input) (auth.Outcome, error)
}
