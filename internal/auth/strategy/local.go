package strategy

import (
	"context"
	"errors"

	"library-auth/internal/auth"
	"library-auth/internal/auth/credentials"
	"library-auth/internal/auth/resolver"
	"library-auth/internal/user"
)

const localName = "local"

// Local authenticates a username/password pair and resolves the
// verified identity to its canonical user.
type Local struct {
	creds    *credentials.Service
	resolver *resolver.Resolver
}

func NewLocal(creds *credentials.Service, r *resolver.Resolver) *Local {
	return &Local{creds: creds, resolver: r}
}

func (l *Local) Name() string {
	return localName
}

func (l *Local) Authenticate(ctx context.Context, in Input) (auth.Outcome, error) {
	verified, err := l.creds.Verify(ctx, in.Email, in.Password)
	if errors.Is(err, credentials.ErrInvalidCredentials) {
		return auth.Rejected(auth.ReasonInvalidCredentials), nil
	}
	if err != nil {
		return auth.Outcome{}, err
	}

	return l.resolver.Resolve(ctx, auth.Profile{
		Email:  verified.Email,
		Source: user.SourceLocal,
	})
}
