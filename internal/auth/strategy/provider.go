package strategy

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"library-auth/internal/auth"
	"library-auth/internal/auth/mapper"
	"library-auth/internal/auth/resolver"
)

// Provider authenticates an already-exchanged third-party payload:
// normalize through the provider's mapper, then resolve.
type Provider struct {
	name     string
	mapper   mapper.Mapper
	resolver *resolver.Resolver
	log      *zap.Logger
}

func NewProvider(name string, m mapper.Mapper, r *resolver.Resolver, log *zap.Logger) *Provider {
	return &Provider{name: name, mapper: m, resolver: r, log: log}
}

func (p *Provider) Name() string {
	return p.name
}

func (p *Provider) Authenticate(ctx context.Context, in Input) (auth.Outcome, error) {
	profile, err := p.mapper.Normalize(in.RawProfile)
	if errors.Is(err, auth.ErrMalformedProfile) {
		p.log.Warn("malformed provider profile",
			zap.String("provider", p.name),
			zap.Error(err),
		)
		return auth.Rejected(auth.ReasonMalformedProfile), nil
	}
	if err != nil {
		return auth.Outcome{}, err
	}

	return p.resolver.Resolve(ctx, profile)
}
