// Package gateway is the façade the web layer calls: login, current
// user, logout. It composes the strategy registry with the session
// codec; per session the state machine is Anonymous → Authenticated →
// Anonymous, nothing in between.
package gateway

import (
	"context"

	"go.uber.org/zap"

	"library-auth/internal/auth"
	"library-auth/internal/auth/strategy"
	"library-auth/internal/session"
	"library-auth/internal/user"
)

type Gateway struct {
	strategies *strategy.Registry
	codec      *session.Codec
	log        *zap.Logger
}

func New(strategies *strategy.Registry, codec *session.Codec, log *zap.Logger) *Gateway {
	return &Gateway{
		strategies: strategies,
		codec:      codec,
		log:        log,
	}
}

// Login runs one authentication attempt. A session token is minted
// only on an authenticated outcome; rejected and conflict outcomes
// leave the caller anonymous.
func (g *Gateway) Login(
	ctx context.Context,
	method string,
	in strategy.Input,
) (auth.Outcome, string, error) {

	out, err := g.strategies.Authenticate(ctx, method, in)
	if err != nil {
		return auth.Outcome{}, "", err
	}

	if !out.IsAuthenticated() {
		g.log.Info("login not authenticated",
			zap.String("method", method),
			zap.String("outcome", out.Kind()),
		)
		return out, "", nil
	}

	token, err := g.codec.Mint(ctx, out.User)
	if err != nil {
		return auth.Outcome{}, "", err
	}

	g.log.Info("login authenticated",
		zap.String("method", method),
		zap.String("user_id", out.User.ID),
	)

	return out, token, nil
}

// StartSession mints a session for an already-established user, e.g.
// right after local registration.
func (g *Gateway) StartSession(ctx context.Context, u *user.User) (string, error) {
	return g.codec.Mint(ctx, u)
}

// CurrentUser restores the identity behind a token. (nil, nil) means
// anonymous.
func (g *Gateway) CurrentUser(ctx context.Context, token string) (*user.User, error) {
	return g.codec.Restore(ctx, token)
}

// Logout clears the session. The user row is untouched.
func (g *Gateway) Logout(ctx context.Context, token string) error {
	return g.codec.Revoke(ctx, token)
}
