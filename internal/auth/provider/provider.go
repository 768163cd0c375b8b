package provider

import "context"

// OAuthProvider is the boundary to a third-party identity service.
// Implementations own the code exchange only; they hand back the raw
// profile payload untouched so the mapper layer stays the single place
// that interprets provider data.
type OAuthProvider interface {
	// Name returns the provider identifier (e.g. "google", "kakao").
	Name() string

	// AuthCodeURL returns the OAuth authorization URL.
	// State and PKCE parameters are provided by the caller.
	AuthCodeURL(state string, codeChallenge string) string

	// ExchangeCode exchanges the authorization code for provider
	// credentials and fetches the raw profile payload.
	ExchangeCode(
		ctx context.Context,
		code string,
		codeVerifier string,
	) (map[string]any, error)
}
