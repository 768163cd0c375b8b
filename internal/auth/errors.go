package auth

import "errors"

var (
	// ErrMalformedProfile means a provider payload is missing required
	// fields (provider id, email) and the login attempt cannot proceed.
	ErrMalformedProfile = errors.New("auth: malformed provider profile")

	// ErrUnknownStrategy means the requested method name was never
	// registered. A configuration error, not a user error.
	ErrUnknownStrategy = errors.New("auth: unknown strategy")
)
