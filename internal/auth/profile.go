package auth

import (
	"strings"

	"library-auth/internal/user"
)

// Profile is a provider-normalized identity payload. It contains facts
// only, no decisions, and is discarded once the resolver has consumed it.
type Profile struct {
	ProviderID string // provider-scoped unique user identifier
	Email      string
	FirstName  string
	LastName   string
	AvatarURL  string
	Source     user.Source
}

// DisplayName joins the name parts the provider gave us.
func (p Profile) DisplayName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}
