package mapper

import (
	"fmt"

	"library-auth/internal/auth"
	"library-auth/internal/user"
)

// Google maps the flat OIDC claim set Google returns ("sub", "email",
// "given_name", "family_name", "picture").
type Google struct{}

func (Google) Normalize(raw map[string]any) (auth.Profile, error) {
	sub := stringField(raw, "sub")
	email := stringField(raw, "email")
	if sub == "" || email == "" {
		return auth.Profile{}, fmt.Errorf("%w: google payload missing sub or email", auth.ErrMalformedProfile)
	}

	return auth.Profile{
		ProviderID: sub,
		Email:      email,
		FirstName:  stringField(raw, "given_name"),
		LastName:   stringField(raw, "family_name"),
		AvatarURL:  stringField(raw, "picture"),
		Source:     user.SourceGoogle,
	}, nil
}
