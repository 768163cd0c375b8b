// Package mapper normalizes raw provider payloads into the canonical
// profile shape. Each provider gets its own mapper; nothing outside
// this package ever sees raw provider data.
package mapper

import "library-auth/internal/auth"

// Mapper turns one provider's raw payload into a Profile. Pure, no
// I/O; returns auth.ErrMalformedProfile when required fields are
// absent.
type Mapper interface {
	Normalize(raw map[string]any) (auth.Profile, error)
}

func stringField(raw map[string]any, key string) string {
	v, _ := raw[key].(string)
	return v
}
