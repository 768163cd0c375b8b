package user

import (
	"strings"
	"time"
)

// Source records which authentication method established an identity.
// It never changes after the user row is created.
type Source string

const (
	SourceLocal  Source = "local"
	SourceGoogle Source = "google"
	SourceKakao  Source = "kakao"
)

// User is the canonical identity record. Exactly one row exists per
// normalized email, regardless of how many ways a person can sign in.
type User struct {
	ID            string
	Email         string
	DisplayName   string
	AvatarURL     string
	Source        Source
	PasswordHash  string // set only when Source == SourceLocal
	LastVisitedAt time.Time
	CreatedAt     time.Time
}

// NormalizeEmail lowercases and trims an email so lookups and the
// store's uniqueness constraint agree on what "the same address" means.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
