package auth

import "library-auth/internal/user"

// Reject reasons surfaced to callers. Deliberately coarse: neither one
// says whether the email in question is registered.
const (
	ReasonInvalidCredentials = "invalid_credentials"
	ReasonMalformedProfile   = "malformed_profile"
)

// SourceConflict means the email already belongs to a user created via
// a different authentication method. It is terminal: the caller must
// retry with the original method, nothing is auto-merged.
type SourceConflict struct {
	Existing  user.Source
	Attempted user.Source
}

// Outcome is the result of one authentication attempt. Exactly one of
// User, Conflict, or Reason is set. Infrastructure failures travel on
// the error return next to it, never inside an Outcome.
type Outcome struct {
	User     *user.User
	Conflict *SourceConflict
	Reason   string
}

func Authenticated(u *user.User) Outcome {
	return Outcome{User: u}
}

func Rejected(reason string) Outcome {
	return Outcome{Reason: reason}
}

func Conflicted(existing, attempted user.Source) Outcome {
	return Outcome{Conflict: &SourceConflict{Existing: existing, Attempted: attempted}}
}

func (o Outcome) IsAuthenticated() bool { return o.User != nil }
func (o Outcome) IsConflict() bool      { return o.Conflict != nil }
func (o Outcome) IsRejected() bool      { return o.User == nil && o.Conflict == nil }

// Kind labels the outcome for logs and metrics.
func (o Outcome) Kind() string {
	switch {
	case o.IsAuthenticated():
		return "authenticated"
	case o.IsConflict():
		return "conflict"
	default:
		return "rejected"
	}
}
