package credentials

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"library-auth/internal/user"
)

var (
	// ErrInvalidCredentials covers both "no such user" and "wrong
	// password" so responses never reveal whether an email is registered.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAlreadyRegistered means the email already belongs to a user,
	// whatever source created it.
	ErrAlreadyRegistered = errors.New("account already exists")
)

// Service owns the local username/password scheme: sign-up and
// verification against the stored bcrypt hash.
type Service struct {
	users user.Store
	now   func() time.Time
}

func NewService(users user.Store, clock func() time.Time) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{users: users, now: clock}
}

// Register creates a local-source user with a hashed password.
func (s *Service) Register(
	ctx context.Context,
	email string,
	password string,
	displayName string,
) (*user.User, error) {

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	u := &user.User{
		ID:            uuid.NewString(),
		Email:         user.NormalizeEmail(email),
		DisplayName:   displayName,
		Source:        user.SourceLocal,
		PasswordHash:  hash,
		LastVisitedAt: now,
		CreatedAt:     now,
	}

	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return nil, ErrAlreadyRegistered
		}
		return nil, err
	}

	return u, nil
}

// Verify checks a password against the stored hash. The raw password
// is never logged or returned; all failure modes that would leak
// whether the email exists collapse into ErrInvalidCredentials.
func (s *Service) Verify(
	ctx context.Context,
	email string,
	password string,
) (*user.User, error) {

	u, err := s.users.FindByEmail(ctx, user.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}

	if u == nil || u.Source != user.SourceLocal || u.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}

	if err := VerifyPassword(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}
