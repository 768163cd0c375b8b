package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"library-auth/internal/db"
)

const uniqueViolation = "23505"

// PostgresStore persists users in PostgreSQL. The unique index on
// LOWER(email) is the backstop for the one-row-per-email invariant
// when two requests race through find-then-create.
type PostgresStore struct {
	db *db.DB
}

func NewPostgresStore(db *db.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const userColumns = `id, email, display_name, avatar_url, source, password_hash, last_visited_at, created_at`

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`, email)
	return scanUser(row)
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id)
	return scanUser(row)
}

func (s *PostgresStore) Create(ctx context.Context, u *User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		u.ID,
		u.Email,
		u.DisplayName,
		u.AvatarURL,
		string(u.Source),
		u.PasswordHash,
		u.LastVisitedAt,
		u.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrEmailTaken
		}
		return fmt.Errorf("%w: create user: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, u *User) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET display_name = $2,
		    avatar_url = $3,
		    password_hash = $4,
		    last_visited_at = $5
		WHERE id = $1
	`,
		u.ID,
		u.DisplayName,
		u.AvatarURL,
		u.PasswordHash,
		u.LastVisitedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: update user: %v", ErrStoreUnavailable, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: update user: %v", ErrStoreUnavailable, err)
	}
	if affected == 0 {
		return fmt.Errorf("user: update: no row with id %s", u.ID)
	}
	return nil
}

func scanUser(row *sql.Row) (*User, error) {
	var (
		u      User
		source string
	)
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.DisplayName,
		&u.AvatarURL,
		&source,
		&u.PasswordHash,
		&u.LastVisitedAt,
		&u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: find user: %v", ErrStoreUnavailable, err)
	}
	u.Source = Source(source)
	return &u, nil
}
