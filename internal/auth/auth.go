// Package auth is the identity layer for the multi-user variant: sign-up and
// sign-in over email+password, returning an opaque owner identifier.
//
// The rest of the application never inspects credentials; it only receives
// the owner id after a token check. Single-user deployments never construct
// this service.
package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)

// ProfileWriter stores the display name captured at sign-up, keyed by owner.
type ProfileWriter interface {
	SaveProfileName(ctx context.Context, ownerID, name string) error
}

// Service authenticates users against the shared Postgres database.
type Service struct {
	db       *sql.DB
	profiles ProfileWriter
}

func NewService(db *sql.DB, profiles ProfileWriter) *Service {
	return &Service{db: db, profiles: profiles}
}

// SignUp registers a new user and returns the opaque owner identifier.
func (s *Service) SignUp(ctx context.Context, email, password, name string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return "", fmt.Errorf("%w: malformed email", ErrInvalidCredentials)
	}
	if len(password) < 6 {
		return "", fmt.Errorf("%w: password too short", ErrInvalidCredentials)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	id := uuid.New().String()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash) VALUES ($1, $2, $3)`,
		id, email, string(hash))
	if err != nil {
		var pqErr *pq.Error
		// 23505 = unique_violation
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return "", ErrEmailTaken
		}
		return "", fmt.Errorf("insert user: %w", err)
	}

	if name = strings.TrimSpace(name); name != "" && s.profiles != nil {
		if err := s.profiles.SaveProfileName(ctx, id, name); err != nil {
			// The account exists; a missing display name is recoverable.
			slog.WarnContext(ctx, "Failed to save profile name", "owner", id, "error", err)
		}
	}

	slog.InfoContext(ctx, "User registered", "owner", id)
	return id, nil
}

// SignIn validates credentials and returns the owner identifier.
func (s *Service) SignIn(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var id, hash string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, password_hash FROM users WHERE email = $1`, email,
	).Scan(&id, &hash)
	if err == sql.ErrNoRows {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("query user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	slog.InfoContext(ctx, "User signed in", "owner", id)
	return id, nil
}
