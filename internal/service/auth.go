// Package service holds the business rules of the site backend.
//
//	Handler (HTTP) → Service (validation, orchestration) → Repository (SQLite)
//
// Services take repository interfaces, never *sqlite.DB, and return
// apperror values; the handler package decides what status code each one
// becomes.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/personal-site/internal/apperror"
	"github.com/sakif/personal-site/internal/auth"
	"github.com/sakif/personal-site/internal/repository"
)

// MsgInvalidCredentials is returned for every failed login, whatever the
// reason, so callers cannot probe which usernames exist.
const MsgInvalidCredentials = "Invalid credentials"

// AuthService checks admin credentials and issues bearer tokens.
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// Login verifies username and password and returns a signed token.
//
// An unknown username and a wrong password produce the same
// apperror.ErrUnauthenticated error. For an unknown username a bcrypt
// comparison is still performed so the two cases take similar time.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		s.passwords.VerifyNothing(password)
		return "", apperror.Unauthenticated(MsgInvalidCredentials)
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			s.passwords.VerifyNothing(password)
			s.logger.Info("login failed", slog.String("username", username), slog.String("reason", "unknown user"))
			return "", apperror.Unauthenticated(MsgInvalidCredentials)
		}
		return "", fmt.Errorf("service/auth: looking up %q: %w", username, err)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		if !errors.Is(err, auth.ErrPasswordMismatch) {
			s.logger.Error("stored password hash is unusable",
				slog.String("username", username),
				slog.String("error", err.Error()),
			)
		}
		s.logger.Info("login failed", slog.String("username", username), slog.String("reason", "bad password"))
		return "", apperror.Unauthenticated(MsgInvalidCredentials)
	}

	token, err := s.tokens.Generate(auth.Identity{UserID: user.ID, Username: user.Username})
	if err != nil {
		return "", fmt.Errorf("service/auth: issuing token for %q: %w", username, err)
	}

	s.logger.Info("admin logged in", slog.String("username", user.Username))

	return token, nil
}

// SetPassword replaces the password of an existing user. Used by the
// adminctl tool; there is no HTTP route for it.
func (s *AuthService) SetPassword(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return apperror.ValidationFailed("username", "username is required")
	}
	if password == "" {
		return apperror.ValidationFailed("password", "password is required")
	}
	if len(password) > auth.MaxPasswordBytes {
		return apperror.ValidationFailed("password",
			fmt.Sprintf("password must be %d bytes or fewer", auth.MaxPasswordBytes))
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return fmt.Errorf("service/auth: hashing password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, username, hash); err != nil {
		return fmt.Errorf("service/auth: updating password for %q: %w", username, err)
	}

	s.logger.Info("password changed", slog.String("username", username))

	return nil
}
