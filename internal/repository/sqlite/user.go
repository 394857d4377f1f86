package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sakif/personal-site/internal/apperror"
	"github.com/sakif/personal-site/internal/model"
	"github.com/sakif/personal-site/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

// CreateUser inserts a user and fills in its ID and CreatedAt.
// A duplicate username fails on the UNIQUE constraint.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	user.CreatedAt = time.Now().UTC()

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)`,
		user.Username,
		user.PasswordHash,
		user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting user %q: %w", user.Username, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading user id: %w", err)
	}
	user.ID = id

	return nil
}

// GetUserByUsername looks a user up by exact username.
// Returns apperror.ErrNotFound if there is no such user.
func (db *DB) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE username = ?`,
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &apperror.AppError{
				Err:     apperror.ErrNotFound,
				Message: fmt.Sprintf("user %q not found", username),
			}
		}
		return nil, fmt.Errorf("sqlite: getting user %q: %w", username, err)
	}

	return &u, nil
}

func (db *DB) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: counting users: %w", err)
	}
	return n, nil
}

// UpdatePassword replaces a user's password hash.
// Returns apperror.ErrNotFound if the username does not exist.
func (db *DB) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE users SET password_hash = ? WHERE username = ?`,
		passwordHash, username,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating password for %q: %w", username, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if n == 0 {
		return &apperror.AppError{
			Err:     apperror.ErrNotFound,
			Message: fmt.Sprintf("user %q not found", username),
		}
	}

	return nil
}
