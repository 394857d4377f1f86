package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sakif/personal-site/internal/model"
	"github.com/sakif/personal-site/internal/repository"
)

var _ repository.AboutRepository = (*DB)(nil)

// aboutRowID is the only id the about table accepts (see its CHECK constraint).
const aboutRowID = 1

// GetAbout returns the about text, or an empty About if the row is missing.
func (db *DB) GetAbout(ctx context.Context) (*model.About, error) {
	var a model.About

	err := db.conn.QueryRowContext(ctx,
		`SELECT text, updated_at FROM about WHERE id = ?`, aboutRowID,
	).Scan(&a.Text, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &model.About{}, nil
		}
		return nil, fmt.Errorf("sqlite: getting about text: %w", err)
	}

	return &a, nil
}

// UpdateAbout replaces the about text. Without a row nothing is written and
// no error is returned.
func (db *DB) UpdateAbout(ctx context.Context, text string) error {
	_, err := db.conn.ExecContext(ctx,
		`UPDATE about SET text = ?, updated_at = ? WHERE id = ?`,
		text, time.Now().UTC(), aboutRowID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating about text: %w", err)
	}
	return nil
}

func (db *DB) EnsureAbout(ctx context.Context, text string) (bool, error) {
	res, err := db.conn.ExecContext(ctx,
		`INSERT OR IGNORE INTO about (id, text, updated_at) VALUES (?, ?, ?)`,
		aboutRowID, text, time.Now().UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("sqlite: seeding about text: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("sqlite: checking rows affected: %w", err)
	}

	return n > 0, nil
}
