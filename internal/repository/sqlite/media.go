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

var _ repository.MediaRepository = (*DB)(nil)

const mediaColumns = `id, title, description, filename, date, created_at`

// CreateMedia inserts a media record; item.ID and item.CreatedAt are set on
// success. The file itself must already be in the media directory.
func (db *DB) CreateMedia(ctx context.Context, item *model.MediaItem) error {
	item.CreatedAt = time.Now().UTC()

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO media (title, description, filename, date, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		item.Title,
		item.Description,
		item.Filename,
		nullString(item.Date),
		item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting media %q: %w", item.Filename, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading media id: %w", err)
	}
	item.ID = id

	return nil
}

// GetMediaByID returns apperror.ErrNotFound if no record has that id.
func (db *DB) GetMediaByID(ctx context.Context, id int64) (*model.MediaItem, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+mediaColumns+` FROM media WHERE id = ?`, id)

	item, err := scanMedia(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("media", id)
		}
		return nil, fmt.Errorf("sqlite: getting media %d: %w", id, err)
	}

	return item, nil
}

// ListMedia returns every media item, newest publication date first.
// Items without a date sort after dated ones.
func (db *DB) ListMedia(ctx context.Context) ([]model.MediaItem, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+mediaColumns+` FROM media
		 ORDER BY date DESC, created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing media: %w", err)
	}
	defer rows.Close()

	items := make([]model.MediaItem, 0)
	for rows.Next() {
		item, err := scanMedia(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning media row: %w", err)
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating media: %w", err)
	}

	return items, nil
}

// UpdateMedia rewrites the metadata of an existing item. The filename is
// never changed.
func (db *DB) UpdateMedia(ctx context.Context, item *model.MediaItem) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE media SET title = ?, description = ?, date = ? WHERE id = ?`,
		item.Title,
		item.Description,
		nullString(item.Date),
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating media %d: %w", item.ID, err)
	}

	return checkAffected(res, "media", item.ID)
}

// DeleteMedia removes the record only; the caller owns the file.
func (db *DB) DeleteMedia(ctx context.Context, id int64) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM media WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting media %d: %w", id, err)
	}

	return checkAffected(res, "media", id)
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanMedia(s scanner) (*model.MediaItem, error) {
	var (
		item model.MediaItem
		date sql.NullString
	)
	if err := s.Scan(
		&item.ID, &item.Title, &item.Description, &item.Filename,
		&date, &item.CreatedAt,
	); err != nil {
		return nil, err
	}
	if date.Valid {
		item.Date = &date.String
	}
	return &item, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// checkAffected turns a zero-row UPDATE/DELETE into apperror.ErrNotFound.
func checkAffected(res sql.Result, resource string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if n == 0 {
		return apperror.NotFound(resource, id)
	}
	return nil
}
