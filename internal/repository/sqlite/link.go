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

var _ repository.LinkRepository = (*DB)(nil)

const linkColumns = `id, title, description, url, icon, sort_order, created_at`

// CreateLink inserts a link as given; defaults (icon, sort order) are the
// service's job. link.ID and link.CreatedAt are set on success.
func (db *DB) CreateLink(ctx context.Context, link *model.Link) error {
	link.CreatedAt = time.Now().UTC()

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO links (title, description, url, icon, sort_order, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		link.Title,
		link.Description,
		link.URL,
		link.Icon,
		link.SortOrder,
		link.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting link %q: %w", link.Title, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading link id: %w", err)
	}
	link.ID = id

	return nil
}

func (db *DB) GetLinkByID(ctx context.Context, id int64) (*model.Link, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+linkColumns+` FROM links WHERE id = ?`, id)

	link, err := scanLink(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("link", id)
		}
		return nil, fmt.Errorf("sqlite: getting link %d: %w", id, err)
	}

	return link, nil
}

// ListLinks returns links by sort_order ascending. Equal sort orders keep
// insertion order (id ascending).
func (db *DB) ListLinks(ctx context.Context) ([]model.Link, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+linkColumns+` FROM links ORDER BY sort_order ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing links: %w", err)
	}
	defer rows.Close()

	links := make([]model.Link, 0)
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning link row: %w", err)
		}
		links = append(links, *link)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating links: %w", err)
	}

	return links, nil
}

func (db *DB) UpdateLink(ctx context.Context, link *model.Link) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE links SET title = ?, description = ?, url = ?, icon = ?, sort_order = ?
		 WHERE id = ?`,
		link.Title,
		link.Description,
		link.URL,
		link.Icon,
		link.SortOrder,
		link.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating link %d: %w", link.ID, err)
	}

	return checkAffected(res, "link", link.ID)
}

// DeleteLink returns apperror.ErrNotFound when nothing was deleted, so a
// repeated delete of the same id is reported rather than ignored.
func (db *DB) DeleteLink(ctx context.Context, id int64) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM links WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting link %d: %w", id, err)
	}

	return checkAffected(res, "link", id)
}

func (db *DB) CountLinks(ctx context.Context) (int, error) {
	var n int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM links`).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: counting links: %w", err)
	}
	return n, nil
}

func scanLink(s scanner) (*model.Link, error) {
	var link model.Link
	if err := s.Scan(
		&link.ID, &link.Title, &link.Description, &link.URL,
		&link.Icon, &link.SortOrder, &link.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &link, nil
}
