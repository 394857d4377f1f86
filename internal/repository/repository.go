// Package repository declares the storage contracts the services depend on.
// The sqlite subpackage is the production implementation; service tests use
// in-memory fakes.
package repository

import (
	"context"

	"github.com/sakif/personal-site/internal/model"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	CountUsers(ctx context.Context) (int, error)
	UpdatePassword(ctx context.Context, username, passwordHash string) error
}

// AboutRepository stores the single about text. GetAbout returns an empty
// About when no row exists; UpdateAbout is a no-op in that case. EnsureAbout
// inserts the row with the given text only if it is missing and reports
// whether it did.
type AboutRepository interface {
	GetAbout(ctx context.Context) (*model.About, error)
	UpdateAbout(ctx context.Context, text string) error
	EnsureAbout(ctx context.Context, text string) (bool, error)
}

type MediaRepository interface {
	CreateMedia(ctx context.Context, item *model.MediaItem) error
	GetMediaByID(ctx context.Context, id int64) (*model.MediaItem, error)
	ListMedia(ctx context.Context) ([]model.MediaItem, error)
	UpdateMedia(ctx context.Context, item *model.MediaItem) error
	DeleteMedia(ctx context.Context, id int64) error
}

type LinkRepository interface {
	CreateLink(ctx context.Context, link *model.Link) error
	GetLinkByID(ctx context.Context, id int64) (*model.Link, error)
	ListLinks(ctx context.Context) ([]model.Link, error)
	UpdateLink(ctx context.Context, link *model.Link) error
	DeleteLink(ctx context.Context, id int64) error
	CountLinks(ctx context.Context) (int, error)
}
