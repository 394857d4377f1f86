package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/sakif/personal-site/internal/apperror"
	"github.com/sakif/personal-site/internal/model"
)

// =========================================================================
// FAKES
// =========================================================================

// fakeStore is an in-memory implementation of every repository interface.
// Set the *Err fields to simulate database failures.
type fakeStore struct {
	mu sync.Mutex

	users  map[string]*model.User
	about  *model.About
	media  map[int64]*model.MediaItem
	links  map[int64]*model.Link
	nextID int64

	createMediaErr error
	deleteMediaErr error
	getUserErr     error
}

var errDB = errors.New("database is locked")

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:  make(map[string]*model.User),
		media:  make(map[int64]*model.MediaItem),
		links:  make(map[int64]*model.Link),
		nextID: 1,
	}
}

func (f *fakeStore) id() int64 {
	id := f.nextID
	f.nextID++
	return id
}

func (f *fakeStore) CreateUser(ctx context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.Username]; ok {
		return errors.New("UNIQUE constraint failed: users.username")
	}
	user.ID = f.id()
	user.CreatedAt = time.Now()
	copied := *user
	f.users[user.Username] = &copied
	return nil
}

func (f *fakeStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getUserErr != nil {
		return nil, f.getUserErr
	}
	u, ok := f.users[username]
	if !ok {
		return nil, &apperror.AppError{Err: apperror.ErrNotFound, Message: "user not found"}
	}
	copied := *u
	return &copied, nil
}

func (f *fakeStore) CountUsers(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users), nil
}

func (f *fakeStore) UpdatePassword(ctx context.Context, username, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[username]
	if !ok {
		return &apperror.AppError{Err: apperror.ErrNotFound, Message: "user not found"}
	}
	u.PasswordHash = hash
	return nil
}

func (f *fakeStore) GetAbout(ctx context.Context) (*model.About, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.about == nil {
		return &model.About{}, nil
	}
	copied := *f.about
	return &copied, nil
}

func (f *fakeStore) UpdateAbout(ctx context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.about != nil {
		f.about.Text = text
		f.about.UpdatedAt = time.Now()
	}
	return nil
}

func (f *fakeStore) EnsureAbout(ctx context.Context, text string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.about != nil {
		return false, nil
	}
	f.about = &model.About{Text: text, UpdatedAt: time.Now()}
	return true, nil
}

func (f *fakeStore) CreateMedia(ctx context.Context, item *model.MediaItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createMediaErr != nil {
		return f.createMediaErr
	}
	item.ID = f.id()
	item.CreatedAt = time.Now()
	copied := *item
	f.media[item.ID] = &copied
	return nil
}

func (f *fakeStore) GetMediaByID(ctx context.Context, id int64) (*model.MediaItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.media[id]
	if !ok {
		return nil, apperror.NotFound("media", id)
	}
	copied := *m
	return &copied, nil
}

func (f *fakeStore) ListMedia(ctx context.Context) ([]model.MediaItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := make([]model.MediaItem, 0, len(f.media))
	for _, m := range f.media {
		items = append(items, *m)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID > items[j].ID })
	return items, nil
}

func (f *fakeStore) UpdateMedia(ctx context.Context, item *model.MediaItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.media[item.ID]
	if !ok {
		return apperror.NotFound("media", item.ID)
	}
	m.Title, m.Description, m.Date = item.Title, item.Description, item.Date
	return nil
}

func (f *fakeStore) DeleteMedia(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteMediaErr != nil {
		return f.deleteMediaErr
	}
	if _, ok := f.media[id]; !ok {
		return apperror.NotFound("media", id)
	}
	delete(f.media, id)
	return nil
}

func (f *fakeStore) CreateLink(ctx context.Context, link *model.Link) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	link.ID = f.id()
	link.CreatedAt = time.Now()
	copied := *link
	f.links[link.ID] = &copied
	return nil
}

func (f *fakeStore) GetLinkByID(ctx context.Context, id int64) (*model.Link, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.links[id]
	if !ok {
		return nil, apperror.NotFound("link", id)
	}
	copied := *l
	return &copied, nil
}

func (f *fakeStore) ListLinks(ctx context.Context) ([]model.Link, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	links := make([]model.Link, 0, len(f.links))
	for _, l := range f.links {
		links = append(links, *l)
	}
	sort.Slice(links, func(i, j int) bool {
		if links[i].SortOrder != links[j].SortOrder {
			return links[i].SortOrder < links[j].SortOrder
		}
		return links[i].ID < links[j].ID
	})
	return links, nil
}

func (f *fakeStore) UpdateLink(ctx context.Context, link *model.Link) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.links[link.ID]; !ok {
		return apperror.NotFound("link", link.ID)
	}
	copied := *link
	f.links[link.ID] = &copied
	return nil
}

func (f *fakeStore) DeleteLink(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.links[id]; !ok {
		return apperror.NotFound("link", id)
	}
	delete(f.links, id)
	return nil
}

func (f *fakeStore) CountLinks(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.links), nil
}

// fakeFiles records which files were removed.
type fakeFiles struct {
	removed   []string
	removeErr error
}

func (f *fakeFiles) Remove(filename string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, filename)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func intPtr(n int) *int { return &n }
