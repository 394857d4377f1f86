package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/personal-site/internal/apperror"
	"github.com/sakif/personal-site/internal/model"
)

func createTestLink(t *testing.T, db *DB, title string, sortOrder int) *model.Link {
	t.Helper()
	link := &model.Link{
		Title:     title,
		URL:       "https://example.com/" + title,
		Icon:      model.DefaultLinkIcon,
		SortOrder: sortOrder,
	}
	if err := db.CreateLink(context.Background(), link); err != nil {
		t.Fatalf("failed to create test link: %v", err)
	}
	return link
}

func TestCreateLink(t *testing.T) {
	db := newTestDB(t)

	link := createTestLink(t, db, "blog", 3)

	found, err := db.GetLinkByID(context.Background(), link.ID)
	if err != nil {
		t.Fatalf("GetLinkByID() error = %v", err)
	}
	if found.Title != "blog" || found.SortOrder != 3 || found.Icon != model.DefaultLinkIcon {
		t.Errorf("GetLinkByID() = %+v", found)
	}
}

func TestGetLinkByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetLinkByID(context.Background(), 12)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetLinkByID() error = %v, want ErrNotFound", err)
	}
}

func TestListLinks_SortOrderThenInsertion(t *testing.T) {
	db := newTestDB(t)
	createTestLink(t, db, "c", 2)
	createTestLink(t, db, "a", 1)
	createTestLink(t, db, "zero-first", 0)
	createTestLink(t, db, "d", 2)
	createTestLink(t, db, "zero-second", 0)

	links, err := db.ListLinks(context.Background())
	if err != nil {
		t.Fatalf("ListLinks() error = %v", err)
	}

	want := []string{"zero-first", "zero-second", "a", "c", "d"}
	if len(links) != len(want) {
		t.Fatalf("ListLinks() returned %d links, want %d", len(links), len(want))
	}
	for i, title := range want {
		if links[i].Title != title {
			t.Errorf("links[%d].Title = %q, want %q", i, links[i].Title, title)
		}
	}
}

func TestListLinks_Empty(t *testing.T) {
	db := newTestDB(t)

	links, err := db.ListLinks(context.Background())
	if err != nil {
		t.Fatalf("ListLinks() error = %v", err)
	}
	if links == nil || len(links) != 0 {
		t.Errorf("ListLinks() = %v, want empty non-nil slice", links)
	}
}

func TestUpdateLink(t *testing.T) {
	db := newTestDB(t)
	link := createTestLink(t, db, "old", 1)

	link.Title = "new"
	link.SortOrder = 9
	if err := db.UpdateLink(context.Background(), link); err != nil {
		t.Fatalf("UpdateLink() error = %v", err)
	}

	found, _ := db.GetLinkByID(context.Background(), link.ID)
	if found.Title != "new" || found.SortOrder != 9 {
		t.Errorf("after UpdateLink() = %+v", found)
	}
}

func TestDeleteLink_TwiceIsNotFound(t *testing.T) {
	db := newTestDB(t)
	link := createTestLink(t, db, "bye", 1)

	if err := db.DeleteLink(context.Background(), link.ID); err != nil {
		t.Fatalf("DeleteLink() error = %v", err)
	}

	err := db.DeleteLink(context.Background(), link.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second DeleteLink() error = %v, want ErrNotFound", err)
	}
}

func TestCountLinks(t *testing.T) {
	db := newTestDB(t)
	createTestLink(t, db, "one", 1)

	n, err := db.CountLinks(context.Background())
	if err != nil {
		t.Fatalf("CountLinks() error = %v", err)
	}
	if n != 1 {
		t.Errorf("CountLinks() = %d, want 1", n)
	}
}
