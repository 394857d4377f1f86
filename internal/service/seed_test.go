package service

import (
	"context"
	"testing"

	"github.com/sakif/personal-site/internal/auth"
	"github.com/sakif/personal-site/internal/model"
)

func TestSeeder_EmptyStore(t *testing.T) {
	store := newFakeStore()
	passwords := auth.NewPasswordServiceForTest(4)
	ctx := context.Background()

	if err := NewSeeder(store, passwords, "", discardLogger()).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	admin, ok := store.users[AdminUsername]
	if !ok {
		t.Fatal("admin user not created")
	}
	if err := passwords.Verify(admin.PasswordHash, DefaultAdminPassword); err != nil {
		t.Errorf("admin password is not the default: %v", err)
	}

	if store.about == nil || store.about.Text != DefaultAboutText {
		t.Errorf("about = %+v, want seed text", store.about)
	}

	links, _ := store.ListLinks(ctx)
	if len(links) != len(DefaultLinks) {
		t.Fatalf("len(links) = %d, want %d", len(links), len(DefaultLinks))
	}
	for i, l := range links {
		if l.SortOrder != i+1 || l.Title != DefaultLinks[i].Title {
			t.Errorf("links[%d] = %s/%d, want %s/%d", i, l.Title, l.SortOrder, DefaultLinks[i].Title, i+1)
		}
	}
}

func TestSeeder_ConfiguredPassword(t *testing.T) {
	store := newFakeStore()
	passwords := auth.NewPasswordServiceForTest(4)

	if err := NewSeeder(store, passwords, "s3cret", discardLogger()).Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if err := passwords.Verify(store.users[AdminUsername].PasswordHash, "s3cret"); err != nil {
		t.Errorf("configured password not used: %v", err)
	}
}

func TestSeeder_IsIdempotent(t *testing.T) {
	store := newFakeStore()
	passwords := auth.NewPasswordServiceForTest(4)
	ctx := context.Background()
	seeder := NewSeeder(store, passwords, "", discardLogger())

	if err := seeder.Run(ctx); err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	hash := store.users[AdminUsername].PasswordHash
	store.UpdateAbout(ctx, "edited")

	if err := seeder.Run(ctx); err != nil {
		t.Fatalf("second Run() error = %v", err)
	}

	if len(store.users) != 1 || store.users[AdminUsername].PasswordHash != hash {
		t.Error("admin user was recreated")
	}
	if store.about.Text != "edited" {
		t.Errorf("about text overwritten: %q", store.about.Text)
	}
	if len(store.links) != len(DefaultLinks) {
		t.Errorf("len(links) = %d, want %d", len(store.links), len(DefaultLinks))
	}
}

func TestSeeder_KeepsExistingLinks(t *testing.T) {
	store := newFakeStore()
	ctx := context.Background()
	store.CreateLink(ctx, &model.Link{Title: "Mine", URL: "https://mine.example"})

	if err := NewSeeder(store, auth.NewPasswordServiceForTest(4), "", discardLogger()).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(store.links) != 1 {
		t.Errorf("len(links) = %d, want the single existing link", len(store.links))
	}
}
