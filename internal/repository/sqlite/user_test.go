package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/personal-site/internal/apperror"
	"github.com/sakif/personal-site/internal/model"
)

// createTestUser creates a user and fails the test if it errors.
func createTestUser(t *testing.T, db *DB, username string) *model.User {
	t.Helper()
	user := &model.User{Username: username, PasswordHash: "$2a$04$fakehashfakehashfakehash"}
	if err := db.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// =========================================================================
// CREATE TESTS
// =========================================================================

func TestCreateUser(t *testing.T) {
	db := newTestDB(t)

	user := createTestUser(t, db, "admin")

	if user.ID == 0 {
		t.Error("CreateUser() did not set user.ID")
	}
	if user.CreatedAt.IsZero() {
		t.Error("CreateUser() did not set user.CreatedAt")
	}
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "admin")

	err := db.CreateUser(context.Background(), &model.User{Username: "admin", PasswordHash: "x"})
	if err == nil {
		t.Fatal("CreateUser() should fail for a duplicate username")
	}
}

// =========================================================================
// LOOKUP TESTS
// =========================================================================

func TestGetUserByUsername(t *testing.T) {
	db := newTestDB(t)
	created := createTestUser(t, db, "admin")

	found, err := db.GetUserByUsername(context.Background(), "admin")
	if err != nil {
		t.Fatalf("GetUserByUsername() error = %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("ID = %d, want %d", found.ID, created.ID)
	}
	if found.PasswordHash != created.PasswordHash {
		t.Errorf("PasswordHash = %q, want %q", found.PasswordHash, created.PasswordHash)
	}
}

func TestGetUserByUsername_IsExactMatch(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "admin")

	for _, name := range []string{"Admin", "admin ", "adm"} {
		_, err := db.GetUserByUsername(context.Background(), name)
		if !errors.Is(err, apperror.ErrNotFound) {
			t.Errorf("GetUserByUsername(%q) error = %v, want ErrNotFound", name, err)
		}
	}
}

func TestCountUsers(t *testing.T) {
	db := newTestDB(t)

	n, err := db.CountUsers(context.Background())
	if err != nil {
		t.Fatalf("CountUsers() error = %v", err)
	}
	if n != 0 {
		t.Errorf("CountUsers() = %d, want 0", n)
	}

	createTestUser(t, db, "one")
	createTestUser(t, db, "two")

	n, _ = db.CountUsers(context.Background())
	if n != 2 {
		t.Errorf("CountUsers() = %d, want 2", n)
	}
}

// =========================================================================
// PASSWORD ROTATION TESTS
// =========================================================================

func TestUpdatePassword(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "admin")

	if err := db.UpdatePassword(context.Background(), "admin", "new-hash"); err != nil {
		t.Fatalf("UpdatePassword() error = %v", err)
	}

	found, _ := db.GetUserByUsername(context.Background(), "admin")
	if found.PasswordHash != "new-hash" {
		t.Errorf("PasswordHash = %q, want %q", found.PasswordHash, "new-hash")
	}
}

func TestUpdatePassword_UnknownUser(t *testing.T) {
	db := newTestDB(t)

	err := db.UpdatePassword(context.Background(), "ghost", "hash")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("UpdatePassword() error = %v, want ErrNotFound", err)
	}
}
