package sqlite

import (
	"context"
	"testing"
)

func TestGetAbout_NoRow(t *testing.T) {
	db := newTestDB(t)

	about, err := db.GetAbout(context.Background())
	if err != nil {
		t.Fatalf("GetAbout() error = %v", err)
	}
	if about.Text != "" {
		t.Errorf("Text = %q, want empty", about.Text)
	}
}

func TestUpdateAbout_NoRowIsNoop(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := db.UpdateAbout(ctx, "ignored"); err != nil {
		t.Fatalf("UpdateAbout() error = %v", err)
	}

	about, _ := db.GetAbout(ctx)
	if about.Text != "" {
		t.Errorf("Text = %q, want empty (no row to update)", about.Text)
	}
}

func TestEnsureAbout_InsertsOnce(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	inserted, err := db.EnsureAbout(ctx, "seed text")
	if err != nil {
		t.Fatalf("EnsureAbout() error = %v", err)
	}
	if !inserted {
		t.Error("EnsureAbout() = false on an empty table, want true")
	}

	inserted, err = db.EnsureAbout(ctx, "other seed")
	if err != nil {
		t.Fatalf("EnsureAbout() second call error = %v", err)
	}
	if inserted {
		t.Error("EnsureAbout() = true when the row exists, want false")
	}

	about, _ := db.GetAbout(ctx)
	if about.Text != "seed text" {
		t.Errorf("Text = %q, want %q", about.Text, "seed text")
	}
}

func TestUpdateAbout_ReplacesText(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	db.EnsureAbout(ctx, "seed text")

	if err := db.UpdateAbout(ctx, "hello there"); err != nil {
		t.Fatalf("UpdateAbout() error = %v", err)
	}

	about, err := db.GetAbout(ctx)
	if err != nil {
		t.Fatalf("GetAbout() error = %v", err)
	}
	if about.Text != "hello there" {
		t.Errorf("Text = %q, want %q", about.Text, "hello there")
	}
	if about.UpdatedAt.IsZero() {
		t.Error("UpdatedAt is zero")
	}
}

func TestAbout_SingleRowConstraint(t *testing.T) {
	db := newTestDB(t)

	_, err := db.conn.ExecContext(context.Background(),
		`INSERT INTO about (id, text, updated_at) VALUES (2, 'second', CURRENT_TIMESTAMP)`)
	if err == nil {
		t.Fatal("inserting a second about row should violate the CHECK constraint")
	}
}
