package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sakif/personal-site/internal/apperror"
)

func TestAbout_GetBeforeSeed(t *testing.T) {
	svc := NewAboutService(newFakeStore(), discardLogger())

	about, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if about.Text != "" {
		t.Errorf("Text = %q, want empty", about.Text)
	}
}

func TestAbout_UpdateThenGet(t *testing.T) {
	store := newFakeStore()
	store.EnsureAbout(context.Background(), "seed")
	svc := NewAboutService(store, discardLogger())
	ctx := context.Background()

	for _, text := range []string{"Hello", ""} {
		if err := svc.Update(ctx, text); err != nil {
			t.Fatalf("Update(%q) error = %v", text, err)
		}
		about, err := svc.Get(ctx)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if about.Text != text {
			t.Errorf("Text = %q, want %q", about.Text, text)
		}
	}
}

func TestAbout_UpdateWithoutRowIsNoop(t *testing.T) {
	svc := NewAboutService(newFakeStore(), discardLogger())

	if err := svc.Update(context.Background(), "Hello"); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	about, _ := svc.Get(context.Background())
	if about.Text != "" {
		t.Errorf("Text = %q, want empty", about.Text)
	}
}

func TestAbout_UpdateTooLong(t *testing.T) {
	svc := NewAboutService(newFakeStore(), discardLogger())

	err := svc.Update(context.Background(), strings.Repeat("x", MaxAboutLength+1))
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}
