package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/personal-site/internal/apperror"
	"github.com/sakif/personal-site/internal/model"
	"github.com/sakif/personal-site/internal/repository"
)

// MaxAboutLength caps the about text in bytes.
const MaxAboutLength = 64 << 10

type AboutService struct {
	repo   repository.AboutRepository
	logger *slog.Logger
}

func NewAboutService(repo repository.AboutRepository, logger *slog.Logger) *AboutService {
	return &AboutService{repo: repo, logger: logger}
}

// Get returns the current about text; an empty text when none was ever set.
func (s *AboutService) Get(ctx context.Context) (*model.About, error) {
	about, err := s.repo.GetAbout(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting about text: %w", err)
	}
	return about, nil
}

// Update replaces the about text. The empty string is a valid text.
func (s *AboutService) Update(ctx context.Context, text string) error {
	if len(text) > MaxAboutLength {
		return apperror.ValidationFailed("text",
			fmt.Sprintf("text must be %d bytes or fewer", MaxAboutLength))
	}

	if err := s.repo.UpdateAbout(ctx, text); err != nil {
		s.logger.Error("failed to update about text", slog.String("error", err.Error()))
		return fmt.Errorf("updating about text: %w", err)
	}

	s.logger.Info("about text updated", slog.Int("length", len(text)))

	return nil
}
