package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sakif/personal-site/internal/apperror"
	"github.com/sakif/personal-site/internal/model"
	"github.com/sakif/personal-site/internal/repository"
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 5000

	// dateLayout is the only accepted form of a media date.
	dateLayout = "2006-01-02"
)

// FileRemover deletes stored media files. *upload.Store implements it;
// removing a file that is already gone must succeed.
type FileRemover interface {
	Remove(filename string) error
}

// MediaInput is the editable metadata of a media item.
type MediaInput struct {
	Title       string
	Description string
	Date        string // YYYY-MM-DD or empty
}

type MediaService struct {
	repo   repository.MediaRepository
	files  FileRemover
	logger *slog.Logger
}

func NewMediaService(repo repository.MediaRepository, files FileRemover, logger *slog.Logger) *MediaService {
	return &MediaService{repo: repo, files: files, logger: logger}
}

func (s *MediaService) List(ctx context.Context) ([]model.MediaItem, error) {
	items, err := s.repo.ListMedia(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing media: %w", err)
	}
	return items, nil
}

// Create records a file that has already been written to the media
// directory. If the metadata is invalid or the insert fails the file is
// removed again, so no unreferenced file is left behind.
func (s *MediaService) Create(ctx context.Context, filename string, in MediaInput) (*model.MediaItem, error) {
	item, err := buildMediaItem(in)
	if err != nil {
		s.discard(filename)
		return nil, err
	}
	item.Filename = filename

	if err := s.repo.CreateMedia(ctx, item); err != nil {
		s.logger.Error("failed to record media",
			slog.String("filename", filename),
			slog.String("error", err.Error()),
		)
		s.discard(filename)
		return nil, fmt.Errorf("creating media: %w", err)
	}

	s.logger.Info("media created",
		slog.Int64("id", item.ID),
		slog.String("filename", item.Filename),
	)

	return item, nil
}

// Update replaces the title, description and date of an item. The file is
// untouched.
func (s *MediaService) Update(ctx context.Context, id int64, in MediaInput) error {
	item, err := buildMediaItem(in)
	if err != nil {
		return err
	}
	item.ID = id

	if err := s.repo.UpdateMedia(ctx, item); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return err
		}
		return fmt.Errorf("updating media %d: %w", id, err)
	}

	s.logger.Info("media updated", slog.Int64("id", id))

	return nil
}

// Delete removes the file and then the record.
//
// A file that is already missing does not block the delete. Any other
// failure to remove the file aborts before the record is touched. If the
// record delete then fails the file is gone while the record stays; that
// divergence is logged at ERROR.
func (s *MediaService) Delete(ctx context.Context, id int64) error {
	item, err := s.repo.GetMediaByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return err
		}
		return fmt.Errorf("looking up media %d: %w", id, err)
	}

	if err := s.files.Remove(item.Filename); err != nil {
		s.logger.Error("failed to delete media file",
			slog.Int64("id", id),
			slog.String("filename", item.Filename),
			slog.String("error", err.Error()),
		)
		return err
	}

	if err := s.repo.DeleteMedia(ctx, id); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			// deleted concurrently; the outcome is the same
			return err
		}
		s.logger.Error("media file removed but record kept",
			slog.Int64("id", id),
			slog.String("filename", item.Filename),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("deleting media %d: %w", id, err)
	}

	s.logger.Info("media deleted",
		slog.Int64("id", id),
		slog.String("filename", item.Filename),
	)

	return nil
}

func (s *MediaService) discard(filename string) {
	if err := s.files.Remove(filename); err != nil {
		s.logger.Error("failed to discard media file",
			slog.String("filename", filename),
			slog.String("error", err.Error()),
		)
	}
}

// buildMediaItem validates in and returns the record fields it describes.
func buildMediaItem(in MediaInput) (*model.MediaItem, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperror.ValidationFailed("title", "Title is required")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return nil, apperror.ValidationFailed("title",
			fmt.Sprintf("Title must be %d characters or fewer", MaxTitleLength))
	}

	description := strings.TrimSpace(in.Description)
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return nil, apperror.ValidationFailed("description",
			fmt.Sprintf("Description must be %d characters or fewer", MaxDescriptionLength))
	}

	item := &model.MediaItem{Title: title, Description: description}

	if date := strings.TrimSpace(in.Date); date != "" {
		if _, err := time.Parse(dateLayout, date); err != nil {
			return nil, apperror.ValidationFailed("date", "Date must be in YYYY-MM-DD format")
		}
		item.Date = &date
	}

	return item, nil
}
