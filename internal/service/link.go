package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/sakif/personal-site/internal/apperror"
	"github.com/sakif/personal-site/internal/model"
	"github.com/sakif/personal-site/internal/repository"
)

const (
	MaxURLLength  = 2048
	MaxIconLength = 16
)

// LinkInput is the client-editable part of a link. A nil SortOrder means
// "not given": 0 on create, unchanged on update. An empty Icon becomes
// model.DefaultLinkIcon.
type LinkInput struct {
	Title       string
	Description string
	URL         string
	Icon        string
	SortOrder   *int
}

type LinkService struct {
	repo   repository.LinkRepository
	logger *slog.Logger
}

func NewLinkService(repo repository.LinkRepository, logger *slog.Logger) *LinkService {
	return &LinkService{repo: repo, logger: logger}
}

// List returns links by ascending sort order, ties by id.
func (s *LinkService) List(ctx context.Context) ([]model.Link, error) {
	links, err := s.repo.ListLinks(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing links: %w", err)
	}
	return links, nil
}

func (s *LinkService) Create(ctx context.Context, in LinkInput) (*model.Link, error) {
	link := &model.Link{}
	if err := applyLinkInput(link, in); err != nil {
		return nil, err
	}

	if err := s.repo.CreateLink(ctx, link); err != nil {
		s.logger.Error("failed to create link",
			slog.String("title", link.Title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating link: %w", err)
	}

	s.logger.Info("link created",
		slog.Int64("id", link.ID),
		slog.String("title", link.Title),
	)

	return link, nil
}

// Update replaces an existing link's fields. Other links keep their sort
// order; nothing is renumbered.
func (s *LinkService) Update(ctx context.Context, id int64, in LinkInput) error {
	link, err := s.repo.GetLinkByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return err
		}
		return fmt.Errorf("looking up link %d: %w", id, err)
	}

	if err := applyLinkInput(link, in); err != nil {
		return err
	}

	if err := s.repo.UpdateLink(ctx, link); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return err
		}
		return fmt.Errorf("updating link %d: %w", id, err)
	}

	s.logger.Info("link updated", slog.Int64("id", id))

	return nil
}

func (s *LinkService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteLink(ctx, id); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return err
		}
		return fmt.Errorf("deleting link %d: %w", id, err)
	}

	s.logger.Info("link deleted", slog.Int64("id", id))

	return nil
}

// applyLinkInput validates in and copies it onto link.
func applyLinkInput(link *model.Link, in LinkInput) error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return apperror.ValidationFailed("title", "Title is required")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return apperror.ValidationFailed("title",
			fmt.Sprintf("Title must be %d characters or fewer", MaxTitleLength))
	}

	description := strings.TrimSpace(in.Description)
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return apperror.ValidationFailed("description",
			fmt.Sprintf("Description must be %d characters or fewer", MaxDescriptionLength))
	}

	rawURL := strings.TrimSpace(in.URL)
	if rawURL == "" {
		return apperror.ValidationFailed("url", "URL is required")
	}
	if err := validateLinkURL(rawURL); err != nil {
		return err
	}

	icon := strings.TrimSpace(in.Icon)
	if icon == "" {
		icon = model.DefaultLinkIcon
	}
	if utf8.RuneCountInString(icon) > MaxIconLength {
		return apperror.ValidationFailed("icon",
			fmt.Sprintf("Icon must be %d characters or fewer", MaxIconLength))
	}

	link.Title = title
	link.Description = description
	link.URL = rawURL
	link.Icon = icon
	if in.SortOrder != nil {
		link.SortOrder = *in.SortOrder
	}

	return nil
}

// validateLinkURL accepts absolute http and https URLs only. Anything else
// (javascript:, data:, relative paths) would end up in an href on the
// public page.
func validateLinkURL(raw string) error {
	if len(raw) > MaxURLLength {
		return apperror.ValidationFailed("url",
			fmt.Sprintf("URL must be %d characters or fewer", MaxURLLength))
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return apperror.ValidationFailed("url", "URL must be an absolute http or https URL")
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return nil
	default:
		return apperror.ValidationFailed("url", "URL must be an absolute http or https URL")
	}
}
