package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/personal-site/internal/auth"
	"github.com/sakif/personal-site/internal/model"
	"github.com/sakif/personal-site/internal/repository"
)

const (
	// AdminUsername is the account created on first start.
	AdminUsername = "admin"

	// DefaultAdminPassword is used when no initial password is configured.
	DefaultAdminPassword = "changeme"

	DefaultAboutText = "Welcome to my personal website. This space serves as a collection of my thoughts, conversations, and connections."
)

// DefaultLinks are inserted when the links table is empty.
var DefaultLinks = []model.Link{
	{Title: "Podcast", Description: "Gamecraft - Gaming, Esports & VC", URL: "https://www.gamnecraftpod.com", Icon: "🎙️", SortOrder: 1},
	{Title: "LinkedIn", Description: "Professional profile and network", URL: "https://www.linkedin.com/in/mitchlasky/", Icon: "💼", SortOrder: 2},
	{Title: "Twitter", Description: "Thoughts and commentary", URL: "https://www.x.com/mitchlasky", Icon: "𝕏", SortOrder: 3},
	{Title: "Instagram", Description: "Visual stories and moments", URL: "https://www.instagram.com/mitchlasky/", Icon: "📷", SortOrder: 4},
	{Title: "Medium", Description: "Long-form writing and essays", URL: "https://medium.com/@mitchlasky", Icon: "✍️", SortOrder: 5},
}

// SeedStore is everything the seeder writes to.
type SeedStore interface {
	repository.UserRepository
	repository.AboutRepository
	repository.LinkRepository
}

// Seeder fills an empty database with the initial admin account, about
// text and links. Every step checks before it writes, so Run is safe on
// every start.
type Seeder struct {
	store         SeedStore
	passwords     *auth.PasswordService
	adminPassword string
	logger        *slog.Logger
}

func NewSeeder(store SeedStore, passwords *auth.PasswordService, adminPassword string, logger *slog.Logger) *Seeder {
	if adminPassword == "" {
		adminPassword = DefaultAdminPassword
	}
	return &Seeder{
		store:         store,
		passwords:     passwords,
		adminPassword: adminPassword,
		logger:        logger,
	}
}

type seedStep struct {
	name string
	run  func(ctx context.Context) error
}

// Run executes the steps in order and stops at the first failure.
func (s *Seeder) Run(ctx context.Context) error {
	steps := []seedStep{
		{"admin user", s.seedAdmin},
		{"about text", s.seedAbout},
		{"links", s.seedLinks},
	}

	for _, step := range steps {
		if err := step.run(ctx); err != nil {
			return fmt.Errorf("seeding %s: %w", step.name, err)
		}
	}

	return nil
}

func (s *Seeder) seedAdmin(ctx context.Context) error {
	n, err := s.store.CountUsers(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hash, err := s.passwords.Hash(s.adminPassword)
	if err != nil {
		return err
	}

	if err := s.store.CreateUser(ctx, &model.User{Username: AdminUsername, PasswordHash: hash}); err != nil {
		return err
	}

	if s.adminPassword == DefaultAdminPassword {
		s.logger.Warn("admin user created with the default password; change it with adminctl set-password",
			slog.String("username", AdminUsername))
	} else {
		s.logger.Info("admin user created", slog.String("username", AdminUsername))
	}

	return nil
}

func (s *Seeder) seedAbout(ctx context.Context) error {
	created, err := s.store.EnsureAbout(ctx, DefaultAboutText)
	if err != nil {
		return err
	}
	if created {
		s.logger.Info("about text seeded")
	}
	return nil
}

func (s *Seeder) seedLinks(ctx context.Context) error {
	n, err := s.store.CountLinks(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	for _, l := range DefaultLinks {
		link := l
		if err := s.store.CreateLink(ctx, &link); err != nil {
			return err
		}
	}

	s.logger.Info("default links seeded", slog.Int("count", len(DefaultLinks)))

	return nil
}
