// Package server is the composition root: it opens the store, runs the
// startup sequence, wires services to handlers and owns the HTTP server.
//
//	config.Config → sqlite.DB → migrations → Seeder
//	             → upload.Store
//	             → services → handlers → chi routes
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/personal-site/internal/auth"
	"github.com/sakif/personal-site/internal/config"
	"github.com/sakif/personal-site/internal/handler"
	"github.com/sakif/personal-site/internal/middleware"
	sqliteRepo "github.com/sakif/personal-site/internal/repository/sqlite"
	"github.com/sakif/personal-site/internal/service"
	"github.com/sakif/personal-site/internal/upload"
)

// Server holds the router and the resources it must release on shutdown.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// Options tweak construction for tests.
type Options struct {
	// Passwords overrides the bcrypt service (tests use a low cost).
	Passwords *auth.PasswordService
}

// New builds a ready-to-serve Server. The database is migrated and seeded
// before New returns; any failure in that sequence aborts startup.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts Options) (*Server, error) {
	if cfg.DBPath != ":memory:" {
		dir := filepath.Dir(cfg.DBPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
		}
	}

	db, err := sqliteRepo.New(ctx, cfg.DBPath, logger)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	passwords := opts.Passwords
	if passwords == nil {
		passwords = auth.NewPasswordService()
	}

	if err := service.NewSeeder(db, passwords, cfg.AdminPassword, logger).Run(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("seeding database: %w", err)
	}

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating token service: %w", err)
	}

	uploads, err := upload.NewStore(cfg.MediaDir, cfg.MaxUploadBytes, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("preparing media directory: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	s.setupRoutes(routeDeps{
		auth:    handler.NewAuthHandler(service.NewAuthService(db, tokens, passwords, logger), logger),
		about:   handler.NewAboutHandler(service.NewAboutService(db, logger), logger),
		media:   handler.NewMediaHandler(service.NewMediaService(db, uploads, logger), uploads, logger),
		links:   handler.NewLinkHandler(service.NewLinkService(db, logger), logger),
		tokens:  tokens,
		uploads: uploads,
	})

	return s, nil
}

type routeDeps struct {
	auth    *handler.AuthHandler
	about   *handler.AboutHandler
	media   *handler.MediaHandler
	links   *handler.LinkHandler
	tokens  *auth.TokenService
	uploads *upload.Store
}

// setupRoutes registers middleware and routes.
//
//	POST   /api/login
//	GET    /api/me              (bearer)
//	GET    /api/about
//	PUT    /api/about           (bearer)
//	GET    /api/media
//	POST   /api/media           (bearer, multipart)
//	PUT    /api/media/{id}      (bearer)
//	DELETE /api/media/{id}      (bearer)
//	GET    /api/links
//	POST   /api/links           (bearer)
//	PUT    /api/links/{id}      (bearer)
//	DELETE /api/links/{id}      (bearer)
//	GET    /media/*             uploaded files
//	GET    /admin/*             admin dashboard
//	GET    /*                   public site
func (s *Server) setupRoutes(d routeDeps) {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)

	s.router.Route("/api", func(r chi.Router) {
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"Not found"}` + "\n"))
		})

		r.Post("/login", d.auth.HandleLogin)
		r.Get("/about", d.about.HandleGet)
		r.Get("/media", d.media.HandleList)
		r.Get("/links", d.links.HandleList)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireBearer(d.tokens))

			r.Get("/me", d.auth.HandleMe)
			r.Put("/about", d.about.HandleUpdate)
			r.Post("/media", d.media.HandleCreate)
			r.Put("/media/{id}", d.media.HandleUpdate)
			r.Delete("/media/{id}", d.media.HandleDelete)
			r.Post("/links", d.links.HandleCreate)
			r.Put("/links/{id}", d.links.HandleUpdate)
			r.Delete("/links/{id}", d.links.HandleDelete)
		})
	})

	s.router.Handle("/media/*", http.StripPrefix("/media", http.FileServer(http.Dir(d.uploads.Dir()))))

	s.router.Get("/admin", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/admin/", http.StatusMovedPermanently)
	})
	s.router.Handle("/admin/*", http.StripPrefix("/admin", http.FileServer(http.Dir(s.config.AdminDir))))

	s.router.Handle("/*", http.FileServer(http.Dir(s.config.PublicDir)))
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the database.
func (s *Server) Close() error {
	return s.db.Close()
}

// Start serves until SIGINT or SIGTERM, then drains in-flight requests and
// closes the database.
//
// Only the header read is time-limited: uploads of up to the configured
// cap may take minutes and must not be cut off by a body timeout.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("database", s.config.DBPath),
			slog.String("media_dir", s.config.MediaDir),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
