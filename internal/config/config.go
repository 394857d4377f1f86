// Package config builds the server settings from defaults, an optional
// .env file and the process environment, in that order of precedence
// (later wins).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret is a development placeholder. Startup warns while it is
// in use.
const DefaultJWTSecret = "dev-only-secret-change-me-please"

// Config holds runtime settings for the site server.
type Config struct {
	Port           int
	JWTSecret      string
	TokenTTL       time.Duration // 0 issues tokens without expiry
	DBPath         string
	MediaDir       string
	PublicDir      string
	AdminDir       string
	AdminPassword  string // initial password for the seeded admin user
	LogLevel       slog.Level
	MaxUploadBytes int64
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.Port = 3000
	c.JWTSecret = DefaultJWTSecret
	c.TokenTTL = 0
	c.DBPath = "data/site.db"
	c.MediaDir = "public/media"
	c.PublicDir = "public"
	c.AdminDir = "admin"
	c.AdminPassword = "changeme"
	c.LogLevel = slog.LevelInfo
	c.MaxUploadBytes = 2 << 30
}

// Load applies defaults, then envFile if it exists, then the environment.
// Variables already set in the environment are not overridden by the file.
// An empty envFile skips the file step.
func Load(envFile string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: reading %s: %w", envFile, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv overlays every variable lookup finds. Invalid values are errors,
// never silently replaced by the default.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	var errs []error

	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	str("JWT_SECRET", &c.JWTSecret)
	str("DB_PATH", &c.DBPath)
	str("MEDIA_DIR", &c.MediaDir)
	str("PUBLIC_DIR", &c.PublicDir)
	str("ADMIN_DIR", &c.AdminDir)
	str("ADMIN_PASSWORD", &c.AdminPassword)

	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port < 1 || port > 65535 {
			errs = append(errs, fmt.Errorf("config: invalid PORT %q", v))
		} else {
			c.Port = port
		}
	}

	if v, ok := lookup("TOKEN_TTL"); ok && v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil || ttl < 0 {
			errs = append(errs, fmt.Errorf("config: invalid TOKEN_TTL %q (want a duration such as 24h, or 0)", v))
		} else {
			c.TokenTTL = ttl
		}
	}

	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(v)); err != nil {
			errs = append(errs, fmt.Errorf("config: invalid LOG_LEVEL %q", v))
		} else {
			c.LogLevel = level
		}
	}

	if v, ok := lookup("MAX_UPLOAD_BYTES"); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			errs = append(errs, fmt.Errorf("config: invalid MAX_UPLOAD_BYTES %q", v))
		} else {
			c.MaxUploadBytes = n
		}
	}

	return errors.Join(errs...)
}

// Warnings lists settings that are acceptable for development but unsafe
// in production.
func (c *Config) Warnings() []string {
	var w []string
	if c.JWTSecret == DefaultJWTSecret {
		w = append(w, "JWT_SECRET is not set; tokens are signed with a public development secret")
	}
	if c.TokenTTL == 0 {
		w = append(w, "TOKEN_TTL is 0; issued tokens never expire")
	}
	return w
}
