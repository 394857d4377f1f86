// Command adminctl performs administrative tasks against the site database
// while the server is stopped or running.
//
// Usage:
//
//	adminctl set-password -username admin -password 'new secret'
//	ADMIN_NEW_PASSWORD='new secret' adminctl set-password
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sakif/personal-site/internal/apperror"
	"github.com/sakif/personal-site/internal/auth"
	"github.com/sakif/personal-site/internal/config"
	sqliteRepo "github.com/sakif/personal-site/internal/repository/sqlite"
	"github.com/sakif/personal-site/internal/service"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "set-password":
		err = setPassword(ctx, os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "adminctl: unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "adminctl: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: adminctl set-password [-username admin] [-password secret]")
	fmt.Fprintln(os.Stderr, "       the password may also be given in ADMIN_NEW_PASSWORD")
}

func setPassword(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("set-password", flag.ContinueOnError)
	username := fs.String("username", service.AdminUsername, "account to update")
	password := fs.String("password", "", "new password (default $ADMIN_NEW_PASSWORD)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *password == "" {
		*password = os.Getenv("ADMIN_NEW_PASSWORD")
	}
	if *password == "" {
		return errors.New("no password given; use -password or ADMIN_NEW_PASSWORD")
	}

	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	db, err := sqliteRepo.New(ctx, cfg.DBPath, logger)
	if err != nil {
		return fmt.Errorf("opening %s: %w", cfg.DBPath, err)
	}
	defer db.Close()

	// the token service is never used for a password change
	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return err
	}

	svc := service.NewAuthService(db, tokens, auth.NewPasswordService(), logger)
	if err := svc.SetPassword(ctx, *username, *password); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return fmt.Errorf("no user named %q", *username)
		}
		return err
	}

	fmt.Printf("password updated for %s\n", *username)
	return nil
}
