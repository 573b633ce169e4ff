package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/userhub/internal/config"
	"github.com/iudanet/userhub/internal/logger"
	"github.com/iudanet/userhub/internal/server"
	"github.com/iudanet/userhub/internal/server/jwt"
	"github.com/iudanet/userhub/internal/server/storage"
	"github.com/iudanet/userhub/internal/server/storage/boltdb"
	"github.com/iudanet/userhub/internal/server/storage/sqlite"
	"github.com/iudanet/userhub/internal/server/users"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "userhub: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(cfg.LogLevel)
	log.Info("starting userhub server",
		slog.String("version", Version),
		slog.String("env", cfg.Env),
		slog.String("storage_driver", cfg.StorageDriver),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	userStorage, closer, err := openStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := closer.Close(); err != nil {
			log.Error("failed to close storage", slog.Any("error", err))
		}
	}()

	tokens, err := jwt.NewService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return fmt.Errorf("failed to create token service: %w", err)
	}

	service := users.NewService(log, userStorage, tokens)

	srv := server.New(log, cfg, service, Version)
	return srv.Run(ctx)
}

// openStorage открывает хранилище по выбранному драйверу
func openStorage(ctx context.Context, cfg *config.Config) (storage.UserStorage, io.Closer, error) {
	switch cfg.StorageDriver {
	case config.DriverBolt:
		s, err := boltdb.New(ctx, cfg.DatabasePath)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		s, err := sqlite.New(ctx, cfg.DatabasePath)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	}
}

func printVersion() {
	fmt.Printf("userhub server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
