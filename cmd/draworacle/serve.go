package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/rewired-gh/draworacle/internal/config"
	"github.com/rewired-gh/draworacle/internal/logger"
	"github.com/rewired-gh/draworacle/internal/oracle"
	"github.com/rewired-gh/draworacle/internal/server"
	"github.com/rewired-gh/draworacle/internal/storage"
	"github.com/rewired-gh/draworacle/internal/telegram"
)

func runServe(configPath string) error {
	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Setup logging with level support
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	defer logger.Sync()
	logger.Info("Configuration loaded from %s", configPath)

	var opts []oracle.Option

	// Initialize persistence
	if cfg.Storage.DBPath != "" {
		archive, err := storage.OpenSQLite(cfg.Storage.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		defer func() {
			if err := archive.Close(); err != nil {
				logger.Error("Failed to close archive: %v", err)
			}
		}()
		opts = append(opts, oracle.WithArchive(archive))
		logger.Info("Persisting imports to %s", cfg.Storage.DBPath)
	} else {
		logger.Debug("Persistence disabled, draw history is memory-only")
	}

	// Initialize Telegram client
	var telegramClient *telegram.Client
	if cfg.Telegram.Enabled {
		telegramClient, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Telegram.MaxRetries, cfg.Telegram.RetryDelayBase)
		if err != nil {
			return fmt.Errorf("failed to initialize Telegram client: %w", err)
		}
		opts = append(opts, oracle.WithListener(telegramClient))
		logger.Info("Telegram client initialized successfully")
	} else {
		logger.Debug("Telegram bot disabled")
	}

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	orc := oracle.New(storage.New(), opts...)
	if _, err := orc.Restore(ctx); err != nil {
		logger.Warn("Failed to restore archived import: %v", err)
	}

	srv := server.New(orc, cfg.Server)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})
	if telegramClient != nil {
		g.Go(func() error {
			return telegramClient.ListenForCommands(gctx, orc)
		})
	}

	err = g.Wait()
	orc.Wait()
	logger.Info("Service stopped")
	return err
}
