package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/joshcazalas/youtube-audio-bot/bot"
	"github.com/joshcazalas/youtube-audio-bot/config"
	"github.com/joshcazalas/youtube-audio-bot/download"
	"github.com/joshcazalas/youtube-audio-bot/health"
	"github.com/joshcazalas/youtube-audio-bot/logging"
)

func newServeCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the bot and the liveness endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *configFlag)
		},
	}
}

func runServe(ctx context.Context, configPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, path, exists, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closeLogs, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = closeLogs() }()

	if exists {
		logger.Info("configuration loaded", slog.String("path", path))
	} else {
		logger.Info("no configuration file, using defaults and environment")
	}

	lock, err := acquireLock(cfg.LockFile())
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("release instance lock failed", logging.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	download.StartSweeper(ctx, cfg.Download.ScratchDir, cfg.SweepInterval(), cfg.StaleAfter(), logger)

	extractor := download.NewYTDLP(
		download.WithBinary(cfg.Download.Binary),
		download.WithAudio(cfg.Download.Format, cfg.Download.AudioFormat, cfg.Download.AudioQuality),
	)
	service := download.NewService(extractor,
		download.WithScratchDir(cfg.Download.ScratchDir),
		download.WithMaxBytes(cfg.Download.MaxBytes),
		download.WithTimeout(cfg.DownloadTimeout()),
		download.WithLogger(logger),
	)
	handler := bot.NewHandler(service,
		bot.WithLanguage(cfg.Bot.Language),
		bot.WithWorkers(cfg.Bot.Workers),
		bot.WithHandlerLogger(logger),
	)

	connect := func(context.Context) ([]bot.Transport, error) {
		api, err := bot.DialTelegram(cfg.Telegram.Token, logger)
		if err != nil {
			return nil, err
		}
		transports := []bot.Transport{
			bot.NewTelegram(api, api.Self.UserName, handler, logger, cfg.Telegram.DropPendingUpdates),
		}
		if cfg.DiscordEnabled() {
			discord, err := bot.NewDiscord(cfg.Discord.Token, handler, logger)
			if err != nil {
				return nil, err
			}
			transports = append(transports, discord)
		}
		logger.Info("bot running",
			slog.String("language", cfg.Bot.Language),
			slog.Int("workers", handler.Workers()),
			slog.Bool("discord", cfg.DiscordEnabled()),
		)
		return transports, nil
	}

	liveness := health.NewServer(cfg.HealthAddr(), logger)
	if err := bot.Serve(ctx, liveness, connect); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("bot stopped")
	return nil
}

func acquireLock(path string) (*flock.Flock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("another bot instance already holds %s", path)
	}
	return lock, nil
}
