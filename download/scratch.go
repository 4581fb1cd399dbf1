package download

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ScratchPrefix names every per-request directory so stale ones can be
// recognised after a crash.
const ScratchPrefix = "audiobot-"

// WithScratch creates a private directory under root (the system temp dir
// when root is empty), runs fn with it, and removes it afterwards whatever fn
// does, panics included.
func WithScratch(root string, fn func(dir string) error) (err error) {
	if root != "" {
		if err := os.MkdirAll(root, 0o755); err != nil {
			return fmt.Errorf("create scratch root: %w", err)
		}
	}
	dir, err := os.MkdirTemp(root, ScratchPrefix+"*")
	if err != nil {
		return fmt.Errorf("create scratch dir: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(dir); rmErr != nil && err == nil {
			err = fmt.Errorf("remove scratch dir: %w", rmErr)
		}
	}()
	return fn(dir)
}

// SweepStale removes scratch directories under root older than maxAge. Only
// entries carrying ScratchPrefix are touched.
func SweepStale(root string, maxAge time.Duration, logger *slog.Logger) (int, error) {
	if root == "" {
		root = os.TempDir()
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return 0, fmt.Errorf("read scratch root %s: %w", root, err)
	}

	now := time.Now()
	removed := 0
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), ScratchPrefix) {
			continue
		}
		path := filepath.Join(root, entry.Name())
		info, err := entry.Info()
		if err != nil {
			logger.Warn("stale sweep: stat failed", slog.String("path", path), slog.String("error", err.Error()))
			continue
		}
		if now.Sub(info.ModTime()) <= maxAge {
			continue
		}
		if err := os.RemoveAll(path); err != nil {
			logger.Warn("stale sweep: remove failed", slog.String("path", path), slog.String("error", err.Error()))
			continue
		}
		logger.Info("stale sweep: removed scratch dir", slog.String("path", path))
		removed++
	}
	return removed, nil
}

// StartSweeper runs SweepStale now and then every interval until ctx ends.
func StartSweeper(ctx context.Context, root string, interval, maxAge time.Duration, logger *slog.Logger) {
	sweep := func() {
		if _, err := SweepStale(root, maxAge, logger); err != nil {
			logger.Warn("stale sweep failed", slog.String("error", err.Error()))
		}
	}
	sweep()
	if interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sweep()
			}
		}
	}()
}
