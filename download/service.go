package download

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/joshcazalas/youtube-audio-bot/logging"
	"github.com/joshcazalas/youtube-audio-bot/model"
	"github.com/joshcazalas/youtube-audio-bot/title"
)

// DefaultMaxBytes is the largest file a bot may upload.
const DefaultMaxBytes int64 = 50 * 1024 * 1024

// SkippedExtensions mark files the extraction tool has not finished writing.
var SkippedExtensions = []string{".part", ".ytdl", ".temp"}

// Service runs the acquire, transform and rename steps for one link at a time
// per call. It holds no per-request state and is safe for concurrent use.
type Service struct {
	extractor  Extractor
	scratchDir string
	maxBytes   int64
	timeout    time.Duration
	logger     *slog.Logger
}

type Option func(*Service)

func WithScratchDir(dir string) Option {
	return func(s *Service) {
		s.scratchDir = dir
	}
}

func WithMaxBytes(n int64) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxBytes = n
		}
	}
}

// WithTimeout bounds a whole Fetch. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.timeout = d
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates a download service around an extractor.
func NewService(extractor Extractor, opts ...Option) *Service {
	s := &Service{
		extractor: extractor,
		maxBytes:  DefaultMaxBytes,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) MaxBytes() int64 {
	return s.maxBytes
}

// Fetch acquires the audio for url and hands it to deliver. The payload's
// file exists only for the duration of deliver; the scratch directory is
// removed when Fetch returns. Errors are *ExtractionError, ErrNoOutput, a
// *SizeError, or whatever deliver returned.
func (s *Service) Fetch(ctx context.Context, url string, deliver func(context.Context, *model.Payload) error) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	logger := logging.FromContext(ctx, s.logger)

	return WithScratch(s.scratchDir, func(dir string) error {
		info, err := s.extractor.Probe(ctx, url)
		if err != nil {
			return &ExtractionError{Stage: StageProbe, URL: url, Err: err}
		}

		match := title.Parse(info.TitleOrDefault(), title.Metadata{
			Artist:   info.ArtistName(),
			Creator:  info.CreatorName(),
			Uploader: info.Uploader,
		})
		logger.Info("fetching audio",
			slog.String("title", info.TitleOrDefault()),
			slog.String("artist", match.Artist),
			slog.String("track", match.Track),
			slog.String("matched_by", match.Source.String()),
			slog.String("duration", model.FormatDuration(info.Seconds())),
		)

		if err := s.extractor.Download(ctx, url, dir); err != nil {
			return &ExtractionError{Stage: StageDownload, URL: url, Err: err}
		}

		produced, err := locateOutput(dir)
		if err != nil {
			return err
		}

		ext := filepath.Ext(produced)
		artist, track, name := title.Filename(match, ext)
		target := filepath.Join(dir, title.DiskName(name, ext))
		if err := os.Rename(produced, target); err != nil {
			return fmt.Errorf("rename %s: %w", filepath.Base(produced), err)
		}

		stat, err := os.Stat(target)
		if err != nil {
			return fmt.Errorf("stat %s: %w", name, err)
		}
		if stat.Size() > s.maxBytes {
			return &SizeError{Size: stat.Size(), Limit: s.maxBytes}
		}

		logger.Info("audio ready",
			slog.String("file", name),
			slog.String("size", humanize.IBytes(uint64(stat.Size()))),
		)

		return deliver(ctx, &model.Payload{
			Path:      target,
			Filename:  name,
			Performer: artist,
			Title:     track,
			Duration:  info.Seconds(),
			Size:      stat.Size(),
		})
	})
}

// locateOutput returns the first finished regular file in dir.
func locateOutput(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read scratch dir: %w", err)
	}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if slices.Contains(SkippedExtensions, strings.ToLower(filepath.Ext(entry.Name()))) {
			continue
		}
		return filepath.Join(dir, entry.Name()), nil
	}
	return "", ErrNoOutput
}
