package download

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lrstanley/go-ytdlp"

	"github.com/joshcazalas/youtube-audio-bot/model"
)

// Defaults for the audio produced by YTDLP.
const (
	DefaultFormat       = "bestaudio/best"
	DefaultAudioFormat  = "mp3"
	DefaultAudioQuality = "192K"
)

// YTDLP runs yt-dlp through go-ytdlp.
type YTDLP struct {
	binary       string
	format       string
	audioFormat  string
	audioQuality string
}

type YTDLPOption func(*YTDLP)

func WithBinary(path string) YTDLPOption {
	return func(y *YTDLP) {
		y.binary = path
	}
}

// WithAudio sets the stream selector, target codec and codec quality.
func WithAudio(format, audioFormat, audioQuality string) YTDLPOption {
	return func(y *YTDLP) {
		if format != "" {
			y.format = format
		}
		if audioFormat != "" {
			y.audioFormat = audioFormat
		}
		if audioQuality != "" {
			y.audioQuality = audioQuality
		}
	}
}

// NewYTDLP creates an extractor that targets the best audio stream and
// transcodes it to mp3 at 192 kbit/s unless told otherwise.
func NewYTDLP(opts ...YTDLPOption) *YTDLP {
	y := &YTDLP{
		format:       DefaultFormat,
		audioFormat:  DefaultAudioFormat,
		audioQuality: DefaultAudioQuality,
	}
	for _, opt := range opts {
		opt(y)
	}
	return y
}

func (y *YTDLP) command() *ytdlp.Command {
	cmd := ytdlp.New().NoPlaylist().NoWarnings()
	if y.binary != "" {
		cmd = cmd.SetExecutable(y.binary)
	}
	return cmd
}

func (y *YTDLP) Probe(ctx context.Context, url string) (*model.VideoInfo, error) {
	res, err := y.command().SkipDownload().DumpJSON().Run(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("yt-dlp probe failed: %w", err)
	}
	return decodeVideoInfo(res.Stdout)
}

func (y *YTDLP) Download(ctx context.Context, url, dir string) error {
	_, err := y.command().
		Format(y.format).
		ExtractAudio().
		AudioFormat(y.audioFormat).
		AudioQuality(y.audioQuality).
		Output(filepath.Join(dir, "%(id)s.%(ext)s")).
		Run(ctx, url)
	if err != nil {
		return fmt.Errorf("yt-dlp download failed: %w", err)
	}
	return nil
}

// decodeVideoInfo reads the first JSON object line of --dump-json output.
func decodeVideoInfo(stdout string) (*model.VideoInfo, error) {
	scanner := bufio.NewScanner(strings.NewReader(stdout))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "{") {
			continue
		}
		var info model.VideoInfo
		if err := json.Unmarshal([]byte(line), &info); err != nil {
			return nil, fmt.Errorf("decode yt-dlp metadata: %w", err)
		}
		return &info, nil
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read yt-dlp output: %w", err)
	}
	return nil, fmt.Errorf("yt-dlp returned no metadata")
}
