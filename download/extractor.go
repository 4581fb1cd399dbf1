package download

import (
	"context"

	"github.com/joshcazalas/youtube-audio-bot/model"
)

// Extractor is the external extraction tool.
type Extractor interface {
	// Probe reads metadata without downloading media.
	Probe(ctx context.Context, url string) (*model.VideoInfo, error)
	// Download fetches the media into dir and leaves the audio track there.
	Download(ctx context.Context, url, dir string) error
}
