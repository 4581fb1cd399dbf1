package bot

import (
	"context"

	"github.com/joshcazalas/youtube-audio-bot/model"
)

// Chat is one conversation on a transport. Message identifiers are the
// transport's own, rendered as strings.
type Chat interface {
	// Reply sends text as a reply to replyTo and returns the new message id.
	Reply(ctx context.Context, replyTo, text string) (string, error)
	Edit(ctx context.Context, messageID, text string) error
	Delete(ctx context.Context, messageID string) error
	// SendAudio uploads the payload's file as a reply to replyTo.
	SendAudio(ctx context.Context, replyTo string, p *model.Payload) error
}

// Fetcher produces the audio for a link and hands it to deliver while the
// file still exists.
type Fetcher interface {
	Fetch(ctx context.Context, url string, deliver func(context.Context, *model.Payload) error) error
	MaxBytes() int64
}
