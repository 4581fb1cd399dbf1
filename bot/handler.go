package bot

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"golang.org/x/text/message"

	"github.com/joshcazalas/youtube-audio-bot/download"
	"github.com/joshcazalas/youtube-audio-bot/link"
	"github.com/joshcazalas/youtube-audio-bot/logging"
	"github.com/joshcazalas/youtube-audio-bot/model"
)

// Handler turns inbound messages into audio replies. One Handler is shared
// by every transport.
type Handler struct {
	fetcher  Fetcher
	printer  *message.Printer
	logger   *slog.Logger
	commands map[string]Command
	slots    chan struct{}
}

type HandlerOption func(*Handler)

// WithLanguage selects the reply language ("en" or "km").
func WithLanguage(lang string) HandlerOption {
	return func(h *Handler) {
		h.printer = newPrinter(lang)
	}
}

func WithHandlerLogger(logger *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithWorkers bounds how many requests are processed at once across all
// transports.
func WithWorkers(n int) HandlerOption {
	return func(h *Handler) {
		if n > 0 {
			h.slots = make(chan struct{}, n)
		}
	}
}

func NewHandler(fetcher Fetcher, opts ...HandlerOption) *Handler {
	h := &Handler{
		fetcher: fetcher,
		printer: newPrinter("en"),
		logger:  logging.NewNop(),
		slots:   make(chan struct{}, 1),
	}
	h.commands = defaultCommands()
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) Workers() int {
	return cap(h.slots)
}

// Handle processes one inbound message. It blocks while all worker slots
// are busy and never panics.
func (h *Handler) Handle(ctx context.Context, chat Chat, req model.Request) {
	select {
	case h.slots <- struct{}{}:
	case <-ctx.Done():
		return
	}
	defer func() { <-h.slots }()

	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	logger := logging.FromContext(ctx, h.logger).With(slog.String(logging.FieldRequestID, req.ID))
	ctx = logging.WithLogger(ctx, logger)

	defer h.recoverUpdate(ctx, chat, req)

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return
	}
	if name, addressee, ok := parseCommand(text); ok {
		if addressee != "" && !strings.EqualFold(addressee, req.BotName) {
			return
		}
		h.runCommand(ctx, chat, req, name)
		return
	}

	url, replyTo, ok := selectLink(req)
	if !ok {
		logger.Info("rejected message without a link")
		h.reply(ctx, chat, req.MessageID, h.printer.Sprintf(msgInvalidLink))
		return
	}

	h.process(ctx, chat, req, url, replyTo)
}

// selectLink picks the link to fetch and the message the audio should quote.
// A link in the parent message wins, and the audio then quotes the parent.
func selectLink(req model.Request) (url, replyTo string, ok bool) {
	if req.IsReply() {
		if parent := strings.TrimSpace(req.ParentText); link.IsSupported(parent) {
			return parent, req.ParentID, true
		}
	}
	if text := strings.TrimSpace(req.Text); link.IsSupported(text) {
		return text, req.MessageID, true
	}
	return "", "", false
}

func (h *Handler) process(ctx context.Context, chat Chat, req model.Request, url, replyTo string) {
	logger := logging.FromContext(ctx, h.logger).With(slog.String(logging.FieldURL, url))
	ctx = logging.WithLogger(ctx, logger)

	ackID, err := chat.Reply(ctx, req.MessageID, h.printer.Sprintf(msgProcessing))
	if err != nil {
		logger.Error("send acknowledgement failed", logging.Error(err))
		return
	}

	err = h.fetcher.Fetch(ctx, url, func(ctx context.Context, p *model.Payload) error {
		if err := chat.Edit(ctx, ackID, h.printer.Sprintf(msgUploading)); err != nil {
			logger.Warn("edit acknowledgement failed", logging.Error(err))
		}
		return chat.SendAudio(ctx, replyTo, p)
	})
	if err != nil {
		logger.Error("request failed", logging.Error(err))
		if editErr := chat.Edit(ctx, ackID, h.failureText(err)); editErr != nil {
			logger.Warn("edit acknowledgement failed", logging.Error(editErr))
		}
		return
	}

	if err := chat.Delete(ctx, ackID); err != nil {
		logger.Warn("delete acknowledgement failed", logging.Error(err))
	}
	logger.Info("audio delivered")
}

// failureText maps a Fetch error to the message shown in place of the
// acknowledgement.
func (h *Handler) failureText(err error) string {
	var extractErr *download.ExtractionError
	switch {
	case errors.Is(err, download.ErrTooLarge):
		return h.printer.Sprintf(msgTooLarge, humanize.IBytes(uint64(h.fetcher.MaxBytes())))
	case errors.Is(err, download.ErrNoOutput):
		return h.printer.Sprintf(msgNoOutput)
	case errors.As(err, &extractErr):
		return h.printer.Sprintf(msgExtractFailed)
	default:
		return h.printer.Sprintf(msgGenericFailure)
	}
}

func (h *Handler) reply(ctx context.Context, chat Chat, replyTo, text string) {
	if _, err := chat.Reply(ctx, replyTo, text); err != nil {
		logging.FromContext(ctx, h.logger).Error("send reply failed", logging.Error(err))
	}
}
