package bot

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/joshcazalas/youtube-audio-bot/logging"
	"github.com/joshcazalas/youtube-audio-bot/model"
)

// TelegramAPI is the part of *tgbotapi.BotAPI the transport uses.
type TelegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// DialTelegram authenticates against the Bot API and routes the client
// library's own log lines into logger.
func DialTelegram(token string, logger *slog.Logger) (*tgbotapi.BotAPI, error) {
	if err := tgbotapi.SetLogger(&logging.Printf{Logger: logger, Level: slog.LevelDebug}); err != nil {
		return nil, fmt.Errorf("set telegram logger: %w", err)
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect to telegram: %w", err)
	}
	logger.Info("telegram authorized", slog.String("account", api.Self.UserName))
	return api, nil
}

// Telegram long-polls the Bot API and feeds messages to a Handler.
type Telegram struct {
	api         TelegramAPI
	username    string // "/cmd@other" is ignored
	handler     *Handler
	logger      *slog.Logger
	dropPending bool
}

func NewTelegram(api TelegramAPI, username string, handler *Handler, logger *slog.Logger, dropPending bool) *Telegram {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Telegram{
		api:         api,
		username:    username,
		handler:     handler,
		logger:      logger.With(slog.String(logging.FieldTransport, "telegram")),
		dropPending: dropPending,
	}
}

// Run polls for updates until ctx is cancelled. Updates are handled by
// handler.Workers() goroutines.
func (t *Telegram) Run(ctx context.Context) error {
	if t.dropPending {
		if _, err := t.api.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: true}); err != nil {
			return fmt.Errorf("drop pending updates: %w", err)
		}
	}
	if _, err := t.api.Request(tgbotapi.NewSetMyCommands(t.botCommands()...)); err != nil {
		t.logger.Warn("register commands failed", logging.Error(err))
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := t.api.GetUpdatesChan(u)

	jobs := make(chan tgbotapi.Update)
	var wg sync.WaitGroup
	for i := 0; i < t.handler.Workers(); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for update := range jobs {
				t.dispatch(ctx, update)
			}
		}()
	}

	t.logger.Info("telegram polling started", slog.Int("workers", t.handler.Workers()))
	defer func() {
		t.api.StopReceivingUpdates()
		close(jobs)
		wg.Wait()
		t.logger.Info("telegram polling stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			select {
			case jobs <- update:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

func (t *Telegram) botCommands() []tgbotapi.BotCommand {
	cmds := t.handler.Commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]tgbotapi.BotCommand, 0, len(names))
	for _, name := range names {
		out = append(out, tgbotapi.BotCommand{Command: name, Description: cmds[name]})
	}
	return out
}

func (t *Telegram) dispatch(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.Chat == nil || msg.Text == "" {
		return
	}

	req := model.Request{
		Text:       msg.Text,
		MessageID:  strconv.Itoa(msg.MessageID),
		SenderName: telegramSender(msg.From),
		BotName:    t.username,
	}
	if parent := msg.ReplyToMessage; parent != nil {
		req.ParentID = strconv.Itoa(parent.MessageID)
		req.ParentText = parent.Text
	}

	logger := t.logger.With(slog.Int64(logging.FieldChatID, msg.Chat.ID))
	chat := &telegramChat{api: t.api, chatID: msg.Chat.ID}
	t.handler.Handle(logging.WithLogger(ctx, logger), chat, req)
}

func telegramSender(u *tgbotapi.User) string {
	if u == nil {
		return ""
	}
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.UserName
}

type telegramChat struct {
	api    TelegramAPI
	chatID int64
}

func (c *telegramChat) Reply(_ context.Context, replyTo, text string) (string, error) {
	msg := tgbotapi.NewMessage(c.chatID, text)
	msg.ReplyToMessageID = messageID(replyTo)
	sent, err := c.api.Send(msg)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(sent.MessageID), nil
}

func (c *telegramChat) Edit(_ context.Context, id, text string) error {
	_, err := c.api.Send(tgbotapi.NewEditMessageText(c.chatID, messageID(id), text))
	return err
}

func (c *telegramChat) Delete(_ context.Context, id string) error {
	_, err := c.api.Request(tgbotapi.NewDeleteMessage(c.chatID, messageID(id)))
	return err
}

// SendAudio uploads under p.Filename, which may be longer than the file's
// on-disk name.
func (c *telegramChat) SendAudio(_ context.Context, replyTo string, p *model.Payload) error {
	f, err := os.Open(p.Path)
	if err != nil {
		return fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	audio := tgbotapi.NewAudio(c.chatID, tgbotapi.FileReader{Name: p.Filename, Reader: f})
	audio.Title = p.Title
	audio.Performer = p.Performer
	audio.Duration = p.Duration
	audio.Caption = p.Caption()
	audio.ReplyToMessageID = messageID(replyTo)
	_, err = c.api.Send(audio)
	return err
}

// messageID converts an opaque id back to Telegram's integer form. Empty or
// malformed ids become 0, which Telegram treats as "no reply".
func messageID(id string) int {
	n, err := strconv.Atoi(id)
	if err != nil {
		return 0
	}
	return n
}
