package bot

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/joshcazalas/youtube-audio-bot/link"
	"github.com/joshcazalas/youtube-audio-bot/logging"
	"github.com/joshcazalas/youtube-audio-bot/model"
)

// DiscordSession is the part of *discordgo.Session the transport uses.
type DiscordSession interface {
	ChannelMessageSendReply(channelID, content string, reference *discordgo.MessageReference, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEdit(channelID, messageID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Discord listens for channel messages over the gateway and feeds them to
// the same Handler as Telegram.
type Discord struct {
	session *discordgo.Session
	handler *Handler
	logger  *slog.Logger
	ctx     context.Context
}

// NewDiscord prepares a gateway session. Nothing connects until Run.
func NewDiscord(token string, handler *Handler, logger *slog.Logger) (*Discord, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	if logger == nil {
		logger = logging.NewNop()
	}
	d := &Discord{
		session: session,
		handler: handler,
		logger:  logger.With(slog.String(logging.FieldTransport, "discord")),
		ctx:     context.Background(),
	}
	session.AddHandler(d.onMessage)
	return d, nil
}

// Run opens the gateway connection and blocks until ctx is cancelled.
func (d *Discord) Run(ctx context.Context) error {
	d.ctx = ctx
	if err := d.session.Open(); err != nil {
		return fmt.Errorf("open discord gateway: %w", err)
	}
	d.logger.Info("discord gateway connected")

	<-ctx.Done()
	if err := d.session.Close(); err != nil {
		d.logger.Warn("close discord gateway failed", logging.Error(err))
	}
	d.logger.Info("discord gateway closed")
	return nil
}

func (d *Discord) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	var selfID string
	if s.State != nil && s.State.User != nil {
		selfID = s.State.User.ID
	}
	if m.Author.ID == selfID {
		return
	}
	d.dispatch(d.ctx, s, selfID, m.Message)
}

func (d *Discord) dispatch(ctx context.Context, session DiscordSession, selfID string, m *discordgo.Message) {
	if m.Content == "" {
		return
	}
	// Guild channels carry ordinary conversation; only DMs get the
	// invalid-link reply for arbitrary text.
	if m.GuildID != "" && !addressedToBot(selfID, m) {
		return
	}

	req := model.Request{
		Text:       stripMention(m.Content, selfID),
		MessageID:  m.ID,
		SenderName: discordSender(m.Author),
	}
	if parent := m.ReferencedMessage; parent != nil {
		req.ParentID = parent.ID
		req.ParentText = parent.Content
	}

	logger := d.logger.With(slog.String(logging.FieldChatID, m.ChannelID))
	chat := &discordChat{session: session, channelID: m.ChannelID, guildID: m.GuildID}
	d.handler.Handle(logging.WithLogger(ctx, logger), chat, req)
}

func addressedToBot(selfID string, m *discordgo.Message) bool {
	if link.IsSupported(m.Content) {
		return true
	}
	if parent := m.ReferencedMessage; parent != nil {
		if link.IsSupported(parent.Content) {
			return true
		}
		if selfID != "" && parent.Author != nil && parent.Author.ID == selfID {
			return true
		}
	}
	if selfID == "" {
		return false
	}
	for _, u := range m.Mentions {
		if u != nil && u.ID == selfID {
			return true
		}
	}
	return false
}

func stripMention(content, selfID string) string {
	if selfID == "" {
		return content
	}
	content = strings.ReplaceAll(content, "<@"+selfID+">", "")
	content = strings.ReplaceAll(content, "<@!"+selfID+">", "")
	return strings.TrimSpace(content)
}

func discordSender(u *discordgo.User) string {
	if u == nil {
		return ""
	}
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}

type discordChat struct {
	session   DiscordSession
	channelID string
	guildID   string
}

func (c *discordChat) reference(messageID string) *discordgo.MessageReference {
	if messageID == "" {
		return nil
	}
	return &discordgo.MessageReference{
		MessageID: messageID,
		ChannelID: c.channelID,
		GuildID:   c.guildID,
	}
}

func (c *discordChat) Reply(ctx context.Context, replyTo, text string) (string, error) {
	msg, err := c.session.ChannelMessageSendReply(c.channelID, text, c.reference(replyTo), discordgo.WithContext(ctx))
	if err != nil {
		return "", err
	}
	return msg.ID, nil
}

func (c *discordChat) Edit(ctx context.Context, messageID, text string) error {
	_, err := c.session.ChannelMessageEdit(c.channelID, messageID, text, discordgo.WithContext(ctx))
	return err
}

func (c *discordChat) Delete(ctx context.Context, messageID string) error {
	return c.session.ChannelMessageDelete(c.channelID, messageID, discordgo.WithContext(ctx))
}

func (c *discordChat) SendAudio(ctx context.Context, replyTo string, p *model.Payload) error {
	f, err := os.Open(p.Path)
	if err != nil {
		return fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	_, err = c.session.ChannelMessageSendComplex(c.channelID, &discordgo.MessageSend{
		Content:   p.Caption(),
		Files:     []*discordgo.File{{Name: p.Filename, ContentType: audioContentType(p.Filename), Reader: f}},
		Reference: c.reference(replyTo),
	}, discordgo.WithContext(ctx))
	return err
}

var audioContentTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".m4a":  "audio/mp4",
	".opus": "audio/ogg",
	".ogg":  "audio/ogg",
	".wav":  "audio/wav",
	".flac": "audio/flac",
}

func audioContentType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ct, ok := audioContentTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
