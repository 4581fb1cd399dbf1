package bot

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/joshcazalas/youtube-audio-bot/logging"
	"github.com/joshcazalas/youtube-audio-bot/model"
)

type fakeDiscordSession struct {
	replies []*discordgo.MessageReference
	edits   []string
	deletes []string
	uploads []*discordgo.MessageSend
	body    string
}

func (f *fakeDiscordSession) ChannelMessageSendReply(channelID, content string, ref *discordgo.MessageReference, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.replies = append(f.replies, ref)
	return &discordgo.Message{ID: "ack", ChannelID: channelID, Content: content}, nil
}

func (f *fakeDiscordSession) ChannelMessageEdit(_, messageID, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.edits = append(f.edits, content)
	return &discordgo.Message{ID: messageID}, nil
}

func (f *fakeDiscordSession) ChannelMessageDelete(_, messageID string, _ ...discordgo.RequestOption) error {
	f.deletes = append(f.deletes, messageID)
	return nil
}

func (f *fakeDiscordSession) ChannelMessageSendComplex(_ string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.uploads = append(f.uploads, data)
	b, err := io.ReadAll(data.Files[0].Reader)
	if err != nil {
		return nil, err
	}
	f.body = string(b)
	return &discordgo.Message{ID: "audio"}, nil
}

func TestDiscordDispatchUploadsAudio(t *testing.T) {
	path := filepath.Join(t.TempDir(), "A - B.mp3")
	if err := os.WriteFile(path, []byte("ID3"), 0o644); err != nil {
		t.Fatal(err)
	}
	fetcher := &fakeFetcher{fn: func(ctx context.Context, deliver func(context.Context, *model.Payload) error) error {
		return deliver(ctx, &model.Payload{Path: path, Filename: "A - B.mp3", Performer: "A", Title: "B"})
	}}
	d := &Discord{handler: NewHandler(fetcher), logger: logging.NewNop()}
	session := &fakeDiscordSession{}

	d.dispatch(context.Background(), session, "bot1", &discordgo.Message{
		ID:        "m2",
		ChannelID: "c1",
		GuildID:   "g1",
		Content:   "get this",
		Author:    &discordgo.User{Username: "sok"},
		ReferencedMessage: &discordgo.Message{
			ID:      "m1",
			Content: "https://www.youtube.com/watch?v=abc",
		},
	})

	if len(session.replies) != 1 || session.replies[0].MessageID != "m2" || session.replies[0].GuildID != "g1" {
		t.Fatalf("ack reference = %+v", session.replies)
	}
	if len(session.uploads) != 1 {
		t.Fatalf("expected one upload, got %d", len(session.uploads))
	}
	up := session.uploads[0]
	if up.Content != "A - B" || up.Reference == nil || up.Reference.MessageID != "m1" {
		t.Fatalf("upload = %+v", up)
	}
	if file := up.Files[0]; file.Name != "A - B.mp3" || file.ContentType != "audio/mpeg" {
		t.Fatalf("file = %+v", file)
	}
	if session.body != "ID3" {
		t.Fatalf("uploaded body = %q", session.body)
	}
	if len(session.deletes) != 1 || session.deletes[0] != "ack" {
		t.Fatalf("deletes = %v", session.deletes)
	}
}

func TestDiscordSender(t *testing.T) {
	if got := discordSender(&discordgo.User{Username: "u", GlobalName: "Global"}); got != "Global" {
		t.Fatalf("got %q", got)
	}
	if got := discordSender(&discordgo.User{Username: "u"}); got != "u" {
		t.Fatalf("got %q", got)
	}
	if got := discordSender(nil); got != "" {
		t.Fatalf("got %q", got)
	}
}

func TestDiscordDispatchGuildFiltering(t *testing.T) {
	self := &discordgo.User{ID: "bot1", Username: "audiobot"}
	tests := []struct {
		name    string
		msg     *discordgo.Message
		replies int
	}{
		{"guild small talk", &discordgo.Message{ID: "1", GuildID: "g1", Content: "good morning"}, 0},
		{"guild question", &discordgo.Message{ID: "2", GuildID: "g1", Content: "anyone up for games?"}, 0},
		{"guild mention", &discordgo.Message{ID: "3", GuildID: "g1", Content: "<@bot1> hi", Mentions: []*discordgo.User{self}}, 1},
		{"guild reply to bot", &discordgo.Message{ID: "4", GuildID: "g1", Content: "what?", ReferencedMessage: &discordgo.Message{ID: "0", Author: self, Content: "done"}}, 1},
		{"direct message", &discordgo.Message{ID: "5", Content: "lol"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &fakeFetcher{}
			d := &Discord{handler: NewHandler(fetcher), logger: logging.NewNop()}
			session := &fakeDiscordSession{}
			tt.msg.ChannelID = "c1"
			tt.msg.Author = &discordgo.User{ID: "u1", Username: "sok"}

			d.dispatch(context.Background(), session, "bot1", tt.msg)

			if len(session.replies) != tt.replies {
				t.Fatalf("replies = %d, want %d", len(session.replies), tt.replies)
			}
			if len(fetcher.urls) != 0 {
				t.Fatalf("nothing here carries a link, fetched %v", fetcher.urls)
			}
		})
	}
}

func TestDiscordDispatchStripsMention(t *testing.T) {
	fetcher := &fakeFetcher{fn: func(context.Context, func(context.Context, *model.Payload) error) error {
		return nil
	}}
	d := &Discord{handler: NewHandler(fetcher), logger: logging.NewNop()}

	d.dispatch(context.Background(), &fakeDiscordSession{}, "bot1", &discordgo.Message{
		ID:        "1",
		ChannelID: "c1",
		GuildID:   "g1",
		Content:   "<@!bot1> https://youtu.be/abc",
		Author:    &discordgo.User{ID: "u1"},
		Mentions:  []*discordgo.User{{ID: "bot1"}},
	})

	if len(fetcher.urls) != 1 || fetcher.urls[0] != "https://youtu.be/abc" {
		t.Fatalf("fetched %v", fetcher.urls)
	}
}
