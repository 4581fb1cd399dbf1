package bot

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/joshcazalas/youtube-audio-bot/model"
)

type fakeTelegramAPI struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	updates  chan tgbotapi.Update
	stopped  bool
	nextID   int
}

func newFakeTelegramAPI() *fakeTelegramAPI {
	return &fakeTelegramAPI{updates: make(chan tgbotapi.Update), nextID: 100}
}

func (f *fakeTelegramAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, c)
	f.nextID++
	return tgbotapi.Message{MessageID: f.nextID}, nil
}

func (f *fakeTelegramAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeTelegramAPI) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return f.updates
}

func (f *fakeTelegramAPI) StopReceivingUpdates() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
}

func TestTelegramDispatchDeliversAudio(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abc123.mp3")
	if err := os.WriteFile(path, []byte("ID3"), 0o644); err != nil {
		t.Fatal(err)
	}
	api := newFakeTelegramAPI()
	fetcher := &fakeFetcher{fn: func(ctx context.Context, deliver func(context.Context, *model.Payload) error) error {
		return deliver(ctx, &model.Payload{Path: path, Filename: "A - B.mp3", Performer: "A", Title: "B", Duration: 60})
	}}
	tg := NewTelegram(api, "AudioBot", NewHandler(fetcher), nil, false)

	tg.dispatch(context.Background(), tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 42,
		Text:      "look",
		Chat:      &tgbotapi.Chat{ID: 9},
		From:      &tgbotapi.User{FirstName: "Sok"},
		ReplyToMessage: &tgbotapi.Message{
			MessageID: 41,
			Text:      "https://youtu.be/abc",
		},
	}})

	if len(fetcher.urls) != 1 || fetcher.urls[0] != "https://youtu.be/abc" {
		t.Fatalf("fetched %v", fetcher.urls)
	}
	if len(api.sent) != 3 {
		t.Fatalf("expected ack, edit and audio, got %d sends", len(api.sent))
	}

	ack, ok := api.sent[0].(tgbotapi.MessageConfig)
	if !ok || ack.ChatID != 9 || ack.ReplyToMessageID != 42 || ack.Text != msgProcessing {
		t.Fatalf("ack = %#v", api.sent[0])
	}
	edit, ok := api.sent[1].(tgbotapi.EditMessageTextConfig)
	if !ok || edit.MessageID != 101 || edit.Text != msgUploading {
		t.Fatalf("edit = %#v", api.sent[1])
	}
	audio, ok := api.sent[2].(tgbotapi.AudioConfig)
	if !ok {
		t.Fatalf("expected audio, got %#v", api.sent[2])
	}
	if audio.ReplyToMessageID != 41 || audio.Performer != "A" || audio.Title != "B" || audio.Duration != 60 || audio.Caption != "A - B" {
		t.Fatalf("audio = %#v", audio)
	}
	if file, ok := audio.File.(tgbotapi.FileReader); !ok || file.Name != "A - B.mp3" {
		t.Fatalf("audio file = %#v", audio.File)
	}

	if len(api.requests) != 1 {
		t.Fatalf("expected one delete request, got %d", len(api.requests))
	}
	del, ok := api.requests[0].(tgbotapi.DeleteMessageConfig)
	if !ok || del.ChatID != 9 || del.MessageID != 101 {
		t.Fatalf("delete = %#v", api.requests[0])
	}
}

func TestTelegramDispatchSkipsNonText(t *testing.T) {
	api := newFakeTelegramAPI()
	tg := NewTelegram(api, "AudioBot", NewHandler(&fakeFetcher{}), nil, false)

	tg.dispatch(context.Background(), tgbotapi.Update{})
	tg.dispatch(context.Background(), tgbotapi.Update{Message: &tgbotapi.Message{MessageID: 1, Chat: &tgbotapi.Chat{ID: 1}}})

	if len(api.sent) != 0 {
		t.Fatalf("expected nothing sent, got %d", len(api.sent))
	}
}

func TestTelegramRun(t *testing.T) {
	api := newFakeTelegramAPI()
	fetcher := &fakeFetcher{}
	tg := NewTelegram(api, "AudioBot", NewHandler(fetcher), nil, true)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- tg.Run(ctx) }()

	api.updates <- tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 1,
		Text:      "/help",
		Chat:      &tgbotapi.Chat{ID: 3},
	}}

	deadline := time.After(2 * time.Second)
	for {
		api.mu.Lock()
		n := len(api.sent)
		api.mu.Unlock()
		if n == 1 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("help reply never sent")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}

	api.mu.Lock()
	defer api.mu.Unlock()
	if !api.stopped {
		t.Error("polling not stopped")
	}
	if len(api.requests) < 2 {
		t.Fatalf("expected webhook and command requests, got %d", len(api.requests))
	}
	if drop, ok := api.requests[0].(tgbotapi.DeleteWebhookConfig); !ok || !drop.DropPendingUpdates {
		t.Errorf("first request = %#v", api.requests[0])
	}
	cmds, ok := api.requests[1].(tgbotapi.SetMyCommandsConfig)
	if !ok || len(cmds.Commands) != 2 || cmds.Commands[0].Command != "help" || cmds.Commands[1].Command != "start" {
		t.Errorf("commands = %#v", api.requests[1])
	}
	if reply := api.sent[0].(tgbotapi.MessageConfig); reply.Text != msgHelp || reply.ReplyToMessageID != 1 {
		t.Errorf("help reply = %#v", reply)
	}
}

func TestTelegramDispatchCommandAddressing(t *testing.T) {
	api := newFakeTelegramAPI()
	tg := NewTelegram(api, "AudioBot", NewHandler(&fakeFetcher{}), nil, false)

	for i, text := range []string{"/help@OtherBot", "/help@AudioBot"} {
		tg.dispatch(context.Background(), tgbotapi.Update{Message: &tgbotapi.Message{
			MessageID: i + 1,
			Text:      text,
			Chat:      &tgbotapi.Chat{ID: -100},
		}})
	}

	if len(api.sent) != 1 {
		t.Fatalf("expected only the addressed command to be answered, got %d sends", len(api.sent))
	}
	if reply := api.sent[0].(tgbotapi.MessageConfig); reply.ReplyToMessageID != 2 || reply.Text != msgHelp {
		t.Fatalf("reply = %#v", reply)
	}
}

func TestMessageID(t *testing.T) {
	if messageID("") != 0 || messageID("x") != 0 || messageID("12") != 12 {
		t.Fatal("unexpected message id conversion")
	}
}

