package bot

import (
	"context"
	"strings"

	"github.com/joshcazalas/youtube-audio-bot/model"
)

type Command struct {
	Description string
	Handler     func(h *Handler, ctx context.Context, chat Chat, req model.Request)
}

func defaultCommands() map[string]Command {
	return map[string]Command{
		"start": {
			Description: "Greet the user",
			Handler:     startHandler,
		},
		"help": {
			Description: "Explain how to use the bot",
			Handler:     helpHandler,
		},
	}
}

func (h *Handler) Commands() map[string]string {
	out := make(map[string]string, len(h.commands))
	for name, cmd := range h.commands {
		out[name] = cmd.Description
	}
	return out
}

// parseCommand splits "/help@SomeBot now" into "help" and "SomeBot".
func parseCommand(text string) (name, addressee string, ok bool) {
	if !strings.HasPrefix(text, "/") {
		return "", "", false
	}
	fields := strings.Fields(text[1:])
	if len(fields) == 0 {
		return "", "", false
	}
	name, addressee, _ = strings.Cut(fields[0], "@")
	return strings.ToLower(name), addressee, name != ""
}

func (h *Handler) runCommand(ctx context.Context, chat Chat, req model.Request, name string) {
	cmd, ok := h.commands[name]
	if !ok {
		return
	}
	cmd.Handler(h, ctx, chat, req)
}

func startHandler(h *Handler, ctx context.Context, chat Chat, req model.Request) {
	name := strings.TrimSpace(req.SenderName)
	if name == "" {
		name = h.printer.Sprintf(msgFriend)
	}
	h.reply(ctx, chat, req.MessageID, h.printer.Sprintf(msgStart, name))
}

func helpHandler(h *Handler, ctx context.Context, chat Chat, req model.Request) {
	h.reply(ctx, chat, req.MessageID, h.printer.Sprintf(msgHelp))
}
