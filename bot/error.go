package bot

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/joshcazalas/youtube-audio-bot/logging"
	"github.com/joshcazalas/youtube-audio-bot/model"
)

// recoverUpdate is deferred around every update. It logs a panic and answers with
// the generic apology when there is a message to reply to.
func (h *Handler) recoverUpdate(ctx context.Context, chat Chat, req model.Request) {
	r := recover()
	if r == nil {
		return
	}
	logger := logging.FromContext(ctx, h.logger)
	logger.Error("panic while handling update",
		logging.Error(fmt.Errorf("%v", r)),
		slog.String("stack", string(debug.Stack())),
	)
	if chat == nil || req.MessageID == "" {
		return
	}
	h.reply(ctx, chat, req.MessageID, h.printer.Sprintf(msgApology))
}
