package logging

import (
	"context"
	"log/slog"
)

// Standard structured logging keys.
const (
	FieldRequestID = "request_id"
	FieldTransport = "transport"
	FieldChatID    = "chat_id"
	FieldURL       = "url"
	FieldError     = "error"
)

type loggerKey struct{}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger stored in ctx, else fallback, else a no-op
// logger.
func FromContext(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	if fallback != nil {
		return fallback
	}
	return NewNop()
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(FieldError, "")
	}
	return slog.String(FieldError, err.Error())
}
