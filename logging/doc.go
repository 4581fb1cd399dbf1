// Package logging assembles the slog loggers used across the bot.
//
// It owns the console/JSON handler choice, routes output to stdout and the
// append-only operational log file, and carries request-scoped loggers
// through context so the download pipeline logs with the same request id as
// the chat handler that started it.
package logging
