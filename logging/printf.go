package logging

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Printf adapts a slog logger to the Println/Printf shape expected by
// third-party clients that log through a minimal interface.
type Printf struct {
	Logger *slog.Logger
	Level  slog.Level
}

func (p Printf) Println(v ...interface{}) {
	p.log(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

func (p Printf) Printf(format string, v ...interface{}) {
	p.log(strings.TrimSuffix(fmt.Sprintf(format, v...), "\n"))
}

func (p Printf) log(msg string) {
	logger := p.Logger
	if logger == nil {
		return
	}
	logger.Log(context.Background(), p.Level, msg)
}
