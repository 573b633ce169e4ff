package logger

import (
	"log/slog"
	"os"
)

// New создает slog.Logger с JSON выводом и заданным уровнем
// "debug", "info", "warn", "error"; неизвестное значение дает info
func New(level string) *slog.Logger {
	var lvl slog.Level

	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})

	return slog.New(handler)
}
