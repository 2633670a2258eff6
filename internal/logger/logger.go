package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/logistics-backoffice/internal/config"
)

// New создаёт JSON-логгер в stdout и, если задан файл, в файл с ротацией
func New(cfg config.LogConfig) *slog.Logger {
	var out io.Writer = os.Stdout
	if cfg.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    10, // мегабайты
			MaxBackups: 7,
			MaxAge:     7, // дни
			Compress:   true,
		}
		out = io.MultiWriter(os.Stdout, rotator)
	}

	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
	}))
}

// ParseLevel переводит строку уровня в slog.Level, по умолчанию Info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
