package cmd

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger returns a structured slog.Logger with the given level. When file is
// set, output is also written to a rotating log file.
func NewLogger(level slog.Leveler, file string) *slog.Logger {
	writers := []io.Writer{os.Stdout}
	if file != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   file,
			LocalTime:  true,
			Compress:   true,
			MaxSize:    100,
			MaxAge:     7,
			MaxBackups: 3,
		})
	}
	h := slog.NewJSONHandler(io.MultiWriter(writers...), &slog.HandlerOptions{Level: level})
	return slog.New(h)
}

// parseLevel maps a config log level to slog; unknown values fall back to info.
func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo
	}
	return l
}
