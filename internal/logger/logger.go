package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup installs a tint handler writing to w as the default slog logger.
func Setup(level string, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	handler := tint.NewHandler(w, &tint.Options{
		Level:      parseLevel(level),
		TimeFormat: time.TimeOnly,
		NoColor:    w != os.Stderr,
	})
	slog.SetDefault(slog.New(handler))
}

// SetupFile logs to path, or discards everything when path is empty.
// The returned closer must be called on exit.
func SetupFile(level, path string) (io.Closer, error) {
	if path == "" {
		Setup(level, io.Discard)
		return io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, err
	}
	Setup(level, f)
	return f, nil
}
