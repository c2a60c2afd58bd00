// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/phsym/console-slog"
	slogmulti "github.com/samber/slog-multi"
	"github.com/samber/oops"
)

// Preinit installs a console logger so startup messages are readable before
// configuration is loaded.
func Preinit() {
	slog.SetDefault(slog.New(console.NewHandler(os.Stderr, &console.HandlerOptions{
		Level: slog.LevelInfo,
	})))
}

// Setup installs the configured logger. When file is set, records are also
// written there as JSON. The returned closer releases the file.
func Setup(level, file string) (io.Closer, error) {
	lvl := ParseLevel(level)
	handlers := []slog.Handler{
		console.NewHandler(os.Stderr, &console.HandlerOptions{
			AddSource: lvl == slog.LevelDebug,
			Level:     lvl,
		}),
	}

	var closer io.Closer = nopCloser{}
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, oops.In("logging").With("file", file).Wrapf(err, "failed to open log file")
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: lvl}))
		closer = f
	}

	slog.SetDefault(slog.New(slogmulti.Fanout(handlers...)))
	return closer, nil
}

// ParseLevel maps a level name to slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
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

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
