package common

import (
	"io"
	"log/slog"
)

// SetupLogging configures slog with a text handler on w.
// Only warnings and errors are shown unless verbose is set.
func SetupLogging(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}
