package logging

import (
	"io"
	"log/slog"
	"os"
)

// NewJSONHandler is the stdout handler used both before and after the
// database sink is attached.
func NewJSONHandler(w io.Writer) slog.Handler {
	if w == nil {
		w = os.Stdout
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
}

// Setup installs a JSON stdout logger as the slog default.
func Setup(w io.Writer) {
	slog.SetDefault(slog.New(NewJSONHandler(w)))
}
