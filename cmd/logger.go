package cmd

import (
	"log/slog"
	"os"

	"golang.org/x/term"
)

// newLogger builds the diagnostic logger. Diagnostics (like which
// detection rule fired) go to stderr so they never contaminate piped
// output: human-readable text on a terminal, JSON when stderr is
// redirected.
func newLogger() *slog.Logger {
	options := &slog.HandlerOptions{Level: slog.LevelInfo}
	var handler slog.Handler
	if term.IsTerminal(int(os.Stderr.Fd())) {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	return slog.New(handler)
}
