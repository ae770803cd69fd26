// Package logging builds the structured logger used by the command line
// tools.
package logging

import (
	"io"
	"log/slog"

	"github.com/lmittmann/tint"
)

// TimeFormat is the time stamp layout of log lines.
const TimeFormat = "15:04:05"

// New returns a logger writing colored, human readable lines to w. Colors
// are disabled when no_color is true, as they should be when w is not a
// terminal.
func New(w io.Writer, level slog.Leveler, no_color bool) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: TimeFormat,
		NoColor:    no_color,
	}))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
