// Package cli implements the planwright command-line interface.
//
// The commands generate planners from TOML configuration files, inspect
// their page and link structure, export the link graph, serve the HTTP API
// and manage the artifact cache. The CLI is built using cobra and logs via
// charmbracelet/log.
//
// # Commands
//
//   - generate: Write the planner PDF (and optionally link annotations)
//   - inspect: Print every page with its kind, label and link count
//   - links: Export the page hyperlink graph as DOT, SVG or PNG
//   - serve: Run the HTTP API
//   - presets: List device, density and color presets
//   - cache: Manage the artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// surfaces the planner's stage transitions.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, rounded to the millisecond.
// Example output: "Wrote planner.pdf (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
