// Package logger provides colored console output for the build
// driver: OK/INFO/WARN/ERROR lines and a compile-progress bar, with
// color automatically disabled when output is not a terminal.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ConsoleLogger writes timestamp-free, tag-prefixed lines to a
// writer. It is safe for concurrent use by the compile worker pool.
type ConsoleLogger struct {
	writer      io.Writer
	mu          sync.Mutex
	colorOutput bool
}

// NewConsoleLogger returns a ConsoleLogger writing to w. Color is
// enabled only when w is a terminal (os.Stdout/os.Stderr checked via
// isatty); any other writer (a file, a buffer) gets plain text.
func NewConsoleLogger(w io.Writer) *ConsoleLogger {
	colorOutput := false
	if f, ok := w.(*os.File); ok {
		colorOutput = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &ConsoleLogger{writer: w, colorOutput: colorOutput}
}

func (c *ConsoleLogger) print(tag string, col *color.Color, format string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	if c.colorOutput {
		col.Fprintf(c.writer, "[%s] %s\n", tag, msg)
		return
	}
	fmt.Fprintf(c.writer, "[%s] %s\n", tag, msg)
}

// OK reports a successful step, matching the original driver's
// print_ok.
func (c *ConsoleLogger) OK(format string, args ...interface{}) {
	c.print("OK", color.New(color.FgGreen), format, args...)
}

// Info reports a neutral progress step.
func (c *ConsoleLogger) Info(format string, args ...interface{}) {
	c.print("INFO", color.New(color.FgBlue), format, args...)
}

// Warn reports a recoverable anomaly: a skipped file, a stale cache
// entry, a fallback to full rebuild.
func (c *ConsoleLogger) Warn(format string, args ...interface{}) {
	c.print("WARN", color.New(color.FgYellow), format, args...)
}

// Error reports a fatal condition before the process exits non-zero.
func (c *ConsoleLogger) Error(format string, args ...interface{}) {
	c.print("ERROR", color.New(color.FgRed), format, args...)
}

// Summary prints a build's final counters.
func (c *ConsoleLogger) Summary(s BuildSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.writer, FormatBuildSummary(s))
}
