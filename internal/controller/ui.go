// Package controller provides output adapters for displaying formatting
// results.
package controller

import (
	"io"
	"os"

	m "github.com/mouse-blink/linkfmt/internal/model"
)

// UI defines the interface for reporting progress and results.
// Implementations decide how severities and tables are rendered.
type UI interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)

	// DisplayResults renders the per-document outcomes and the end-of-run
	// summary. When withDiff is set, changed documents are shown as a line
	// diff instead of being counted silently.
	DisplayResults(results []m.FileResult, withDiff bool)

	// DisplayStats renders the list view table.
	DisplayStats(stats []m.DocumentStats)
}

// IsTTY checks if the given writer is a terminal (TTY). Returns false when
// output is redirected to a file or pipe.
func IsTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	fileInfo, err := file.Stat()
	if err != nil {
		return false
	}

	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
