package reporter

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Options configures a reporter.
type Options struct {
	// Writer receives the report. New uses stdout when nil.
	Writer io.Writer

	Format Format

	// Color is "auto", "always" or "never".
	Color string

	// ShowSummary appends the totals line or block.
	ShowSummary bool

	// Verbose also lists files without regions (text only).
	Verbose bool

	// Compact drops JSON indentation.
	Compact bool

	// WorkingDir shortens paths beneath it to relative slash paths.
	WorkingDir string
}

// DefaultOptions returns text output to stdout with automatic colour and a
// summary.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      FormatText,
		Color:       "auto",
		ShowSummary: true,
	}
}

func (o Options) displayPath(path string) string {
	if o.WorkingDir == "" {
		return path
	}
	rel, err := filepath.Rel(o.WorkingDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return filepath.ToSlash(rel)
}
