// Package pretty renders regions, tables and summaries with lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ANSI palette indices.
const (
	colorGray   = lipgloss.Color("8")
	colorRed    = lipgloss.Color("9")
	colorGreen  = lipgloss.Color("10")
	colorBlue   = lipgloss.Color("12")
	colorCyan   = lipgloss.Color("14")
	colorSilver = lipgloss.Color("7")
)

// Styles holds one lipgloss style per element of the output.
type Styles struct {
	Error   lipgloss.Style
	Success lipgloss.Style
	Failure lipgloss.Style

	// Region lines.
	FilePath  lipgloss.Style
	Location  lipgloss.Style
	Syntax    lipgloss.Style
	Label     lipgloss.Style
	Expanded  lipgloss.Style
	Collapsed lipgloss.Style
	Guide     lipgloss.Style

	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles returns coloured styles, or styles that render text unchanged
// when colorEnabled is false.
func NewStyles(colorEnabled bool) *Styles {
	plain := lipgloss.NewStyle()
	if !colorEnabled {
		return &Styles{
			Error: plain, Success: plain, Failure: plain,
			FilePath: plain, Location: plain, Syntax: plain, Label: plain,
			Expanded: plain, Collapsed: plain, Guide: plain,
			TableHeader: plain, TableSeparator: plain,
			Dim: plain, Bold: plain,
		}
	}

	fg := func(c lipgloss.Color) lipgloss.Style { return plain.Foreground(c) }
	bold := plain.Bold(true)

	return &Styles{
		Error:   fg(colorRed).Bold(true),
		Success: fg(colorGreen).Bold(true),
		Failure: fg(colorRed).Bold(true),

		FilePath:  bold,
		Location:  fg(colorGray),
		Syntax:    fg(colorCyan),
		Label:     plain,
		Expanded:  fg(colorGreen),
		Collapsed: fg(colorBlue),
		Guide:     fg(colorGray),

		TableHeader:    fg(colorSilver).Bold(true),
		TableSeparator: fg(colorGray),

		Dim:  fg(colorGray),
		Bold: bold,
	}
}

// IsColorEnabled resolves a --color mode for writer. "always" and "never"
// are absolute; anything else means auto: colour only on a terminal and
// only when NO_COLOR is unset.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
