// Package config defines core configuration types for regionfold.
// These types are pure data structures; loading and merging live in
// internal/configloader.
package config

import "slices"

// OutputFormat specifies the output format for reports.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
)

// IsValid returns true if the format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatTable, FormatJSON:
		return true
	default:
		return false
	}
}

// OutlinerMode selects how foldable spans are discovered in a file.
type OutlinerMode string

const (
	// OutlinerAuto uses the Markdown outliner for Markdown files and the
	// marker outliner for everything else.
	OutlinerAuto OutlinerMode = "auto"
	// OutlinerMarkers always uses the line-based marker outliner.
	OutlinerMarkers OutlinerMode = "markers"
	// OutlinerMarkdown always parses files as Markdown.
	OutlinerMarkdown OutlinerMode = "markdown"
)

// IsValid returns true if the mode is known.
func (m OutlinerMode) IsValid() bool {
	switch m {
	case OutlinerAuto, OutlinerMarkers, OutlinerMarkdown:
		return true
	default:
		return false
	}
}

// Initial fold states.
const (
	InitialExpanded  = "expanded"
	InitialCollapsed = "collapsed"
)

// Config is the root configuration structure for regionfold.
type Config struct {
	// Syntaxes lists the enabled region marker syntaxes
	// ("c-region", "pragma-region", "html-region"). Empty enables all.
	Syntaxes []string `yaml:"syntaxes,omitempty"`

	// Outliner selects how foldable spans are discovered.
	Outliner OutlinerMode `yaml:"outliner,omitempty"`

	// Extensions limits directory walks to these file extensions.
	Extensions []string `yaml:"extensions,omitempty"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore,omitempty"`

	// InitialState is the simulated fold state of every span before a
	// transition runs: "expanded" or "collapsed".
	InitialState string `yaml:"initial_state,omitempty"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// CollapsedLines are 1-based lines whose spans start collapsed.
	CollapsedLines []int `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Outliner:     OutlinerAuto,
		InitialState: InitialExpanded,
		Format:       FormatText,
		Jobs:         0, // 0 means use GOMAXPROCS
	}
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Syntaxes = slices.Clone(c.Syntaxes)
	clone.Extensions = slices.Clone(c.Extensions)
	clone.Ignore = slices.Clone(c.Ignore)
	clone.CollapsedLines = slices.Clone(c.CollapsedLines)
	return &clone
}
