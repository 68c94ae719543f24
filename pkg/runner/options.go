// Package runner folds regions across many files concurrently.
package runner

import (
	"github.com/charmbracelet/log"

	"github.com/yaklabco/regionfold/pkg/config"
	"github.com/yaklabco/regionfold/pkg/fold"
	"github.com/yaklabco/regionfold/pkg/marker"
)

// Options controls a multi-file run.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// scanned when walking directories. Defaults to DefaultExtensions().
	// Files named explicitly in Paths are always processed.
	Extensions []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Transition is applied to every file's regions. Nil only lists them.
	Transition *fold.Transition

	// InitialState is the simulated state of every span before the
	// transition runs.
	InitialState fold.State

	// CollapsedLines are 1-based lines whose spans start collapsed.
	CollapsedLines []int

	// Syntaxes restricts which marker syntaxes count as regions.
	// Empty enables all.
	Syntaxes []marker.Syntax

	// Outliner selects how foldable spans are discovered.
	Outliner config.OutlinerMode

	// Logger receives per-file diagnostics. When nil, the logger carried by
	// the run context is used.
	Logger *log.Logger
}

// DefaultExtensions returns the extensions of languages with region markers.
func DefaultExtensions() []string {
	return []string{
		".cs", ".vb",
		".c", ".h", ".cpp", ".cc", ".cxx", ".hpp", ".hh",
		".md", ".markdown",
		".html", ".htm", ".xml", ".xaml", ".csproj", ".props", ".targets",
	}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
