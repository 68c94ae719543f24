// Package configloader resolves the effective regionfold configuration from
// defaults, system, user, project and explicit files, the environment and
// command-line flags.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/regionfold/pkg/config"
)

// LoadOptions controls which layers Load reads.
type LoadOptions struct {
	// WorkingDir is where the project config search starts. Defaults to
	// the process working directory.
	WorkingDir string

	// ExplicitPath is a file named with --config. It is read after every
	// discovered file and must exist.
	ExplicitPath string

	// Skip lists discovery scopes to leave out.
	Skip []Scope

	// IgnoreEnv leaves REGIONFOLD_ variables unread.
	IgnoreEnv bool

	// CLIConfig holds the flags the user set. It overrides everything.
	CLIConfig *config.Config
}

// LoadResult is the merged configuration and where it came from.
type LoadResult struct {
	Config *config.Config

	// Sources are the files read, lowest precedence first.
	Sources []Source

	// LoadedFrom are the paths of Sources.
	LoadedFrom []string

	// Warnings are validation findings that did not stop loading.
	Warnings []string
}

// Load merges, from lowest to highest precedence: defaults, the system,
// user, project and explicit files, REGIONFOLD_ environment variables, and
// opts.CLIConfig. Every file is validated on its own before merging and
// the merged result is validated again.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	sources, err := Discover(ctx, workDir, opts.Skip...)
	if err != nil {
		return nil, err
	}
	if opts.ExplicitPath != "" {
		sources = append(sources, Source{Scope: ScopeExplicit, Path: opts.ExplicitPath})
	}

	result := &LoadResult{Sources: sources}
	cfg := config.NewConfig()

	for _, src := range sources {
		fileCfg, err := readFile(src.Path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", src.Scope, err)
		}

		checked := ValidateWithFile(fileCfg, src.Path)
		if err := checked.Err(); err != nil {
			return nil, err
		}
		for _, w := range checked.Warnings {
			result.Warnings = append(result.Warnings, w.Error())
		}

		cfg = overlay(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, src.Path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	cfg = overlay(cfg, opts.CLIConfig)

	if err := Validate(cfg).Err(); err != nil {
		return nil, err
	}

	result.Config = cfg
	return result, nil
}

func readFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
