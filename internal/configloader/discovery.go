package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
)

// Scope is the level a configuration file applies at.
type Scope string

// Scopes in increasing precedence.
const (
	ScopeSystem   Scope = "system"
	ScopeUser     Scope = "user"
	ScopeProject  Scope = "project"
	ScopeExplicit Scope = "explicit"
)

// Source is a configuration file found at some scope.
type Source struct {
	Scope Scope
	Path  string
}

// Names tried in each directory, first match wins.
//
//nolint:gochecknoglobals // lookup tables
var (
	projectFileNames = []string{".regionfold.yml", ".regionfold.yaml", "regionfold.yml", "regionfold.yaml"}
	globalFileNames  = []string{"config.yaml", "config.yml"}
	repositoryDirs   = []string{".git", ".hg", ".svn"}
)

// Discover returns the configuration files that apply to workDir, lowest
// precedence first. Scopes listed in skip are not searched. A scope with no
// file contributes nothing.
func Discover(ctx context.Context, workDir string, skip ...Scope) ([]Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discover config: %w", err)
	}

	var sources []Source
	add := func(scope Scope, path string) {
		if path != "" && !slices.Contains(skip, scope) {
			sources = append(sources, Source{Scope: scope, Path: path})
		}
	}

	add(ScopeSystem, firstFile(systemConfigDir(), globalFileNames))
	add(ScopeUser, firstFile(userConfigDir(), globalFileNames))

	if !slices.Contains(skip, ScopeProject) {
		project, err := FindProjectConfig(ctx, workDir)
		if err != nil {
			return nil, err
		}
		add(ScopeProject, project)
	}

	return sources, nil
}

// FindProjectConfig walks from startDir towards the root and returns the
// first project config file, or "" when none exists. The walk ends at a
// repository root, the home directory or the filesystem root.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", startDir, err)
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("find project config: %w", err)
		}

		if path := firstFile(dir, projectFileNames); path != "" {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir || dir == home || isRepositoryRoot(dir) {
			return "", nil
		}
		dir = parent
	}
}

func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return "/etc/regionfold"
	}
	base := os.Getenv("ProgramData")
	if base == "" {
		base = `C:\ProgramData`
	}
	return filepath.Join(base, "regionfold")
}

// userConfigDir honours XDG_CONFIG_HOME on every platform and falls back to
// ~/.config.
func userConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "regionfold")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "regionfold")
}

func firstFile(dir string, names []string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

func isRepositoryRoot(dir string) bool {
	return slices.ContainsFunc(repositoryDirs, func(name string) bool {
		info, err := os.Stat(filepath.Join(dir, name))
		return err == nil && info.IsDir()
	})
}
