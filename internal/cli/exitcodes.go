package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/regionfold/pkg/fsutil"
	"github.com/yaklabco/regionfold/pkg/runner"
)

// Exit codes for regionfold.
const (
	// ExitSuccess indicates every file was processed and no transition was refused.
	ExitSuccess = 0

	// ExitFailures indicates a file could not be processed or a region
	// transition was refused.
	ExitFailures = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrFoldFailures is returned when a run completed with failed files or
	// refused transitions. It only signals the exit code.
	ErrFoldFailures = errors.New("some files or regions failed")

	// ErrUsage marks errors caused by invalid flags or arguments.
	ErrUsage = errors.New("invalid usage")

	// ErrConfig marks configuration loading and validation errors.
	ErrConfig = errors.New("invalid configuration")
)

// ExitCodeFromResult determines the exit code for a completed run.
func ExitCodeFromResult(result *runner.Result) int {
	if result.HasFailures() {
		return ExitFailures
	}
	return ExitSuccess
}

// ExitCode maps an error returned by the root command to an exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrFoldFailures):
		return ExitFailures
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission),
		errors.Is(err, fsutil.ErrExists):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
