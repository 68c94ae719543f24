// Command regionfold lists, expands, collapses and toggles region blocks.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/regionfold/internal/cli"
	"github.com/yaklabco/regionfold/internal/logging"
)

// Set with -ldflags "-X main.version=...".
//
//nolint:gochecknoglobals // linker-injected
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	err := cli.NewRootCommand(cli.BuildInfo{Version: version, Commit: commit, Date: date}).Execute()

	// A fold failure is already visible in the report.
	if err != nil && !errors.Is(err, cli.ErrFoldFailures) {
		logging.Default().Error("command failed", logging.FieldError, err)
	}
	return cli.ExitCode(err)
}
