// Package cli provides the Cobra command structure for regionfold.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/regionfold/internal/configloader"
	"github.com/yaklabco/regionfold/internal/logging"
	"github.com/yaklabco/regionfold/pkg/fold"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root regionfold command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "regionfold",
		Short: "Expand, collapse and toggle #region blocks",
		Long: `regionfold finds region blocks in source and markup files and folds them.

It recognises C#/VB "#region", C/C++ "#pragma region" and HTML/XML/Markdown
"<!-- region -->" markers. Every file is loaded into an in-memory outlining
host, the requested transition is applied to its regions only, and the
resulting fold states are reported. Files are never modified.` + environmentHelp(),
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.Join(ErrUsage, err)
	})

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddGroup(
		&cobra.Group{ID: groupFold, Title: "Fold Commands:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)

	for _, cmd := range []*cobra.Command{
		newRegionsCommand(),
		newTransitionCommand(fold.TransitionExpand),
		newTransitionCommand(fold.TransitionCollapse),
		newTransitionCommand(fold.TransitionToggle),
	} {
		cmd.GroupID = groupFold
		rootCmd.AddCommand(cmd)
	}

	for _, cmd := range []*cobra.Command{newInitCommand(), newVersionCommand(info)} {
		cmd.GroupID = groupSetup
		rootCmd.AddCommand(cmd)
	}

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

// environmentHelp lists the REGIONFOLD_ variables for the root help text.
func environmentHelp() string {
	var b strings.Builder
	b.WriteString("\n\nEnvironment:\n")
	for _, v := range configloader.EnvVars() {
		fmt.Fprintf(&b, "  %-26s %s\n", v.Name, v.Usage)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
