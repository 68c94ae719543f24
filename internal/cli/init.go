package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/regionfold/internal/logging"
	"github.com/yaklabco/regionfold/pkg/config"
	"github.com/yaklabco/regionfold/pkg/fsutil"
)

// Default init output per template format.
//
//nolint:gochecknoglobals // lookup table
var initFileNames = map[string]string{
	"yaml": ".regionfold.yml",
	"json": ".regionfold.json",
}

type initFlags struct {
	force  bool
	print  bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		Long: `Write a .regionfold.yml with every setting documented inline.

A JSON file is not discovered automatically; pass it with --config.

Examples:
  regionfold init
  regionfold init --format json
  regionfold init --output ci/regionfold.yml --force
  regionfold init --print > regionfold.yml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runInit(ctx, cmd.OutOrStdout(), flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing file")
	cmd.Flags().BoolVar(&flags.print, "print", false, "write the template to stdout instead of a file")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "template format: yaml, json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "file to write (default .regionfold.yml or .regionfold.json)")

	return cmd
}

func runInit(ctx context.Context, stdout io.Writer, flags *initFlags) error {
	defaultName, ok := initFileNames[flags.format]
	if !ok {
		return errors.Join(ErrUsage, fmt.Errorf("invalid format %q: must be yaml or json", flags.format))
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{Format: flags.format})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if flags.print {
		_, err := stdout.Write(content)
		return err
	}

	output := flags.output
	if output == "" {
		output = defaultName
	}
	target, err := filepath.Abs(output)
	if err != nil {
		return fmt.Errorf("resolve %q: %w", output, err)
	}

	logger := logging.NewInteractive()

	if _, statErr := os.Stat(target); statErr == nil && flags.force {
		logger.Warn("overwriting existing file", logging.FieldPath, output)
	}

	switch err := fsutil.WriteAtomic(ctx, target, content, fsutil.WriteOptions{NoClobber: !flags.force}); {
	case errors.Is(err, fsutil.ErrExists):
		return fmt.Errorf("file %q already exists; use --force to overwrite: %w", output, err)
	case err != nil:
		return fmt.Errorf("write %q: %w", output, err)
	}

	logger.Info("created configuration file", logging.FieldOutput, output)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		logger.Info("edit it, then run 'regionfold regions' to see the regions it selects")
	}
	return nil
}
