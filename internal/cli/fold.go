package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/regionfold/internal/configloader"
	"github.com/yaklabco/regionfold/internal/logging"
	"github.com/yaklabco/regionfold/pkg/config"
	"github.com/yaklabco/regionfold/pkg/fold"
	"github.com/yaklabco/regionfold/pkg/reporter"
	"github.com/yaklabco/regionfold/pkg/runner"
)

type foldFlags struct {
	format         string
	jobs           int
	syntaxes       []string
	outliner       string
	ignore         []string
	extensions     []string
	initial        string
	collapsedLines []int
	compact        bool
	verbose        bool
	noSummary      bool
}

func newRegionsCommand() *cobra.Command {
	flags := &foldFlags{}

	cmd := &cobra.Command{
		Use:   "regions [paths...]",
		Short: "List region blocks and their fold state",
		Long: `List the region blocks found in source and markup files.

By default, scans the current directory and subdirectories for files with
known extensions. Specify paths to scan specific files or directories.

Examples:
  regionfold regions                        # List regions under the current directory
  regionfold regions src/Program.cs         # List regions in one file
  regionfold regions --syntax c-region      # Only C#/VB #region blocks
  regionfold regions --format json          # Output as JSON`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFold(cmd, args, nil, flags)
		},
	}

	addFoldFlags(cmd, flags)

	return cmd
}

func newTransitionCommand(transition fold.Transition) *cobra.Command {
	flags := &foldFlags{}
	name := transition.String()

	var short string
	switch transition {
	case fold.TransitionExpand:
		short = "Expand every collapsed region"
	case fold.TransitionCollapse:
		short = "Collapse every expanded region"
	default:
		short = "Flip the fold state of every region"
	}

	cmd := &cobra.Command{
		Use:   name + " [paths...]",
		Short: short,
		Long: short + `.

Each file starts from a simulated fold state: every foldable span is
expanded unless --initial collapsed is given, and spans starting on the
lines listed in --collapsed-lines start collapsed. Only region spans are
touched; other foldable blocks keep their state.

Examples:
  regionfold ` + name + ` src/
  regionfold ` + name + ` --initial collapsed Program.cs
  regionfold ` + name + ` --collapsed-lines 3,10 Program.cs
  regionfold ` + name + ` --format table`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFold(cmd, args, &transition, flags)
		},
	}

	addFoldFlags(cmd, flags)

	return cmd
}

func addFoldFlags(cmd *cobra.Command, flags *foldFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: "+reporter.FormatNames())
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.syntaxes, "syntax", nil,
		"marker syntaxes to treat as regions: c-region, pragma-region, html-region (default all)")
	cmd.Flags().StringVar(&flags.outliner, "outliner", "", "span discovery: auto, markers, markdown")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.extensions, "extensions", nil, "file extensions to scan in directories")
	cmd.Flags().StringVar(&flags.initial, "initial", "", "simulated initial fold state: expanded, collapsed")
	cmd.Flags().IntSliceVar(&flags.collapsedLines, "collapsed-lines", nil,
		"1-based lines whose spans start collapsed")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().BoolVar(&flags.verbose, "verbose", false, "also list files without regions and print a summary block")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "hide the summary line")
}

// cliConfig maps explicitly set flags onto a config layer. Unset flags stay
// zero so lower layers are not overridden.
func (f *foldFlags) cliConfig(cmd *cobra.Command) *config.Config {
	cfg := &config.Config{}
	changed := cmd.Flags().Changed

	if changed("format") {
		cfg.Format = config.OutputFormat(f.format)
	}
	if changed("jobs") {
		cfg.Jobs = f.jobs
	}
	if changed("syntax") {
		cfg.Syntaxes = f.syntaxes
	}
	if changed("outliner") {
		cfg.Outliner = config.OutlinerMode(f.outliner)
	}
	if changed("ignore") {
		cfg.Ignore = f.ignore
	}
	if changed("extensions") {
		cfg.Extensions = f.extensions
	}
	if changed("initial") {
		cfg.InitialState = f.initial
	}
	if changed("collapsed-lines") {
		cfg.CollapsedLines = f.collapsedLines
	}

	return cfg
}

func runFold(cmd *cobra.Command, args []string, transition *fold.Transition, flags *foldFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, logger := logging.With(ctx, logging.FieldTransition, transitionName(transition))

	if cmd.Flags().Changed("format") {
		if _, err := reporter.ParseFormat(flags.format); err != nil {
			return errors.Join(ErrUsage, err)
		}
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    flags.cliConfig(cmd),
	})
	if err != nil {
		return errors.Join(ErrConfig, err)
	}

	finalCfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldConfigFile, loadResult.LoadedFrom)
	}

	syntaxes, err := configloader.ResolveSyntaxes(finalCfg.Syntaxes)
	if err != nil {
		return errors.Join(ErrConfig, err)
	}

	initial := fold.StateExpanded
	if finalCfg.InitialState == config.InitialCollapsed {
		initial = fold.StateCollapsed
	}

	runOpts := runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		Extensions:     normalizeExtensions(finalCfg.Extensions),
		ExcludeGlobs:   finalCfg.Ignore,
		Jobs:           finalCfg.Jobs,
		Transition:     transition,
		InitialState:   initial,
		CollapsedLines: finalCfg.CollapsedLines,
		Syntaxes:       syntaxes,
		Outliner:       finalCfg.Outliner,
	}

	logger.Debug("starting run",
		logging.FieldPaths, args,
		logging.FieldWorkingDir, workDir,
		logging.FieldSyntaxes, finalCfg.Syntaxes,
		logging.FieldOutliner, finalCfg.Outliner,
		logging.FieldInitial, finalCfg.InitialState,
		logging.FieldJobs, finalCfg.Jobs,
	)

	result, err := runner.New().Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("%s run failed: %w", transitionName(transition), err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	format, err := reporter.ParseFormat(string(finalCfg.Format))
	if err != nil {
		return errors.Join(ErrConfig, err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       colorMode,
		ShowSummary: !flags.noSummary,
		Verbose:     flags.verbose,
		Compact:     flags.compact,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrFoldFailures
	}

	return nil
}

// normalizeExtensions lower-cases extensions and adds a missing leading dot.
func normalizeExtensions(extensions []string) []string {
	if len(extensions) == 0 {
		return nil
	}

	out := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

func transitionName(transition *fold.Transition) string {
	if transition == nil {
		return "list"
	}
	return transition.String()
}
