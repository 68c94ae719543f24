package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/regionfold/pkg/config"
)

// EnvPrefix starts every environment variable regionfold reads.
const EnvPrefix = "REGIONFOLD_"

// EnvVar describes one supported environment variable.
type EnvVar struct {
	Name  string
	Usage string

	set func(cfg *config.Config, value string) error
}

// envVars is sorted by name.
//
//nolint:gochecknoglobals // lookup table
var envVars = []EnvVar{
	{
		Name:  EnvPrefix + "EXTENSIONS",
		Usage: "comma-separated file extensions to scan",
		set:   func(cfg *config.Config, v string) error { cfg.Extensions = splitList(v); return nil },
	},
	{
		Name:  EnvPrefix + "FORMAT",
		Usage: "output format: text, table, json",
		set:   func(cfg *config.Config, v string) error { cfg.Format = config.OutputFormat(v); return nil },
	},
	{
		Name:  EnvPrefix + "IGNORE",
		Usage: "comma-separated glob patterns to ignore",
		set:   func(cfg *config.Config, v string) error { cfg.Ignore = splitList(v); return nil },
	},
	{
		Name:  EnvPrefix + "INITIAL_STATE",
		Usage: "simulated initial fold state: expanded, collapsed",
		set:   func(cfg *config.Config, v string) error { cfg.InitialState = v; return nil },
	},
	{
		Name:  EnvPrefix + "JOBS",
		Usage: "number of parallel workers (0 = auto)",
		set: func(cfg *config.Config, v string) error {
			jobs, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("not an integer: %q", v)
			}
			cfg.Jobs = jobs
			return nil
		},
	},
	{
		Name:  EnvPrefix + "OUTLINER",
		Usage: "span discovery: auto, markers, markdown",
		set:   func(cfg *config.Config, v string) error { cfg.Outliner = config.OutlinerMode(v); return nil },
	},
	{
		Name:  EnvPrefix + "SYNTAXES",
		Usage: "comma-separated marker syntaxes: c-region, pragma-region, html-region",
		set:   func(cfg *config.Config, v string) error { cfg.Syntaxes = splitList(v); return nil },
	},
}

// EnvVars lists the supported environment variables by name.
func EnvVars() []EnvVar {
	out := make([]EnvVar, len(envVars))
	copy(out, envVars)
	return out
}

// LoadFromEnv overrides cfg with every non-empty REGIONFOLD_ variable.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}
	for _, v := range envVars {
		value := strings.TrimSpace(os.Getenv(v.Name))
		if value == "" {
			continue
		}
		if err := v.set(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", v.Name, err)
		}
	}
	return nil
}

// splitList splits a comma-separated value, dropping blank items.
func splitList(value string) []string {
	var items []string
	for item := range strings.SplitSeq(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
