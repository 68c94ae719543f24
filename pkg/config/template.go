package config

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Format is the output format: "yaml" or "json".
	Format string
}

const yamlTemplate = `# regionfold configuration
# See: https://github.com/yaklabco/regionfold

# Region marker syntaxes to recognise: c-region, pragma-region, html-region.
# Leave empty to recognise all of them.
syntaxes:
  - c-region
  - pragma-region
  - html-region

# How foldable spans are discovered: auto, markers, or markdown
outliner: auto

# Simulated state of every span before a transition: expanded or collapsed
initial_state: expanded

# File extensions to scan when walking directories
# extensions:
#   - .cs
#   - .cpp
#   - .md

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"
`

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch opts.Format {
	case "", "yaml":
		return []byte(yamlTemplate), nil
	case "json":
		return templateToJSON([]byte(yamlTemplate))
	default:
		return nil, fmt.Errorf("unsupported template format %q", opts.Format)
	}
}

// templateToJSON converts the YAML template to JSON. Comments are lost.
func templateToJSON(yamlContent []byte) ([]byte, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(yamlContent, &doc); err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return append(jsonBytes, '\n'), nil
}
