package config_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/regionfold/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies slices", func(t *testing.T) {
		original := &config.Config{
			Syntaxes:       []string{"c-region"},
			Ignore:         []string{"vendor/**"},
			CollapsedLines: []int{3},
			Jobs:           4,
		}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, original, clone)
		assert.Equal(t, original, clone)

		clone.Syntaxes[0] = "html-region"
		clone.Ignore[0] = "other"
		clone.CollapsedLines[0] = 9
		assert.Equal(t, "c-region", original.Syntaxes[0])
		assert.Equal(t, "vendor/**", original.Ignore[0])
		assert.Equal(t, 3, original.CollapsedLines[0])
	})
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Syntaxes = []string{"pragma-region"}
	cfg.Ignore = []string{"build/**"}
	cfg.Jobs = 8

	data, err := cfg.ToYAML()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "jobs", "CLI-only fields are not persisted")

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, cfg.Syntaxes, parsed.Syntaxes)
	assert.Equal(t, cfg.Ignore, parsed.Ignore)
	assert.Equal(t, config.OutlinerAuto, parsed.Outliner)
	assert.Equal(t, config.InitialExpanded, parsed.InitialState)
	assert.Zero(t, parsed.Jobs)
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromYAML(nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.Syntaxes)

	cfg, err = config.FromYAML([]byte("# everything commented out\n# outliner: markers\n"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Outliner)

	_, err = config.FromYAML([]byte("syntax: [c-region]\n"))
	require.Error(t, err, "unknown field must be rejected")

	_, err = config.FromYAML([]byte("syntaxes: c-region: x\n"))
	require.Error(t, err)
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	yamlBytes, err := config.GenerateTemplate(config.TemplateOptions{Format: "yaml"})
	require.NoError(t, err)

	cfg, err := config.FromYAML(yamlBytes)
	require.NoError(t, err, "template must parse as a config")
	assert.Equal(t, []string{"c-region", "pragma-region", "html-region"}, cfg.Syntaxes)
	assert.Equal(t, config.OutlinerAuto, cfg.Outliner)

	jsonBytes, err := config.GenerateTemplate(config.TemplateOptions{Format: "json"})
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(jsonBytes, &doc))
	assert.Equal(t, "auto", doc["outliner"])

	_, err = config.GenerateTemplate(config.TemplateOptions{Format: "toml"})
	require.Error(t, err)
}

func TestValidity(t *testing.T) {
	t.Parallel()

	assert.True(t, config.FormatJSON.IsValid())
	assert.False(t, config.OutputFormat("sarif").IsValid())
	assert.True(t, config.OutlinerMarkdown.IsValid())
	assert.False(t, config.OutlinerMode("ast").IsValid())
}
