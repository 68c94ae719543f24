package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/regionfold/internal/cli"
	"github.com/yaklabco/regionfold/pkg/reporter"
)

const nestedCSharp = `namespace Demo
{
    #region Fields
    private int a;
    #region Inner
    private int b;
    #endregion
    #endregion
}
`

const markdownDoc = `# Title

<!-- region Setup -->
Install the tool.
<!-- endregion -->
`

// fixture writes the sample files plus an empty config file that shields
// the run from any project config above the package directory.
func fixture(t *testing.T) (dir, cfgFile string) {
	t.Helper()

	dir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Program.cs"), []byte(nestedCSharp), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte(markdownDoc), 0o644))

	cfgFile = filepath.Join(t.TempDir(), ".regionfold.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("outliner: auto\n"), 0o644))
	return dir, cfgFile
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), err
}

func executeJSON(t *testing.T, args ...string) reporter.JSONOutput {
	t.Helper()

	out, err := execute(t, append(args, "--format", "json")...)
	require.NoError(t, err)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &output), out)
	return output
}

func TestIntegration_Regions(t *testing.T) {
	t.Parallel()

	dir, cfgFile := fixture(t)

	output := executeJSON(t, "regions", "--config", cfgFile, dir)

	assert.Empty(t, output.Transition)
	require.Len(t, output.Files, 2)
	assert.Equal(t, 3, output.Summary.Regions)
	assert.Equal(t, 2, output.Summary.BySyntax["c-region"])
	assert.Equal(t, 1, output.Summary.BySyntax["html-region"])

	program := output.Files[0]
	assert.True(t, strings.HasSuffix(program.Path, "Program.cs"), program.Path)
	require.Len(t, program.Regions, 2)
	assert.Equal(t, "#region Fields", program.Regions[0].Label)
	assert.Equal(t, 3, program.Regions[0].StartLine)
	assert.Equal(t, 1, program.Regions[1].Depth)
}

func TestIntegration_SyntaxFilter(t *testing.T) {
	t.Parallel()

	dir, cfgFile := fixture(t)

	output := executeJSON(t, "regions", "--config", cfgFile, "--syntax", "html-region", dir)

	assert.Equal(t, 1, output.Summary.Regions)
	assert.Equal(t, map[string]int{"html-region": 1}, output.Summary.BySyntax)
}

func TestIntegration_Collapse(t *testing.T) {
	t.Parallel()

	dir, cfgFile := fixture(t)

	output := executeJSON(t, "collapse", "--config", cfgFile, filepath.Join(dir, "Program.cs"))

	assert.Equal(t, "collapse", output.Transition)
	assert.Equal(t, 2, output.Summary.Collapsed)
	for _, region := range output.Files[0].Regions {
		assert.Equal(t, "expanded", region.Before)
		assert.Equal(t, "collapsed", region.After)
	}
}

func TestIntegration_ExpandOnlyCollapsed(t *testing.T) {
	t.Parallel()

	dir, cfgFile := fixture(t)

	output := executeJSON(t, "expand", "--config", cfgFile,
		"--collapsed-lines", "5", filepath.Join(dir, "Program.cs"))

	require.Len(t, output.Files, 1)
	regions := output.Files[0].Regions
	require.Len(t, regions, 2)
	assert.Equal(t, "unchanged", regions[0].Action)
	assert.Equal(t, "expanded", regions[1].Action)
	assert.Equal(t, 1, output.Summary.Expanded)
}

func TestIntegration_ToggleFromCollapsed(t *testing.T) {
	t.Parallel()

	dir, cfgFile := fixture(t)

	output := executeJSON(t, "toggle", "--config", cfgFile, "--initial", "collapsed", dir)

	assert.Equal(t, 3, output.Summary.Expanded)
	assert.Zero(t, output.Summary.Collapsed)
}

func TestIntegration_ConfigFileApplies(t *testing.T) {
	t.Parallel()

	dir, _ := fixture(t)
	cfgFile := filepath.Join(t.TempDir(), "custom.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("syntaxes: [c-region]\ninitial_state: collapsed\n"), 0o644))

	output := executeJSON(t, "expand", "--config", cfgFile, dir)

	assert.Equal(t, 2, output.Summary.Regions)
	assert.Equal(t, 2, output.Summary.Expanded)
}

func TestIntegration_TextOutput(t *testing.T) {
	t.Parallel()

	dir, cfgFile := fixture(t)

	out, err := execute(t, "collapse", "--config", cfgFile, "--color", "never", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "Program.cs (2 regions)")
	assert.Contains(t, out, "README.md (1 region)")
	assert.Contains(t, out, "expanded -> collapsed")
	assert.Contains(t, out, "3 regions in 2 files, 3 collapsed")
}

func TestIntegration_InvalidConfig(t *testing.T) {
	t.Parallel()

	dir, _ := fixture(t)
	cfgFile := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("outliner: guess\n"), 0o644))

	_, err := execute(t, "regions", "--config", cfgFile, dir)
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}

func TestIntegration_InvalidFlagValues(t *testing.T) {
	t.Parallel()

	dir, cfgFile := fixture(t)

	_, err := execute(t, "regions", "--config", cfgFile, "--format", "sarif", dir)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))

	_, err = execute(t, "expand", "--config", cfgFile, "--initial", "half", dir)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))

	_, err = execute(t, "regions", "--config", cfgFile, "--syntax", "fortran", dir)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}

func TestIntegration_MissingPath(t *testing.T) {
	t.Parallel()

	dir, cfgFile := fixture(t)

	_, err := execute(t, "regions", "--config", cfgFile, filepath.Join(dir, "missing.cs"))
	require.Error(t, err)
	assert.Equal(t, cli.ExitIOError, cli.ExitCode(err))
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".regionfold.yml")

	_, err := execute(t, "init", "--output", path)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "outliner: auto")

	_, err = execute(t, "init", "--output", path)
	require.Error(t, err)
	assert.Equal(t, cli.ExitIOError, cli.ExitCode(err))

	_, err = execute(t, "init", "--output", path, "--force")
	require.NoError(t, err)

	// The generated file is a valid config.
	dir, _ := fixture(t)
	output := executeJSON(t, "regions", "--config", path, dir)
	assert.Equal(t, 3, output.Summary.Regions)
}

func TestIntegration_InitJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "regionfold.json")

	_, err := execute(t, "init", "--format", "json", "--output", path)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(content, &parsed))
	assert.Equal(t, "auto", parsed["outliner"])

	_, err = execute(t, "init", "--format", "toml", "--output", path+".toml")
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestIntegration_InitPrint(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "init", "--print", "--format", "json")
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, "expanded", parsed["initial_state"])
}
