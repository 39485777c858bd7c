package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gocut/pkg/objfile"
)

const squareOBJ = `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3
f 1 3 4
`

// execute runs the CLI with fresh flag state and returns its stdout
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var commands []*cobra.Command
	var collect func(*cobra.Command)
	collect = func(c *cobra.Command) {
		commands = append(commands, c)
		for _, sub := range c.Commands() {
			collect(sub)
		}
	}
	collect(rootCmd)

	for _, c := range commands {
		for _, fs := range []*pflag.FlagSet{c.Flags(), c.PersistentFlags()} {
			fs.VisitAll(func(f *pflag.Flag) {
				_ = f.Value.Set(f.DefValue)
				f.Changed = false
			})
		}
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func fixtures(t *testing.T) (dir, meshPath, planePath, configPath string) {
	t.Helper()
	dir = t.TempDir()
	meshPath = filepath.Join(dir, "square.obj")
	planePath = filepath.Join(dir, "plane.json")
	configPath = filepath.Join(dir, "gocut.yaml")
	require.NoError(t, os.WriteFile(meshPath, []byte(squareOBJ), 0644))
	require.NoError(t, os.WriteFile(planePath, []byte(`{"origin": [0.5, 0, 0], "normal": [1, 0, 0]}`), 0644))
	require.NoError(t, os.WriteFile(configPath, []byte("logging:\n  level: error\n"), 0644))
	return dir, meshPath, planePath, configPath
}

func TestCutCommand(t *testing.T) {
	dir, meshPath, planePath, configPath := fixtures(t)
	output := filepath.Join(dir, "cut.obj")

	out, err := execute(t, "cut", meshPath, planePath, "-o", output, "--verify", "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Triangles: 2 -> ")
	assert.Contains(t, out, "Straddling after cut: 0")

	m, err := objfile.Load(output)
	require.NoError(t, err)
	assert.Greater(t, m.TriangleCount(), 2)
}

func TestCutCommandSTLFormat(t *testing.T) {
	dir, meshPath, planePath, configPath := fixtures(t)
	output := filepath.Join(dir, "cut.bin")

	_, err := execute(t, "cut", meshPath, planePath, "-o", output, "--format", "stl", "--config", configPath)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Greater(t, len(data), 84)
}

func TestCutCommandRejectsBadTolerance(t *testing.T) {
	dir, meshPath, planePath, configPath := fixtures(t)

	_, err := execute(t, "cut", meshPath, planePath, "-o", filepath.Join(dir, "out.obj"), "--tolerance", "0.7", "--config", configPath)
	assert.Error(t, err)
}

func TestCutCommandArgs(t *testing.T) {
	_, _, _, configPath := fixtures(t)

	_, err := execute(t, "cut", "only-one.obj", "--config", configPath)
	assert.Error(t, err)
}

func TestInfoCommand(t *testing.T) {
	_, meshPath, planePath, configPath := fixtures(t)

	out, err := execute(t, "info", meshPath, "--plane", planePath, "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Vertices: 4")
	assert.Contains(t, out, "Triangles: 2")
	assert.Contains(t, out, "Edges: 5 (boundary 4)")
	assert.Contains(t, out, "Straddling: 2")
}

func TestEdgesCommand(t *testing.T) {
	_, meshPath, _, configPath := fixtures(t)

	out, err := execute(t, "edges", meshPath, "-n", "1", "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Top 1 Longest Edges")
	assert.Contains(t, out, "1.414214")

	out, err = execute(t, "edges", meshPath, "--shortest", "-n", "2", "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Top 2 Shortest Edges")
}

func TestCompletionCommand(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "gocut")

	_, err = execute(t, "completion", "tcsh")
	assert.Error(t, err)
}

func TestMissingConfigFails(t *testing.T) {
	_, meshPath, _, _ := fixtures(t)

	_, err := execute(t, "info", meshPath, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestPreviewCommand(t *testing.T) {
	dir, meshPath, planePath, configPath := fixtures(t)
	output := filepath.Join(dir, "preview.png")

	out, err := execute(t, "preview", meshPath, "--plane", planePath, "--cut", "-o", output,
		"--width", "32", "--height", "24", "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved")

	info, err := os.Stat(output)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	_, err = execute(t, "preview", meshPath, "--cut", "--config", configPath)
	assert.Error(t, err)
}

func TestTrianglesCommand(t *testing.T) {
	_, meshPath, _, configPath := fixtures(t)

	out, err := execute(t, "triangles", meshPath, "--largest", "-n", "1", "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Top 1 Largest Triangles")
	assert.Contains(t, out, "Total surface area: 1.000000")

	_, err = execute(t, "triangles", meshPath, "--largest", "--smallest", "--config", configPath)
	assert.Error(t, err)
}

func TestConfigInitCommand(t *testing.T) {
	dir, _, _, configPath := fixtures(t)
	target := filepath.Join(dir, "written", "gocut.yaml")

	out, err := execute(t, "config", "init", target, "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "level: error")

	_, err = execute(t, "config", "init", target, "--config", configPath)
	assert.Error(t, err)

	_, err = execute(t, "config", "init", target, "--force", "--config", configPath)
	assert.NoError(t, err)
}
