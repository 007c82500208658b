package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-planetwalk/pkg/config"
)

// execute runs the CLI with args and returns stdout and stderr
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRootCommand_HasExpectedSubcommands(t *testing.T) {
	out, _, err := execute(t, "--help")
	require.NoError(t, err)

	for _, sub := range []string{"simulate", "play", "config"} {
		assert.Contains(t, out, sub, "Help missing %q command", sub)
	}
	for _, flag := range []string{"--config", "--log-level", "--log-format"} {
		assert.Contains(t, out, flag)
	}
}

func TestPlay_Help(t *testing.T) {
	out, _, err := execute(t, "play", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "--metrics-addr")
	assert.Contains(t, out, "W/A/S/D")
}

const walkScript = `
duration: 40
entries:
  - step: 0
    move: [0, 1]
`

func TestSimulate_Trace(t *testing.T) {
	script := writeFile(t, "walk.yaml", walkScript)

	out, _, err := execute(t, "simulate", "--script", script, "--log-level", "error")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 42, "header, one row per frame and the summary")
	assert.Contains(t, lines[0], "altitude")
	assert.Contains(t, lines[1], "grounded")

	summary := lines[41]
	assert.Contains(t, summary, "steps=40")
	assert.Contains(t, summary, "state=grounded")
}

func TestSimulate_StepsAndEvery(t *testing.T) {
	out, _, err := execute(t, "simulate", "--steps", "20", "--every", "5", "--log-level", "error")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 6, "header, frames 5/10/15/20 and the summary")
	assert.Contains(t, lines[5], "steps=20 frames=20")
}

func TestSimulate_FrameDT(t *testing.T) {
	out, _, err := execute(t, "simulate", "--steps", "20", "--frame-dt", "0.04", "--view", "none", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "steps=20 frames=10")
}

func TestSimulate_ASCII(t *testing.T) {
	out, _, err := execute(t, "simulate", "--steps", "2", "--view", "ascii",
		"--width", "40", "--height", "12", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "@")
	assert.Contains(t, out, "step 2")
}

func TestSimulate_LogView(t *testing.T) {
	_, errOut, err := execute(t, "simulate", "--steps", "3", "--view", "log",
		"--session", "sim-7", "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, errOut, `"msg":"frame"`)
	assert.Contains(t, errOut, `"session_id":"sim-7"`)
	assert.Contains(t, errOut, `"msg":"session started"`)
}

func TestSimulate_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown view", []string{"simulate", "--view", "hologram"}},
		{"missing script", []string{"simulate", "--script", filepath.Join(t.TempDir(), "none.yaml")}},
		{"invalid script", []string{"simulate", "--script", writeFile(t, "bad.yaml", "entries:\n  - step: 5\n  - step: 2\n")}},
		{"invalid config", []string{"simulate", "--config", writeFile(t, "bad.yaml", "camera:\n  pitchLimits: [60, -30]\n")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, append(tt.args, "--log-level", "error")...)
			assert.Error(t, err)
		})
	}
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planetwalk.yaml")

	out, _, err := execute(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+path)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)

	_, _, err = execute(t, "config", "init", path)
	assert.Error(t, err, "existing file is kept")

	_, _, err = execute(t, "config", "init", "--force", path)
	assert.NoError(t, err)
}

func TestConfigShow(t *testing.T) {
	path := writeFile(t, "small.json", `{"planet": {"radius": 4}, "player": {"spawn": [0, 4, 0]}}`)
	t.Setenv("PLANETWALK_SPEED", "7.5")

	out, _, err := execute(t, "config", "show", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "radius: 4")
	assert.Contains(t, out, "speed: 7.5")
}

func TestConfigShow_BadEnvironment(t *testing.T) {
	t.Setenv("PLANETWALK_SPEED", "fast")
	_, _, err := execute(t, "config", "show")
	assert.Error(t, err)
}
