package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunDefaults(t *testing.T) {
	out, err := execute(t, "--log-level", "off")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "cycle 0: frames=2048"))
	assert.True(t, strings.HasPrefix(lines[1], "cycle 1: frames=2048"))
}

func TestRunFlags(t *testing.T) {
	out, err := execute(t, "--cycles", "3", "--blocks", "2", "--block-size", "64", "--gain-db", "-120", "--log-level", "off")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[2], "frames=128 peak=0.0000 (-90.0 dB)")
}

func TestRunEnvironment(t *testing.T) {
	t.Setenv("LV2RUN_CYCLES", "1")
	t.Setenv("LV2RUN_BLOCK_SIZE", "32")

	out, err := execute(t, "--log-level", "off")
	require.NoError(t, err)
	assert.Equal(t, "cycle 0: frames=256", strings.SplitN(strings.TrimSpace(out), " peak", 2)[0])
}

func TestRunConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lv2run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cycles: 1\nblocks: 1\nblock-size: 8\n"), 0o644))

	out, err := execute(t, "--config", path, "--log-level", "off")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "cycle 0: frames=8 "))
}

func TestRunRejectsBadSettings(t *testing.T) {
	_, err := execute(t, "--block-size", "0")
	assert.ErrorContains(t, err, "block size")

	_, err = execute(t, "--log-level", "loud")
	assert.ErrorContains(t, err, "unknown log level")

	_, err = execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")
}
