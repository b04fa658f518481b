package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/filabank/filabank/bank"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setup resets the global flags and returns a command capturing output.
func setup(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	logger = zap.NewNop()
	outDir = t.TempDir()
	resolution = 16
	jobs = 2
	partNames = nil
	force = false
	t.Cleanup(func() {
		outDir, resolution, jobs, partNames, force = "", 0, 0, nil, false
	})
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	return cmd, &buf
}

func TestInitCmd(t *testing.T) {
	cmd, out := setup(t)
	dir := t.TempDir()
	for _, name := range []string{"small.yaml", "small.toml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, runInit(cmd, []string{path}))
		assert.Contains(t, out.String(), path)

		cfg, err := bank.Load(path)
		require.NoError(t, err)
		assert.Equal(t, "small", cfg.Name)
		assert.NoError(t, cfg.Validate())

		// Refuses to overwrite without --force.
		assert.Error(t, runInit(cmd, []string{path}))
		force = true
		assert.NoError(t, runInit(cmd, []string{path}))
		force = false
	}
	assert.Error(t, runInit(cmd, []string{filepath.Join(dir, "small.json")}))
}

func TestDimsCmd(t *testing.T) {
	cmd, out := setup(t)
	var err error
	require.NoError(t, runDims(cmd, nil))
	text := out.String()
	assert.Contains(t, text, "default (4 filaments, pla)")
	assert.Contains(t, text, "bearing_roller_count")
	assert.Contains(t, text, "frame_length")
	assert.Contains(t, text, "328.000")

	bad := bank.DefaultConfig()
	bad.Wheel.Diameter = 10
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, bad.Save(path))
	out.Reset()
	assert.Error(t, runDims(cmd, []string{path}))
	assert.Contains(t, out.String(), "wheel web")

	// Configs the derived cascade cannot make sense of still print.
	bad = bank.DefaultConfig()
	bad.Bearing.AxleDiameter = -20
	require.NoError(t, bad.Save(path))
	out.Reset()
	require.NotPanics(t, func() { err = runDims(cmd, []string{path}) })
	assert.Error(t, err)
	assert.Contains(t, out.String(), "wheel_bore_radius")
}

func TestNewTable(t *testing.T) {
	text := newTable([]string{"dimension", "value"}, [][]string{
		{"bearing_bore_radius", "2.200"},
		{"a", "10.000"},
	})
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	require.Len(t, lines, 3)
	col := strings.Index(lines[0], "value")
	require.Positive(t, col)
	assert.Equal(t, col, strings.Index(lines[1], "2.200"))
	assert.Equal(t, col, strings.Index(lines[2], "10.000"))
}

func TestBuildCmd(t *testing.T) {
	cmd, out := setup(t)
	cfg := bank.DefaultConfig()
	cfg.Name = "pins"
	path := filepath.Join(t.TempDir(), "pins.yaml")
	require.NoError(t, cfg.Save(path))

	partNames = []string{"lock_pin", "connector"}
	require.NoError(t, runBuild(cmd, []string{path}))
	assert.FileExists(t, filepath.Join(outDir, "pins", "lock_pin.stl"))
	assert.FileExists(t, filepath.Join(outDir, "pins", "connector.stl"))
	assert.NoFileExists(t, filepath.Join(outDir, "pins", "wheel.stl"))
	assert.Contains(t, out.String(), "built 2 parts")

	partNames = []string{"flux_capacitor"}
	err := runBuild(cmd, []string{path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flux_capacitor")
}

func TestPreviewCmd(t *testing.T) {
	cmd, _ := setup(t)
	cfg := bank.DefaultConfig()
	cfg.Name = "pin"
	path := filepath.Join(t.TempDir(), "pin.toml")
	require.NoError(t, cfg.Save(path))

	partNames = []string{"lock_pin"}
	require.NoError(t, runPreview(cmd, []string{path}))
	assert.FileExists(t, filepath.Join(outDir, "pin", "lock_pin.png"))
}

func TestWatchConfig(t *testing.T) {
	cmd, _ := setup(t)
	cfg := bank.DefaultConfig()
	cfg.Name = "watched"
	path := filepath.Join(t.TempDir(), "watched.yaml")
	require.NoError(t, cfg.Save(path))
	partNames = []string{"lock_pin"}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- watchConfig(ctx, cmd, path) }()
	stl := filepath.Join(outDir, "watched", "lock_pin.stl")
	assert.Eventually(t, func() bool {
		_, err := os.Stat(stl)
		return err == nil
	}, 30*time.Second, 20*time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(30 * time.Second):
		t.Fatal("watch did not stop")
	}
}
