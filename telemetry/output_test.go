package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/boxfall/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	require.NoError(t, err)
	assert.Nil(t, om)

	// Nil manager is a no-op
	assert.NoError(t, om.WriteTelemetry(WindowStats{}))
	assert.NoError(t, om.WritePerf(PerfStats{}, 0))
	assert.NoError(t, om.WriteConfig(config.Defaults()))
	assert.NoError(t, om.Close())
	assert.Equal(t, "", om.Dir())
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, om.Dir())

	require.NoError(t, om.WriteTelemetry(WindowStats{WindowEndTick: 300, Bodies: 309, Settled: 12}))
	require.NoError(t, om.WriteTelemetry(WindowStats{WindowEndTick: 600, Bodies: 309, Settled: 40}))
	require.NoError(t, om.WritePerf(PerfStats{TicksPerSecond: 900}, 300))
	require.NoError(t, om.WriteConfig(config.Defaults()))
	require.NoError(t, om.Close())

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3, "one header and two records")
	assert.True(t, strings.HasPrefix(lines[0], "window_end,sim_time,bodies"))

	var rows []WindowStats
	require.NoError(t, gocsv.UnmarshalBytes(data, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, int32(600), rows[1].WindowEndTick)
	assert.Equal(t, 40, rows[1].Settled)

	perf, err := os.ReadFile(filepath.Join(dir, "perf.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(perf), "step_pct")

	cfg, err := config.Load(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 307, cfg.Boxes.Count)
}
