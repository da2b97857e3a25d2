package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantastica/qubench/harness"
)

func TestWriteChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "benchmark_qft.png")

	require.NoError(t, WriteChart(path, buildTable(t)))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWriteChartOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "benchmark_qft.png")

	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))
	require.NoError(t, WriteChart(path, buildTable(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, []byte("stale"), data)
}

func TestWriteChartNoColumns(t *testing.T) {
	table, err := harness.NewTable(1, 3)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "benchmark_qft.png")
	assert.Error(t, WriteChart(path, table))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no artifact should be written")
}

func TestSegmentsBreakOnMissing(t *testing.T) {
	table, err := harness.NewTable(1, 5)
	require.NoError(t, err)
	require.NoError(t, table.AddColumn("Engine 1.0"))

	for _, n := range []int{1, 2, 4, 5} {
		require.NoError(t, table.Set(n, "Engine 1.0", float64(n)))
	}

	segs := segments(table.Rows(), "Engine 1.0")
	require.Len(t, segs, 2)
	assert.Len(t, segs[0], 2)
	assert.Len(t, segs[1], 2)
	assert.Equal(t, 4.0, segs[1][0].X)
}

func TestQubitTicks(t *testing.T) {
	ticks := qubitTicks(1, 7)

	require.Len(t, ticks, 4)
	assert.Equal(t, 1.0, ticks[0].Value)
	assert.Equal(t, "7", ticks[3].Label)
}
