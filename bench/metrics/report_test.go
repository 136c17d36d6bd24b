package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistOf(t *testing.T) {
	d := DistOf([]float64{5, 1, 4, 2, 3})
	assert.Equal(t, 3.0, d.P50)
	assert.Equal(t, 5.0, d.Max)
	assert.Equal(t, 3.0, d.Avg)
	assert.Equal(t, 5, d.N)
	assert.Equal(t, Dist{}, DistOf(nil))
}

func TestDurationsMicros(t *testing.T) {
	assert.Equal(t, []float64{1.5, 1000}, DurationsMicros([]time.Duration{1500, time.Millisecond}))
}

func TestWriteStageCCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "c.csv")
	require.NoError(t, WriteStageCCSV([]StageCRow{{Type: 5, Name: "cyan", Groups: 10, AttemptsMean: 312.5}}, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "cyan", records[1][1])
	assert.Equal(t, "312.50", records[1][4])
}

func TestBytesPerNode(t *testing.T) {
	before := Snapshot{HeapAlloc: 1000, Nodes: 8}
	after := Snapshot{HeapAlloc: 3000, Nodes: 88}
	assert.Equal(t, 25.0, BytesPerNode(before, after))
	assert.Zero(t, BytesPerNode(after, before))
}
