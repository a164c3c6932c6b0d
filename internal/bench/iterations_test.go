package bench

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/FastFilter/bloomfilter"
)

func TestRunIterationsBloom(t *testing.T) {
	rows, err := RunIterations(IterationConfig{
		Config:     Config{Capacity: 10000, ErrorRate: 0.01, Seed: 5},
		Iterations: 3,
		Population: 2000,
	})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for i, row := range rows {
		assert.Equal(t, i+1, row.Index)
		assert.Equal(t, uint64(i+1)*2000, row.Count)
		assert.Zero(t, row.FalseNegativePct)
		assert.Less(t, row.FalsePositivePct, 10.0)
	}
}

func TestRunIterationsExactSet(t *testing.T) {
	rows, err := RunIterations(IterationConfig{
		Config:     Config{Seed: 5},
		Iterations: 2,
		Population: 1000,
		Exact:      true,
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Zero(t, row.FalsePositivePct)
		assert.Zero(t, row.FalseNegativePct)
	}
}

func TestRunIterationsOverfullFilterDegrades(t *testing.T) {
	rows, err := RunIterations(IterationConfig{
		Config:     Config{Capacity: 1000, ErrorRate: 0.01, Seed: 11},
		Iterations: 5,
		Population: 1000,
	})
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Greater(t, rows[4].FalsePositivePct, rows[0].FalsePositivePct)
	assert.Zero(t, rows[4].FalseNegativePct)
}

func TestRunIterationsRejectsBadParameters(t *testing.T) {
	_, err := RunIterations(IterationConfig{Config: Config{Capacity: 100, ErrorRate: 0}})
	require.ErrorIs(t, err, bloomfilter.ErrInvalidParameter)
}

func TestSetMembership(t *testing.T) {
	s := Set{}
	for _, k := range []string{"1", "2", "6"} {
		s.Add([]byte(k))
	}
	assert.True(t, s.Contains([]byte("1")))
	assert.False(t, s.Contains([]byte("3")))
}

func TestWriteIterations(t *testing.T) {
	rows := []Iteration{
		{Index: 1, Count: 2000, FalsePositivePct: 0.5, Elapsed: 250 * time.Millisecond, HeapGrowth: 4096},
		{Index: 2, Count: 4000, FalsePositivePct: 0.75, Elapsed: time.Second, HeapGrowth: -128},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteIterations(&buf, language.English, rows))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Iteration,"))
	assert.Contains(t, lines[1], "2,000")
	assert.Contains(t, lines[1], "0.5000")
	assert.Contains(t, lines[1], "4,096")
	assert.Contains(t, lines[2], "4,000")
	assert.Contains(t, lines[2], "0.7500")
}
