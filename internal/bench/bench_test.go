package bench

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/FastFilter/bloomfilter"
)

func TestRun(t *testing.T) {
	rep, err := Run(Config{Capacity: 20000, ErrorRate: 0.01, Seed: 42})
	require.NoError(t, err)
	assert.Equal(t, uint64(18000), rep.Added)
	assert.Equal(t, rep.Added, rep.Pass)
	assert.Zero(t, rep.FalseNegatives)
	assert.Equal(t, uint32(7), rep.Hashes)
	assert.Greater(t, rep.Bits, rep.Capacity)

	// within an order of magnitude of the configured rate
	assert.Less(t, rep.ObservedRate(), 0.1)
	assert.Less(t, rep.EstimatedRate, 0.01)
	t.Logf("observed %.4f estimated %.4f in %v", rep.ObservedRate(), rep.EstimatedRate, rep.Elapsed)
}

func TestRunIsReproducible(t *testing.T) {
	a, err := Run(Config{Capacity: 5000, ErrorRate: 0.05, Seed: 9})
	require.NoError(t, err)
	b, err := Run(Config{Capacity: 5000, ErrorRate: 0.05, Seed: 9})
	require.NoError(t, err)
	assert.Equal(t, a.FalsePositives, b.FalsePositives)
	assert.Equal(t, a.Pass, b.Pass)
}

func TestRunCustomShape(t *testing.T) {
	rep, err := Run(Config{Capacity: 100, ErrorRate: 0.1, Fraction: 0.5, KeyLength: 3, Seed: 1})
	require.NoError(t, err)
	assert.Equal(t, uint64(50), rep.Added)
	assert.Equal(t, uint64(50), rep.Pass)
}

func TestRunRejectsBadParameters(t *testing.T) {
	_, err := Run(Config{Capacity: 0, ErrorRate: 0.01})
	require.ErrorIs(t, err, bloomfilter.ErrInvalidParameter)
	_, err = Run(Config{Capacity: 10, ErrorRate: 1})
	require.ErrorIs(t, err, bloomfilter.ErrInvalidParameter)
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"1000", 1000},
		{"1,000,000", 1000000},
		{"  42", 42},
		{"+7", 7},
		{"-1,5", -15},
	}
	for _, tt := range tests {
		got, err := ParseCount(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, in := range []string{"", "abc", "12a", "1.5", ",", "99999999999999999999"} {
		_, err := ParseCount(in)
		assert.ErrorIs(t, err, ErrBadCount, in)
	}
}

func TestLocaleTag(t *testing.T) {
	assert.Equal(t, language.English, LocaleTag(""))
	assert.Equal(t, language.English, LocaleTag("C"))
	assert.Equal(t, language.English, LocaleTag("POSIX"))
	assert.Equal(t, language.MustParse("de-DE"), LocaleTag("de_DE.UTF-8"))
	assert.Equal(t, language.English, LocaleTag("not a locale!"))
}

func TestWriteReport(t *testing.T) {
	rep := Report{
		Capacity:       1000000,
		ErrorRate:      0.01,
		Bits:           9585059,
		Hashes:         7,
		Added:          900000,
		Elapsed:        1500 * time.Millisecond,
		Pass:           900000,
		FalsePositives: 6000,
		EstimatedRate:  0.0067,
	}
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, language.English, rep))
	out := buf.String()
	assert.Contains(t, out, "Capacity : 1,000,000\n")
	assert.Contains(t, out, "size: 9,585,059 bits and 7 hash functions\n")
	assert.Contains(t, out, "Time taken : 1,500 ms\n")
	assert.Contains(t, out, "False -Ve Count : 0\n")
	assert.Contains(t, out, "False +Ve Count : 6,000\n")
}
