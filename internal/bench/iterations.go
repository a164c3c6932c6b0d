package bench

import (
	"fmt"
	"io"
	"math/rand/v2"
	"runtime"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/FastFilter/bloomfilter"
)

// Defaults for RunIterations.
const (
	DefaultIterations = 10
	DefaultPopulation = 100000
)

// Membership is the part of a set that the iteration benchmark drives.
// BloomFilter satisfies it, and so does the exact Set baseline.
type Membership interface {
	Add(item []byte)
	Contains(item []byte) bool
}

// Set is an exact membership baseline: no false positives, memory growing
// with every distinct key.
type Set map[string]struct{}

// Add inserts a copy of item.
func (s Set) Add(item []byte) {
	s[string(item)] = struct{}{}
}

// Contains reports whether item was added.
func (s Set) Contains(item []byte) bool {
	_, ok := s[string(item)]
	return ok
}

// IterationConfig runs Iterations rounds of Population insertions into one
// structure. Capacity and ErrorRate size the Bloom filter; insertions are
// not capped at Capacity, so later rounds show the rate degrading once the
// filter is overfull.
type IterationConfig struct {
	Config
	Iterations int
	Population uint64
	// Exact benchmarks Set instead of a Bloom filter.
	Exact bool
}

// Iteration is one row of the iteration table. Rates are cumulative
// percentages over all keys inserted so far.
type Iteration struct {
	Index            int
	Count            uint64
	FalsePositivePct float64
	FalseNegativePct float64
	Elapsed          time.Duration
	// HeapGrowth is the change in live heap bytes over the round.
	HeapGrowth int64
}

func heapAlloc() int64 {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return int64(ms.HeapAlloc)
}

// RunIterations fills a Bloom filter (or Set) round by round and records the
// error rates, time and heap growth of each round. Queries follow the same
// pattern as Run: the key just inserted, then the key with an 'x' appended.
func RunIterations(cfg IterationConfig) ([]Iteration, error) {
	cfg.Config = cfg.Config.withDefaults()
	if cfg.Iterations <= 0 {
		cfg.Iterations = DefaultIterations
	}
	if cfg.Population == 0 {
		cfg.Population = DefaultPopulation
	}

	var ds Membership
	if cfg.Exact {
		ds = Set{}
	} else {
		filter, err := bloomfilter.New(cfg.Capacity, cfg.ErrorRate)
		if err != nil {
			return nil, err
		}
		ds = filter
	}

	r := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9E3779B97F4A7C15))
	buf := make([]byte, cfg.KeyLength+1)
	key := buf[:cfg.KeyLength]

	var falsePositives, falseNegatives uint64
	rows := make([]Iteration, 0, cfg.Iterations)
	for i := 0; i < cfg.Iterations; i++ {
		m0 := heapAlloc()
		start := time.Now()
		for j := uint64(0); j < cfg.Population; j++ {
			randomKey(r, key)
			ds.Add(key)
			if !ds.Contains(key) {
				falseNegatives++
			}
			buf[cfg.KeyLength] = 'x'
			if ds.Contains(buf) {
				falsePositives++
			}
		}
		elapsed := time.Since(start)
		count := uint64(i+1) * cfg.Population
		rows = append(rows, Iteration{
			Index:            i + 1,
			Count:            count,
			FalsePositivePct: float64(falsePositives) * 100 / float64(count),
			FalseNegativePct: float64(falseNegatives) * 100 / float64(count),
			Elapsed:          elapsed,
			HeapGrowth:       heapAlloc() - m0,
		})
	}
	return rows, nil
}

// WriteIterations prints rows as a comma separated table.
func WriteIterations(w io.Writer, tag language.Tag, rows []Iteration) error {
	p := message.NewPrinter(tag)
	if _, err := fmt.Fprintln(w, "Iteration,      Count,    F +ve,    F -ve,       Time,       Memory"); err != nil {
		return err
	}
	for _, row := range rows {
		_, err := p.Fprintf(w, "%9d, %10d, %8.4f, %8.4f, %10.6f, %12d\n",
			row.Index, row.Count, row.FalsePositivePct, row.FalseNegativePct,
			row.Elapsed.Seconds(), row.HeapGrowth)
		if err != nil {
			return err
		}
	}
	return nil
}
