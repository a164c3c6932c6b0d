// Command bloombench fills a Bloom filter with random keys and reports how
// many round-trip and how many altered keys are false positives.
//
//	bloombench [-fraction 0.9] [-keylen 40] [-seed N] <capacity> <error-rate>
//	bloombench 1,000,000 0.01
//
// With -iterations it instead inserts -population keys per round and prints
// the cumulative error rates, time and heap growth of each round; -exact
// runs the same rounds against a plain set.
//
//	bloombench -iterations 10 -population 100,000 100,000 0.01
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/FastFilter/bloomfilter"
	"github.com/FastFilter/bloomfilter/internal/bench"
)

const (
	exitOK    = 0
	exitRun   = 1
	exitUsage = 2
)

func locale() string {
	for _, name := range []string{"LC_ALL", "LC_NUMERIC", "LANG"} {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("bloombench", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fraction := fs.Float64("fraction", bench.DefaultFraction, "share of capacity to insert")
	keyLen := fs.Int("keylen", bench.DefaultKeyLength, "length of generated keys")
	seed := fs.Uint64("seed", 0, "key generator seed (0 uses the clock)")
	iterations := fs.Int("iterations", 0, "rounds to run; 0 runs a single pass")
	population := fs.String("population", strconv.Itoa(bench.DefaultPopulation), "keys inserted per round")
	exact := fs.Bool("exact", false, "run the rounds against a plain set")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if fs.NArg() < 2 {
		fmt.Fprintln(stderr, "usage: bloombench [flags] <capacity> <error-rate>")
		fs.PrintDefaults()
		return exitUsage
	}
	capacity, err := bench.ParseCount(fs.Arg(0))
	if err != nil || capacity <= 0 {
		fmt.Fprintf(stderr, "bloombench: capacity must be a positive integer, got %q\n", fs.Arg(0))
		return exitUsage
	}
	errorRate, err := strconv.ParseFloat(fs.Arg(1), 64)
	if err != nil {
		fmt.Fprintf(stderr, "bloombench: bad error rate %q: %v\n", fs.Arg(1), err)
		return exitUsage
	}
	perRound, err := bench.ParseCount(*population)
	if err != nil || perRound <= 0 {
		fmt.Fprintf(stderr, "bloombench: population must be a positive integer, got %q\n", *population)
		return exitUsage
	}

	cfg := bench.Config{
		Capacity:  uint64(capacity),
		ErrorRate: errorRate,
		Fraction:  *fraction,
		KeyLength: *keyLen,
		Seed:      *seed,
	}
	tag := bench.LocaleTag(locale())

	if *iterations > 0 {
		rows, err := bench.RunIterations(bench.IterationConfig{
			Config:     cfg,
			Iterations: *iterations,
			Population: uint64(perRound),
			Exact:      *exact,
		})
		if err != nil {
			return fail(stderr, err)
		}
		if err := bench.WriteIterations(stdout, tag, rows); err != nil {
			return fail(stderr, err)
		}
		return exitOK
	}

	rep, err := bench.Run(cfg)
	if err != nil {
		return fail(stderr, err)
	}
	if err := bench.WriteReport(stdout, tag, rep); err != nil {
		return fail(stderr, err)
	}
	return exitOK
}

// fail reports err; bad filter parameters are the caller's mistake and get
// the usage status.
func fail(stderr io.Writer, err error) int {
	fmt.Fprintln(stderr, "bloombench:", err)
	if errors.Is(err, bloomfilter.ErrInvalidParameter) {
		return exitUsage
	}
	return exitRun
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
