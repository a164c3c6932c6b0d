// Package bench drives a BloomFilter with random string keys and tallies
// how many round-trip, how many are lost and how many altered keys are
// wrongly reported present.
package bench

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/FastFilter/bloomfilter"
)

const (
	// DefaultFraction is the share of Capacity inserted by Run.
	DefaultFraction = 0.9
	// DefaultKeyLength is the length of generated keys.
	DefaultKeyLength = 40
)

// ErrBadCount is returned by ParseCount for text that is not a count.
var ErrBadCount = errors.New("bench: malformed count")

// Config sizes the filter under test and shapes the generated keys. Zero
// values of Fraction, KeyLength and Seed take their defaults.
type Config struct {
	Capacity  uint64
	ErrorRate float64
	// Fraction of Capacity that is actually inserted.
	Fraction  float64
	KeyLength int
	// Seed for key generation; zero picks one from the clock.
	Seed uint64
}

func (c Config) withDefaults() Config {
	if c.Fraction <= 0 {
		c.Fraction = DefaultFraction
	}
	if c.KeyLength <= 0 {
		c.KeyLength = DefaultKeyLength
	}
	if c.Seed == 0 {
		c.Seed = uint64(time.Now().UnixNano())
	}
	return c
}

// Report holds the tallies of one Run.
type Report struct {
	Capacity       uint64
	ErrorRate      float64
	Bits           uint64
	Hashes         uint32
	Added          uint64
	Elapsed        time.Duration
	Pass           uint64
	FalseNegatives uint64
	FalsePositives uint64
	// EstimatedRate is the theoretical false-positive rate after Added
	// insertions.
	EstimatedRate float64
}

// ObservedRate is the share of altered keys reported present.
func (r Report) ObservedRate() float64 {
	if r.Added == 0 {
		return 0
	}
	return float64(r.FalsePositives) / float64(r.Added)
}

// randomKey fills buf with characters in '0'..'0'+71.
func randomKey(r *rand.Rand, buf []byte) {
	for i := range buf {
		buf[i] = '0' + byte(r.Uint32N(72))
	}
}

// Run inserts random keys one at a time. Each key is queried right after
// insertion, then queried again with an 'x' appended. The altered query is a
// cheap source of keys that were never inserted; it says nothing about the
// filter beyond its false-positive rate.
func Run(cfg Config) (Report, error) {
	cfg = cfg.withDefaults()
	filter, err := bloomfilter.New(cfg.Capacity, cfg.ErrorRate)
	if err != nil {
		return Report{}, err
	}

	rep := Report{
		Capacity:  cfg.Capacity,
		ErrorRate: cfg.ErrorRate,
		Bits:      filter.Size(),
		Hashes:    filter.NumHashes(),
		Added:     uint64(float64(cfg.Capacity) * cfg.Fraction),
	}

	r := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9E3779B97F4A7C15))
	buf := make([]byte, cfg.KeyLength+1)
	key := buf[:cfg.KeyLength]

	start := time.Now()
	for i := uint64(0); i < rep.Added; i++ {
		randomKey(r, key)
		filter.Add(key)
		if filter.Contains(key) {
			rep.Pass++
		} else {
			rep.FalseNegatives++
		}
		buf[cfg.KeyLength] = 'x'
		if filter.Contains(buf) {
			rep.FalsePositives++
		}
	}
	rep.Elapsed = time.Since(start)
	rep.EstimatedRate = filter.EstimatedFalsePositiveRate(rep.Added)
	return rep, nil
}

// ParseCount parses a decimal integer that may carry leading spaces, a sign
// and ',' group separators, such as "1,000,000".
func ParseCount(s string) (int64, error) {
	str := strings.TrimLeft(s, " ")
	sign := int64(1)
	switch {
	case strings.HasPrefix(str, "-"):
		sign = -1
		str = str[1:]
	case strings.HasPrefix(str, "+"):
		str = str[1:]
	}
	var result int64
	digits := 0
	for _, c := range str {
		switch {
		case c >= '0' && c <= '9':
			if result > (1<<63-1-int64(c-'0'))/10 {
				return 0, fmt.Errorf("%w: %q overflows", ErrBadCount, s)
			}
			result = result*10 + int64(c-'0')
			digits++
		case c == ',':
		default:
			return 0, fmt.Errorf("%w: unexpected %q in %q", ErrBadCount, c, s)
		}
	}
	if digits == 0 {
		return 0, fmt.Errorf("%w: no digits in %q", ErrBadCount, s)
	}
	return sign * result, nil
}

// LocaleTag maps a POSIX locale name such as "de_DE.UTF-8" to a language
// tag, falling back to English.
func LocaleTag(posix string) language.Tag {
	name, _, _ := strings.Cut(posix, ".")
	name, _, _ = strings.Cut(name, "@")
	if name == "" || name == "C" || name == "POSIX" {
		return language.English
	}
	tag, err := language.Parse(strings.ReplaceAll(name, "_", "-"))
	if err != nil {
		return language.English
	}
	return tag
}

// WriteReport prints rep with numbers grouped the way tag expects.
func WriteReport(w io.Writer, tag language.Tag, rep Report) error {
	p := message.NewPrinter(tag)
	lines := []struct {
		format string
		args   []any
	}{
		{"Capacity : %d\n", []any{rep.Capacity}},
		{"Error : %f\n", []any{rep.ErrorRate}},
		{"Bloom filter created with size: %d bits and %d hash functions\n", []any{rep.Bits, rep.Hashes}},
		{"Number of entries added : %d\n", []any{rep.Added}},
		{"Time taken : %d ms\n", []any{rep.Elapsed.Milliseconds()}},
		{"Pass Count : %d\n", []any{rep.Pass}},
		{"False -Ve Count : %d\n", []any{rep.FalseNegatives}},
		{"False +Ve Count : %d\n", []any{rep.FalsePositives}},
		{"False +Ve Rate : %.4f%% (estimated %.4f%%)\n", []any{rep.ObservedRate() * 100, rep.EstimatedRate * 100}},
	}
	for _, l := range lines {
		if _, err := p.Fprintf(w, l.format, l.args...); err != nil {
			return err
		}
	}
	return nil
}
