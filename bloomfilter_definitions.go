// Package bloomfilter is a Bloom filter over byte strings using MurmurHash3
// and Kirsch-Mitzenmacher double hashing.
package bloomfilter

import "errors"

// Seeds for the two base hashes. Changing either one changes every bit
// position, so filters built with different seeds are not comparable.
const (
	Seed1 uint32 = 0x9747b28c
	Seed2 uint32 = 0x3c6ef372
)

// MaxBits is the largest bit array a BloomFilter will allocate. Probe
// indices are 32-bit values, so bits past 2^32 could never be addressed.
const MaxBits = uint64(1) << 32

var (
	// ErrInvalidParameter is returned by New when the expected element count
	// is zero or the false-positive rate is not in the open interval (0,1).
	ErrInvalidParameter = errors.New("bloomfilter: invalid parameter")
	// ErrAllocation is returned by New when the computed bit array cannot be
	// allocated.
	ErrAllocation = errors.New("bloomfilter: bit array too large")
)

// BloomFilter answers "possibly present" or "definitely absent". Its size
// and hash count are fixed at construction and bits are never cleared.
//
// A BloomFilter does no locking. Concurrent calls to Contains are safe, but
// Add must not run concurrently with Add or Contains; see SyncBloomFilter.
type BloomFilter struct {
	size      uint64
	numHashes uint32
	bits      bitField
}
