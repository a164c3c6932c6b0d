package bloomfilter

import (
	"encoding/binary"
	"fmt"
	"math"
	"unsafe"
)

// OptimalParameters returns the bit count m and hash count k that minimise
// the false-positive rate p for n elements:
//
//	m = ceil(-n * ln(p) / (ln 2)^2)
//	k = round(m / n * ln 2), at least 1
func OptimalParameters(expectedElements uint64, falsePositiveRate float64) (uint64, uint32, error) {
	if expectedElements == 0 {
		return 0, 0, fmt.Errorf("%w: expected elements must be positive", ErrInvalidParameter)
	}
	// The negated form also rejects NaN.
	if !(falsePositiveRate > 0 && falsePositiveRate < 1) {
		return 0, 0, fmt.Errorf("%w: false positive rate %v not in (0,1)", ErrInvalidParameter, falsePositiveRate)
	}
	n := float64(expectedElements)
	m := math.Ceil(-n * math.Log(falsePositiveRate) / (math.Ln2 * math.Ln2))
	if math.IsInf(m, 0) || math.IsNaN(m) || m > float64(MaxBits) {
		return 0, 0, fmt.Errorf("%w: %v bits requested, at most %d supported", ErrAllocation, m, MaxBits)
	}
	if m < 1 {
		m = 1
	}
	k := math.Round(m / n * math.Ln2)
	if k < 1 {
		k = 1
	}
	return uint64(m), uint32(k), nil
}

// New creates an empty filter sized for expectedElements insertions at the
// given false-positive rate.
func New(expectedElements uint64, falsePositiveRate float64) (*BloomFilter, error) {
	m, k, err := OptimalParameters(expectedElements, falsePositiveRate)
	if err != nil {
		return nil, err
	}
	return &BloomFilter{
		size:      m,
		numHashes: k,
		bits:      newBitField(m),
	}, nil
}

// Size returns the number of bits in the filter.
func (filter *BloomFilter) Size() uint64 {
	return filter.size
}

// NumHashes returns the number of bit positions set per item.
func (filter *BloomFilter) NumHashes() uint32 {
	return filter.numHashes
}

// bitIndex returns the i-th bit index for the base hashes h1 and h2
// (Kirsch-Mitzenmacher double hashing). The combination wraps at 32 bits.
func (filter *BloomFilter) bitIndex(h1, h2, i uint32) uint64 {
	return uint64(h1+i*h2) % filter.size
}

// Add inserts item. Adding the same item again has no effect.
func (filter *BloomFilter) Add(item []byte) {
	h1, h2 := deriveHashes(item)
	for i := uint32(0); i < filter.numHashes; i++ {
		filter.bits.set(filter.bitIndex(h1, h2, i))
	}
}

// Contains returns false if item was definitely never added, and true if it
// possibly was.
func (filter *BloomFilter) Contains(item []byte) bool {
	h1, h2 := deriveHashes(item)
	for i := uint32(0); i < filter.numHashes; i++ {
		if !filter.bits.test(filter.bitIndex(h1, h2, i)) {
			return false
		}
	}
	return true
}

// AddString inserts the bytes of s.
func (filter *BloomFilter) AddString(s string) {
	filter.Add(unsafe.Slice(unsafe.StringData(s), len(s)))
}

// ContainsString is Contains for the bytes of s.
func (filter *BloomFilter) ContainsString(s string) bool {
	return filter.Contains(unsafe.Slice(unsafe.StringData(s), len(s)))
}

// AddUint64 inserts key encoded as 8 little endian bytes.
func (filter *BloomFilter) AddUint64(key uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], key)
	filter.Add(buf[:])
}

// ContainsUint64 is Contains for key encoded as 8 little endian bytes.
func (filter *BloomFilter) ContainsUint64(key uint64) bool {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], key)
	return filter.Contains(buf[:])
}

// BitsPerElement returns m/n for n inserted elements, or 0 when n is 0.
func (filter *BloomFilter) BitsPerElement(n uint64) float64 {
	if n == 0 {
		return 0
	}
	return float64(filter.size) / float64(n)
}

// FillRatio returns the fraction of bits currently set.
func (filter *BloomFilter) FillRatio() float64 {
	return float64(filter.bits.count()) / float64(filter.size)
}

// EstimatedFalsePositiveRate returns the expected false-positive rate after
// n distinct insertions: (1 - e^(-kn/m))^k.
func (filter *BloomFilter) EstimatedFalsePositiveRate(n uint64) float64 {
	k := float64(filter.numHashes)
	return math.Pow(1-math.Exp(-k*float64(n)/float64(filter.size)), k)
}
