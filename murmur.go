package bloomfilter

import "github.com/spaolacci/murmur3"

// deriveHashes returns the two base hashes used for double hashing:
// MurmurHash3 x86_32 of data under Seed1 and Seed2.
func deriveHashes(data []byte) (h1, h2 uint32) {
	return murmur3.Sum32WithSeed(data, Seed1), murmur3.Sum32WithSeed(data, Seed2)
}
