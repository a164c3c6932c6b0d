package bloomfilter

import "sync"

// SyncBloomFilter guards a BloomFilter with a single-writer lock. Queries
// share a read lock and run in parallel.
type SyncBloomFilter struct {
	mu     sync.RWMutex
	filter *BloomFilter
}

// NewSync creates a lock-guarded filter. See New for the parameters.
func NewSync(expectedElements uint64, falsePositiveRate float64) (*SyncBloomFilter, error) {
	filter, err := New(expectedElements, falsePositiveRate)
	if err != nil {
		return nil, err
	}
	return &SyncBloomFilter{filter: filter}, nil
}

// Add inserts item under the write lock.
func (s *SyncBloomFilter) Add(item []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.Add(item)
}

// Contains reports whether item was possibly added. Queries share the read
// lock.
func (s *SyncBloomFilter) Contains(item []byte) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter.Contains(item)
}

// AddString inserts the bytes of str under the write lock.
func (s *SyncBloomFilter) AddString(str string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.AddString(str)
}

// ContainsString is Contains for the bytes of str.
func (s *SyncBloomFilter) ContainsString(str string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter.ContainsString(str)
}

// AddUint64 inserts key encoded as 8 little endian bytes.
func (s *SyncBloomFilter) AddUint64(key uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.AddUint64(key)
}

// ContainsUint64 is Contains for key encoded as 8 little endian bytes.
func (s *SyncBloomFilter) ContainsUint64(key uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter.ContainsUint64(key)
}

// Size returns the number of bits in the filter.
func (s *SyncBloomFilter) Size() uint64 {
	return s.filter.Size()
}

// NumHashes returns the number of bit positions set per item.
func (s *SyncBloomFilter) NumHashes() uint32 {
	return s.filter.NumHashes()
}

// FillRatio returns the fraction of bits currently set.
func (s *SyncBloomFilter) FillRatio() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter.FillRatio()
}
