package bloomfilter

import (
	"fmt"
	"math/bits"
)

// bitField is a packed array of m bits. Bit i lives in byte i/8 at
// position i%8, least significant bit first.
type bitField struct {
	m     uint64
	bytes []byte
}

func newBitField(m uint64) bitField {
	return bitField{
		m:     m,
		bytes: make([]byte, (m+7)/8),
	}
}

func (b *bitField) checkIndex(index uint64) {
	if index >= b.m {
		panic(fmt.Sprintf("bloomfilter: bit index %d out of range [0, %d)", index, b.m))
	}
}

func (b *bitField) set(index uint64) {
	b.checkIndex(index)
	b.bytes[index>>3] |= 1 << (index & 7)
}

func (b *bitField) test(index uint64) bool {
	b.checkIndex(index)
	return b.bytes[index>>3]&(1<<(index&7)) != 0
}

// count returns the number of set bits.
func (b *bitField) count() uint64 {
	n := 0
	for _, v := range b.bytes {
		n += bits.OnesCount8(v)
	}
	return uint64(n)
}
