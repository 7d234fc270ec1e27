package bloomkit

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/bits-and-blooms/bitset"
)

// BitSetMem is an implementation of IBitSet.
// _size_ is the number of bits in the bitset
// _set_ is the bitset implementation adopted from https://github.com/bits-and-blooms/bitset
type BitSetMem struct {
	set  *bitset.BitSet
	size uint
}

// NewBitSetMem creates a new BitSetMem of size _size_
func NewBitSetMem(size uint) *BitSetMem {
	return &BitSetMem{bitset.New(size), size}
}

// FromDataMem creates an instance of BitSetMem backed by the words in _data_
func FromDataMem(data []uint64) *BitSetMem {
	return &BitSetMem{bitset.From(data), uint(len(data) * 64)}
}

// Size returns the size of the bitset
func (bitSet *BitSetMem) Size() uint {
	return bitSet.size
}

// Has checks if the bit at index _index_ is set
func (bitSet *BitSetMem) Has(index uint) bool {
	return bitSet.set.Test(index)
}

// Insert sets the bit at index specified by _index_
func (bitSet *BitSetMem) Insert(index uint) {
	bitSet.set.Set(index)
}

// Clear unsets every bit
func (bitSet *BitSetMem) Clear() {
	bitSet.set.ClearAll()
}

// BitCount returns the total number of set bits in the bitset
func (bitSet *BitSetMem) BitCount() uint {
	return bitSet.set.Count()
}

// Equals checks if two BitSetMem are equal or not
func (bitSet *BitSetMem) Equals(otherBitSet IBitSet) bool {
	other, ok := otherBitSet.(*BitSetMem)
	if !ok {
		return false
	}
	return bitSet.size == other.size && bitSet.set.Equal(other.set)
}

func (bitSet *BitSetMem) String() string {
	return bitSet.set.String()
}

// WriteTo writes the bitset to a stream and returns the number of bytes written onto the stream
func (bitSet *BitSetMem) WriteTo(stream io.Writer) (int64, error) {
	err := binary.Write(stream, binary.BigEndian, uint64(bitSet.size))
	if err != nil {
		return 0, err
	}
	numBytes, err := bitSet.set.WriteTo(stream)
	if err != nil {
		return 0, err
	}
	return numBytes + int64(binary.Size(uint64(0))), nil
}

// ReadFrom reads the stream and imports it into the bitset and returns the number of bytes read.
// The bitset's length must agree with the size written ahead of it; words
// are read in bounded chunks so a corrupt length can't force a huge allocation.
func (bitSet *BitSetMem) ReadFrom(stream io.Reader) (int64, error) {
	var header [2]uint64
	err := binary.Read(stream, binary.BigEndian, &header)
	if err != nil {
		return 0, err
	}
	size, length := header[0], header[1]
	if length != size {
		return 0, fmt.Errorf("%w: bitset holds %d bits, header says %d", ErrInvalidData, length, size)
	}
	if uint64(uint(size)) != size {
		return 0, fmt.Errorf("%w: bitset size %d overflows uint", ErrInvalidData, size)
	}
	numWords := size/64 + min64(size%64, 1)
	words, err := readWords(stream, numWords)
	if err != nil {
		return 0, err
	}
	bitSet.size = uint(size)
	bitSet.set = bitset.FromWithLength(uint(size), words)
	return int64(binary.Size(header) + binary.Size(words)), nil
}

func min64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}
