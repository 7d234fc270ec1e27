package bloomkit

import "io"

// IBitSet is the bit vector backing a BloomFilter.
type IBitSet interface {
	// Size returns the number of bits in the bitset
	Size() uint

	// Has returns true if the bit is set at index, else false
	Has(index uint) bool

	// Insert sets the bit at index to true
	Insert(index uint)

	// Clear resets every bit to false, keeping the size
	Clear()

	// Equals checks if two bitsets are equal
	Equals(otherBitSet IBitSet) bool

	// BitCount returns the total number of set bits in the bitset
	BitCount() uint

	// WriteTo writes the bitset to a stream and
	// returns the number of bytes written onto the stream
	WriteTo(stream io.Writer) (int64, error)

	// ReadFrom reads the stream and imports it into the bitset
	// and returns the number of bytes read
	ReadFrom(stream io.Reader) (int64, error)

	// String returns the set bits as a list of indices
	String() string
}
