package bloomkit

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/kwertop/bloomkit/internal/util"
)

// bucketSlack is added to every computed bucket count.
const bucketSlack = 20

// The BloomFilter data structure. It mainly has two fields: _hashCount_ and _filter_
// _hashCount_ denotes the number of buckets derived from the entrant element
// during insertion or lookup.
// _filter_ is the bitset backing internally the bloom filter, one bit per bucket.
type BloomFilter struct {
	hashCount uint
	filter    IBitSet
}

// NewBloomFilter creates and returns a new in-memory BloomFilter
// _numElements_ is the number of items expected to be added to the filter
// _bucketsPerElement_ is the number of bits allocated per expected item; the
// number of hash functions is derived from it
func NewBloomFilter(numElements, bucketsPerElement uint) *BloomFilter {
	filter := NewBitSetMem(numElements*bucketsPerElement + bucketSlack)
	return NewBloomFilterWithBitSet(ComputeBestK(bucketsPerElement), filter)
}

// NewBloomFilterWithProbability creates and returns a new in-memory BloomFilter
// _numElements_ is the number of items expected to be added to the filter
// _maxFalsePosProbability_ is the acceptable false positive error rate
// Based upon the above two parameters passed, the size of the bloom filter is calculated
func NewBloomFilterWithProbability(numElements uint, maxFalsePosProbability float64) *BloomFilter {
	spec := ComputeBucketsAndK(maxFalsePosProbability)
	filter := NewBitSetMem(numElements*spec.BucketsPerElement + bucketSlack)
	return NewBloomFilterWithBitSet(spec.K, filter)
}

// NewBloomFilterWithBitSet creates a BloomFilter over an existing bitset
// _hashCount_ is the number of hash functions to apply, at least 1
// _filter_ must hold at least one bit and becomes owned by the returned BloomFilter
func NewBloomFilterWithBitSet(hashCount uint, filter IBitSet) *BloomFilter {
	return &BloomFilter{hashCount: util.Max(hashCount, 1), filter: filter}
}

// HashCount returns the number of hash functions used in the bloom filter
func (bloomFilter *BloomFilter) HashCount() uint {
	return bloomFilter.hashCount
}

// Buckets returns the size of the bloom filter in bits
func (bloomFilter *BloomFilter) Buckets() uint {
	return bloomFilter.filter.Size()
}

// BitSet returns the internal bitset
func (bloomFilter *BloomFilter) BitSet() IBitSet {
	return bloomFilter.filter
}

// Add sets the bits of every bucket derived from _key_
func (bloomFilter *BloomFilter) Add(key string) {
	bloomFilter.AddBytes([]byte(key))
}

// AddBytes is Add for a byte slice key
func (bloomFilter *BloomFilter) AddBytes(key []byte) {
	h1, h2 := getHashes(key)
	size := bloomFilter.filter.Size()
	for i := uint(0); i < bloomFilter.hashCount; i++ {
		bloomFilter.filter.Insert(getIndex(h1, h2, i, size))
	}
}

// IsPresent returns true if the bits of every bucket derived from _key_
// are set, otherwise false
func (bloomFilter *BloomFilter) IsPresent(key string) bool {
	return bloomFilter.IsPresentBytes([]byte(key))
}

// IsPresentBytes is IsPresent for a byte slice key
func (bloomFilter *BloomFilter) IsPresentBytes(key []byte) bool {
	h1, h2 := getHashes(key)
	size := bloomFilter.filter.Size()
	for i := uint(0); i < bloomFilter.hashCount; i++ {
		if !bloomFilter.filter.Has(getIndex(h1, h2, i, size)) {
			return false
		}
	}
	return true
}

// Clear unsets every bit of the filter
func (bloomFilter *BloomFilter) Clear() {
	bloomFilter.filter.Clear()
}

// EmptyBuckets returns the number of unset bits
func (bloomFilter *BloomFilter) EmptyBuckets() uint {
	return bloomFilter.filter.Size() - bloomFilter.filter.BitCount()
}

// Equals checks if two BloomFilter's are equal
func (aFilter *BloomFilter) Equals(bFilter *BloomFilter) bool {
	if aFilter.hashCount != bFilter.hashCount {
		return false
	}
	return aFilter.filter.Equals(bFilter.filter)
}

func (bloomFilter *BloomFilter) String() string {
	return bloomFilter.filter.String()
}

// WriteTo writes the BloomFilter onto the specified _stream_ and returns the
// number of bytes written.
// The layout is the hash count and the bucket count as big-endian int32s
// followed by the bitset's own serialized form. The bucket count is only
// kept for compatibility with older readers.
func (bloomFilter *BloomFilter) WriteTo(stream io.Writer) (int64, error) {
	header := [2]int32{int32(bloomFilter.hashCount), int32(bloomFilter.filter.Size())}
	err := binary.Write(stream, binary.BigEndian, header)
	if err != nil {
		return 0, err
	}
	numBytes, err := bloomFilter.filter.WriteTo(stream)
	if err != nil {
		return 0, err
	}
	return numBytes + int64(binary.Size(header)), nil
}

// ReadBloomFilter reads a BloomFilter written by WriteTo from _stream_.
func ReadBloomFilter(stream io.Reader) (*BloomFilter, error) {
	var header [2]int32
	err := binary.Read(stream, binary.BigEndian, &header)
	if err != nil {
		return nil, err
	}
	hashCount := header[0]
	if hashCount < 1 {
		return nil, fmt.Errorf("%w: hash count %d", ErrInvalidData, hashCount)
	}
	filter := &BitSetMem{}
	if _, err := filter.ReadFrom(stream); err != nil {
		return nil, err
	}
	if filter.Size() == 0 {
		return nil, fmt.Errorf("%w: empty bitset", ErrInvalidData)
	}
	return NewBloomFilterWithBitSet(uint(hashCount), filter), nil
}

// BloomFilterSerializer is the Serializer of BloomFilter.
type BloomFilterSerializer struct{}

// Serialize writes _filter_ onto _stream_ in the WriteTo layout
func (BloomFilterSerializer) Serialize(filter *BloomFilter, stream io.Writer) error {
	_, err := filter.WriteTo(stream)
	return err
}

// Deserialize reads a BloomFilter from _stream_
func (BloomFilterSerializer) Deserialize(stream io.Reader) (*BloomFilter, error) {
	return ReadBloomFilter(stream)
}
