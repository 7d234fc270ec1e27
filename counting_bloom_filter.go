package bloomkit

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/kwertop/bloomkit/internal/util"
)

const (
	// MaxCount is the value at which a bucket counter saturates.
	MaxCount = 15

	bucketsPerWord = 16
	bucketBits     = 4
	bucketMask     = uint64(0xF)

	// readChunkWords bounds the allocation made ahead of the data when
	// reading a filter, so a corrupt word count can't force a huge one.
	readChunkWords = 1 << 16
)

// CountingBloomFilter is a Bloom filter which supports deletion.
// Every bucket is a 4-bit saturating counter; _filter_ packs 16 of them in
// each word, bucket i living in bits [4*(i%16), 4*(i%16)+4) of word i/16.
// _hashCount_ is the number of buckets derived from each key.
type CountingBloomFilter struct {
	hashCount uint
	filter    []uint64
}

// bucket addresses a single counter inside the packed words.
type bucket struct {
	wordIndex uint
	shift     uint
	mask      uint64
}

func bucketAt(index uint) bucket {
	shift := (index % bucketsPerWord) * bucketBits
	return bucket{wordIndex: index / bucketsPerWord, shift: shift, mask: bucketMask << shift}
}

func (cbf *CountingBloomFilter) get(b bucket) uint64 {
	return (cbf.filter[b.wordIndex] & b.mask) >> b.shift
}

func (cbf *CountingBloomFilter) set(b bucket, value uint64) {
	cbf.filter[b.wordIndex] = (cbf.filter[b.wordIndex] &^ b.mask) | (value << b.shift)
}

// NewCountingBloomFilter creates and returns a new CountingBloomFilter
// _numElements_ is the number of items expected to be added to the filter
// _bucketsPerElement_ is the number of counters allocated per expected item;
// the number of hash functions is derived from it
func NewCountingBloomFilter(numElements, bucketsPerElement uint) *CountingBloomFilter {
	return newCountingBloomFilter(ComputeBestK(bucketsPerElement), numElements*bucketsPerElement+bucketSlack)
}

// NewCountingBloomFilterWithProbability creates and returns a new CountingBloomFilter
// sized for _numElements_ items at a false positive rate of at most
// _maxFalsePosProbability_
func NewCountingBloomFilterWithProbability(numElements uint, maxFalsePosProbability float64) *CountingBloomFilter {
	spec := ComputeBucketsAndK(maxFalsePosProbability)
	return newCountingBloomFilter(spec.K, numElements*spec.BucketsPerElement+bucketSlack)
}

func newCountingBloomFilter(hashCount, buckets uint) *CountingBloomFilter {
	words := (buckets + bucketsPerWord - 1) / bucketsPerWord
	return NewCountingBloomFilterFromData(hashCount, make([]uint64, words))
}

// NewCountingBloomFilterFromData creates a CountingBloomFilter over _data_,
// the packed counter words, which the filter takes ownership of.
// _data_ must hold at least one word.
func NewCountingBloomFilterFromData(hashCount uint, data []uint64) *CountingBloomFilter {
	return &CountingBloomFilter{hashCount: util.Max(hashCount, 1), filter: data}
}

// HashCount returns the number of hash functions used in the filter
func (cbf *CountingBloomFilter) HashCount() uint {
	return cbf.hashCount
}

// Buckets returns the number of counters in the filter
func (cbf *CountingBloomFilter) Buckets() uint {
	return uint(len(cbf.filter)) * bucketsPerWord
}

// Words returns the packed counter words backing the filter
func (cbf *CountingBloomFilter) Words() []uint64 {
	return cbf.filter
}

// Add increments every counter derived from _key_; counters already at
// MaxCount are left as they are
func (cbf *CountingBloomFilter) Add(key string) {
	h1, h2 := getHashesString(key)
	buckets := cbf.Buckets()
	for i := uint(0); i < cbf.hashCount; i++ {
		b := bucketAt(getIndex(h1, h2, i, buckets))
		if value := cbf.get(b); value < MaxCount {
			cbf.set(b, value+1)
		}
	}
}

// IsPresent returns true if every counter derived from _key_ is non-zero
func (cbf *CountingBloomFilter) IsPresent(key string) bool {
	h1, h2 := getHashesString(key)
	buckets := cbf.Buckets()
	for i := uint(0); i < cbf.hashCount; i++ {
		if cbf.get(bucketAt(getIndex(h1, h2, i, buckets))) == 0 {
			return false
		}
	}
	return true
}

// Count returns the smallest counter derived from _key_, an upper bound on
// the number of times it was added (capped at MaxCount)
func (cbf *CountingBloomFilter) Count(key string) uint {
	h1, h2 := getHashesString(key)
	buckets := cbf.Buckets()
	min := uint64(MaxCount)
	for i := uint(0); i < cbf.hashCount; i++ {
		if value := cbf.get(bucketAt(getIndex(h1, h2, i, buckets))); value < min {
			min = value
		}
	}
	return uint(min)
}

// Delete decrements every counter derived from _key_.
// Saturated counters stay at MaxCount since the number of additions they
// stand for is unknown. It returns ErrKeyNotPresent, leaving the filter
// untouched, if _key_ isn't present.
func (cbf *CountingBloomFilter) Delete(key string) error {
	if !cbf.IsPresent(key) {
		return ErrKeyNotPresent
	}
	h1, h2 := getHashesString(key)
	buckets := cbf.Buckets()
	for i := uint(0); i < cbf.hashCount; i++ {
		b := bucketAt(getIndex(h1, h2, i, buckets))
		if value := cbf.get(b); value >= 1 && value < MaxCount {
			cbf.set(b, value-1)
		}
	}
	return nil
}

// Merge adds the counters of _other_ into cbf, saturating at MaxCount.
// Both filters must have the same number of buckets and hash functions; a
// nil _other_ is incompatible too.
func (cbf *CountingBloomFilter) Merge(other *CountingBloomFilter) error {
	if other == nil {
		return fmt.Errorf("%w: nil filter", ErrIncompatibleFilters)
	}
	if len(cbf.filter) != len(other.filter) {
		return fmt.Errorf("%w: unequal bucket counts, %d and %d", ErrIncompatibleFilters, cbf.Buckets(), other.Buckets())
	}
	if cbf.hashCount != other.hashCount {
		return fmt.Errorf("%w: unequal hash counts, %d and %d", ErrIncompatibleFilters, cbf.hashCount, other.hashCount)
	}
	for i := uint(0); i < cbf.Buckets(); i++ {
		b := bucketAt(i)
		merged := cbf.get(b) + other.get(b)
		if merged > MaxCount {
			merged = MaxCount
		}
		cbf.set(b, merged)
	}
	return nil
}

// Clear zeroes every counter
func (cbf *CountingBloomFilter) Clear() {
	for i := range cbf.filter {
		cbf.filter[i] = 0
	}
}

// MaxBucket returns the largest counter value in the filter
func (cbf *CountingBloomFilter) MaxBucket() uint {
	var max uint64
	for i := uint(0); i < cbf.Buckets(); i++ {
		if value := cbf.get(bucketAt(i)); value > max {
			max = value
		}
	}
	return uint(max)
}

// EmptyBuckets returns the number of zero counters
func (cbf *CountingBloomFilter) EmptyBuckets() uint {
	var n uint
	for i := uint(0); i < cbf.Buckets(); i++ {
		if cbf.get(bucketAt(i)) == 0 {
			n++
		}
	}
	return n
}

// CloneMe returns an independent copy of the filter
func (cbf *CountingBloomFilter) CloneMe() *CountingBloomFilter {
	filter := make([]uint64, len(cbf.filter))
	copy(filter, cbf.filter)
	return NewCountingBloomFilterFromData(cbf.hashCount, filter)
}

// Equals checks if two CountingBloomFilter's hold the same counters
func (cbf *CountingBloomFilter) Equals(other *CountingBloomFilter) bool {
	if cbf.hashCount != other.hashCount || len(cbf.filter) != len(other.filter) {
		return false
	}
	for i := range cbf.filter {
		if cbf.filter[i] != other.filter[i] {
			return false
		}
	}
	return true
}

// WriteTo writes the CountingBloomFilter onto the specified _stream_ and
// returns the number of bytes written.
// The layout is the hash count and the word count as big-endian int32s
// followed by every word as a big-endian int64.
func (cbf *CountingBloomFilter) WriteTo(stream io.Writer) (int64, error) {
	if err := checkWordCount(len(cbf.filter)); err != nil {
		return 0, err
	}
	header := [2]int32{int32(cbf.hashCount), int32(len(cbf.filter))}
	err := binary.Write(stream, binary.BigEndian, header)
	if err != nil {
		return 0, err
	}
	err = binary.Write(stream, binary.BigEndian, cbf.filter)
	if err != nil {
		return 0, err
	}
	return int64(binary.Size(header) + binary.Size(cbf.filter)), nil
}

// checkWordCount fails if _words_ can't be recorded in the int32 header.
func checkWordCount(words int) error {
	if int64(words) > math.MaxInt32 {
		return fmt.Errorf("%w: %d words", ErrFilterTooLarge, words)
	}
	return nil
}

// ReadCountingBloomFilter reads a CountingBloomFilter written by WriteTo
// from _stream_.
func ReadCountingBloomFilter(stream io.Reader) (*CountingBloomFilter, error) {
	var header [2]int32
	err := binary.Read(stream, binary.BigEndian, &header)
	if err != nil {
		return nil, err
	}
	hashCount, length := header[0], header[1]
	if hashCount < 1 {
		return nil, fmt.Errorf("%w: hash count %d", ErrInvalidData, hashCount)
	}
	if length < 1 {
		return nil, fmt.Errorf("%w: word count %d", ErrInvalidData, length)
	}
	filter, err := readWords(stream, uint64(length))
	if err != nil {
		return nil, err
	}
	return NewCountingBloomFilterFromData(uint(hashCount), filter), nil
}

// readWords reads _n_ big-endian words from _stream_, at most readChunkWords
// at a time. A stream ending early yields io.ErrUnexpectedEOF.
func readWords(stream io.Reader, n uint64) ([]uint64, error) {
	words := make([]uint64, 0, min64(n, readChunkWords))
	for remaining := n; remaining > 0; {
		chunk := make([]uint64, min64(remaining, readChunkWords))
		err := binary.Read(stream, binary.BigEndian, chunk)
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		if err != nil {
			return nil, err
		}
		words = append(words, chunk...)
		remaining -= uint64(len(chunk))
	}
	return words, nil
}

// CountingBloomFilterSerializer is the Serializer of CountingBloomFilter.
type CountingBloomFilterSerializer struct{}

// Serialize writes _filter_ onto _stream_ in the WriteTo layout
func (CountingBloomFilterSerializer) Serialize(filter *CountingBloomFilter, stream io.Writer) error {
	_, err := filter.WriteTo(stream)
	return err
}

// Deserialize reads a CountingBloomFilter from _stream_
func (CountingBloomFilterSerializer) Deserialize(stream io.Reader) (*CountingBloomFilter, error) {
	return ReadCountingBloomFilter(stream)
}
