package bloomkit

import "io"

// Filter is the behaviour shared by BloomFilter and CountingBloomFilter.
// Each key is mapped to HashCount() buckets by HashBuckets.
type Filter interface {
	// HashCount returns the number of buckets touched per key
	HashCount() uint

	// Buckets returns the total number of buckets in the filter
	Buckets() uint

	// Add records _key_ in the filter
	Add(key string)

	// IsPresent returns false if _key_ was definitely never added, true if
	// it may have been
	IsPresent(key string) bool

	// Clear empties the filter without changing its size
	Clear()

	// EmptyBuckets returns the number of buckets holding nothing
	EmptyBuckets() uint

	// WriteTo serializes the filter onto _stream_
	WriteTo(stream io.Writer) (int64, error)
}

// Serializer converts a filter to and from its binary form.
type Serializer[T Filter] interface {
	Serialize(filter T, stream io.Writer) error
	Deserialize(stream io.Reader) (T, error)
}
