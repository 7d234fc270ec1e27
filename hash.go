package bloomkit

import (
	"github.com/dgryski/go-metro"
)

const hashSeed = 1373

// getHashes returns the two base hashes used for double hashing.
// The second one is forced odd so that it never degenerates to zero and,
// for power-of-two bucket counts, generates k distinct indexes.
func getHashes(data []byte) (uint64, uint64) {
	h1, h2 := metro.Hash128(data, hashSeed)
	return h1, h2 | 1
}

func getHashesString(key string) (uint64, uint64) {
	return getHashes([]byte(key))
}

// getIndex returns the i-th bucket index, (h1 + i*h2) mod max.
func getIndex(h1, h2 uint64, i, max uint) uint {
	return uint((h1 + uint64(i)*h2) % uint64(max))
}

// HashBuckets returns the _hashCount_ bucket indexes in [0, max) derived from
// _key_. The result is deterministic for a given key; indexes may repeat.
func HashBuckets(key string, hashCount, max uint) []uint {
	return HashBucketsBytes([]byte(key), hashCount, max)
}

// HashBucketsBytes is HashBuckets for a byte slice key
func HashBucketsBytes(key []byte, hashCount, max uint) []uint {
	h1, h2 := getHashes(key)
	buckets := make([]uint, hashCount)
	for i := range buckets {
		buckets[i] = getIndex(h1, h2, uint(i), max)
	}
	return buckets
}
