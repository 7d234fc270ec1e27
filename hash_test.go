package bloomkit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashBucketsDeterministic(t *testing.T) {
	a := HashBuckets("key", 7, 1000)
	b := HashBuckets("key", 7, 1000)
	require.Equal(t, a, b)
	require.Len(t, a, 7)
	for _, bucket := range a {
		require.Less(t, bucket, uint(1000))
	}
	require.Equal(t, a, HashBucketsBytes([]byte("key"), 7, 1000))
}

func TestHashBucketsDiffer(t *testing.T) {
	require.NotEqual(t, HashBuckets("a", 4, 1<<20), HashBuckets("b", 4, 1<<20))
}

func TestHashBucketsArithmetic(t *testing.T) {
	h1, h2 := getHashes([]byte("key"))
	require.Equal(t, uint64(1), h2&1)
	buckets := HashBuckets("key", 3, 97)
	for i, bucket := range buckets {
		require.Equal(t, uint((h1+uint64(i)*h2)%97), bucket)
	}
}

func TestHashBucketsSingleBucket(t *testing.T) {
	for _, bucket := range HashBuckets("key", 5, 1) {
		require.Zero(t, bucket)
	}
}

func TestManyHashes(t *testing.T) {
	const maxHashCount = 128
	collisions := 0
	for _, key := range randomKeys() {
		seen := make(map[uint]struct{}, maxHashCount)
		for _, bucket := range HashBuckets(key, maxHashCount, 1024*1024) {
			seen[bucket] = struct{}{}
		}
		collisions += maxHashCount - len(seen)
	}
	require.LessOrEqual(t, collisions, 100)
}

func BenchmarkHashBuckets(b *testing.B) {
	key := []byte("benchmark-key")
	for i := 0; i < b.N; i++ {
		HashBucketsBytes(key, 8, 1<<20)
	}
}
