/*
Package bloomkit provides two probabilistic set membership filters meant to
sit in front of expensive existence checks such as disk lookups.

 1. BloomFilter: a standard Bloom filter with one bit per bucket, backed by
    a bitset from https://github.com/bits-and-blooms/bitset.
 2. CountingBloomFilter: a Bloom filter with a 4-bit saturating counter per
    bucket, sixteen counters packed in every uint64 word. It supports Delete
    and Merge.

Both answer "possibly present" or "definitely absent": a key that was added
is always reported present, a key that wasn't may be reported present with
a probability governed by the number of buckets per element and the number
of hash functions. ComputeBucketsAndK and ComputeBestK pick those.

A key is mapped to its buckets by double hashing: two 64-bit halves of a
128-bit metro hash h1 and h2 give the i-th bucket as (h1 + i*h2) mod buckets.

Counters saturate at MaxCount. A saturated counter is never decremented by
Delete since the number of additions it stands for is lost, so deletions
through it no longer reduce it.

The filters serialize to a compact big-endian form through WriteTo and are
read back with ReadBloomFilter and ReadCountingBloomFilter.

The filters are not safe for concurrent use. Concurrent IsPresent calls on
a filter nobody mutates are fine; Add, Delete, Merge and Clear need the
caller to serialize access to the whole filter, as counters sharing a word
are updated with a read-modify-write.
*/
package bloomkit
