// Package util holds small helpers shared by bloomkit and its tests.
package util

import (
	"math/rand"
	"strconv"
	"unsafe"
)

const letterBytes = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
const (
	letterIdxBits = 6                    // 6 bits to represent a letter index
	letterIdxMask = 1<<letterIdxBits - 1 // All 1-bits, as many as letterIdxBits
	letterIdxMax  = 63 / letterIdxBits   // # of letter indices fitting in 63 bits
)

func Max(a, b uint) uint {
	if a > b {
		return a
	}
	return b
}

// KeyGenerator produces a reproducible stream of random alphabetic keys.
type KeyGenerator struct {
	src    rand.Source
	length int
}

// NewKeyGenerator returns a KeyGenerator whose keys are _length_ letters
// long and fully determined by _seed_
func NewKeyGenerator(seed int64, length int) *KeyGenerator {
	return &KeyGenerator{src: rand.NewSource(seed), length: length}
}

// Next returns the next key of the stream
func (g *KeyGenerator) Next() string {
	return randomString(g.src, g.length)
}

// Keys returns the next _n_ keys of the stream
func (g *KeyGenerator) Keys(n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = g.Next()
	}
	return keys
}

// IntKeys returns the decimal strings of 0 through n-1
func IntKeys(n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = strconv.Itoa(i)
	}
	return keys
}

func randomString(src rand.Source, n int) string {
	b := make([]byte, n)
	// A src.Int63() generates 63 random bits, enough for letterIdxMax characters!
	for i, cache, remain := n-1, src.Int63(), letterIdxMax; i >= 0; {
		if remain == 0 {
			cache, remain = src.Int63(), letterIdxMax
		}
		if idx := int(cache & letterIdxMask); idx < len(letterBytes) {
			b[i] = letterBytes[idx]
			i--
		}
		cache >>= letterIdxBits
		remain--
	}

	return *(*string)(unsafe.Pointer(&b))
}
