// Package hash provides the fast, non-cryptographic hash used to bucket
// Ids inside the dictionary interning table (internal/dict). It is not
// used for content identity — that's SHA-256, in the id package — only
// for giving DictionaryBuilder's lookup table an O(1) bucket index.
package hash

import "github.com/cespare/xxhash/v2"

// Bucket computes the xxHash64 of a 16-byte Id, for use as a bucket
// index into an interning table.
func Bucket(id [16]byte) uint64 {
	return xxhash.Sum64(id[:])
}
