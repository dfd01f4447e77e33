// Package hash provides the fast, non-cryptographic hash used to speed up
// dictionary term deduplication.
package hash

import "github.com/cespare/xxhash/v2"

// Term computes the xxHash64 of the given term bytes.
func Term(term []byte) uint64 {
	return xxhash.Sum64(term)
}
