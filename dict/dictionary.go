// Package dict implements the column-scoped term dictionary used by Str and
// Bytes columns: an append-only term→ordinal map during writing, finalized
// into a sorted, bijective ord↔term mapping at serialization time.
//
// Insertion-time dedup is accelerated with a 64-bit hash of the term
// (xxHash64, see internal/hash), the same hash-then-verify approach the
// teacher's metric-name collision tracker uses: the hash narrows candidates
// to a small bucket, and a byte-exact compare resolves the rare true
// collision between two distinct terms that hash alike.
package dict

import (
	"bytes"
	"sort"

	"github.com/robcaulk/columnar/internal/hash"
)

// Dictionary is a mutable, insertion-order term arena. Use Insert to add
// terms while recording rows, then Finalize once to obtain the sorted
// ord↔term mapping used for on-disk encoding.
type Dictionary struct {
	terms   [][]byte           // insertion-order arena, owns copies of term bytes
	buckets map[uint64][]int32 // hash -> candidate indices into terms, for dedup

	finalized         bool
	sorted            [][]byte // terms in sorted order, valid after Finalize
	insertionToSorted []uint64 // insertion ord -> sorted ord, valid after Finalize
}

// New creates an empty Dictionary.
func New() *Dictionary {
	return &Dictionary{
		buckets: make(map[uint64][]int32),
	}
}

// Insert adds term to the dictionary if not already present and returns its
// insertion-time ordinal. The ordinal is stable across repeated Insert calls
// for the same term but is NOT the final sorted ordinal; callers must remap
// via InsertionToSorted after Finalize.
func (d *Dictionary) Insert(term []byte) uint64 {
	h := hash.Term(term)
	for _, idx := range d.buckets[h] {
		if bytes.Equal(d.terms[idx], term) {
			return uint64(idx)
		}
	}

	idx := int32(len(d.terms)) //nolint: gosec
	cp := make([]byte, len(term))
	copy(cp, term)
	d.terms = append(d.terms, cp)
	d.buckets[h] = append(d.buckets[h], idx)

	return uint64(idx)
}

// NumTerms returns the number of distinct terms inserted so far.
func (d *Dictionary) NumTerms() int {
	return len(d.terms)
}

// Finalize sorts the inserted terms in byte-lexicographic order and builds
// the insertion->sorted ordinal remap table. Calls after the first are
// no-ops; subsequent Insert calls are not supported afterward.
func (d *Dictionary) Finalize() {
	if d.finalized {
		return
	}

	n := len(d.terms)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return bytes.Compare(d.terms[order[i]], d.terms[order[j]]) < 0
	})

	d.sorted = make([][]byte, n)
	d.insertionToSorted = make([]uint64, n)
	for sortedOrd, insertionOrd := range order {
		d.sorted[sortedOrd] = d.terms[insertionOrd]
		d.insertionToSorted[insertionOrd] = uint64(sortedOrd) //nolint: gosec
	}

	d.finalized = true
}

// InsertionToSorted remaps an insertion-time ordinal (as returned by Insert)
// to its finalized sorted ordinal. Must be called after Finalize.
func (d *Dictionary) InsertionToSorted(insertionOrd uint64) uint64 {
	return d.insertionToSorted[insertionOrd]
}

// SortedTerms returns the finalized, sorted term slice. Must be called after
// Finalize. The caller must not modify the returned slices.
func (d *Dictionary) SortedTerms() [][]byte {
	return d.sorted
}

// OrdToTerm copies the term bytes at the given sorted ordinal into buf and
// returns the result, or false if ord is out of range. Must be called after
// Finalize.
func (d *Dictionary) OrdToTerm(ord uint64, buf []byte) ([]byte, bool) {
	if ord >= uint64(len(d.sorted)) {
		return buf, false
	}

	return append(buf, d.sorted[ord]...), true
}

// TermToOrd returns the sorted ordinal of term via binary search, or false
// if term is not present. Must be called after Finalize.
func (d *Dictionary) TermToOrd(term []byte) (uint64, bool) {
	n := len(d.sorted)
	idx := sort.Search(n, func(i int) bool {
		return bytes.Compare(d.sorted[i], term) >= 0
	})
	if idx >= n || !bytes.Equal(d.sorted[idx], term) {
		return 0, false
	}

	return uint64(idx), true
}

// Reset clears all inserted terms and finalized state, allowing the
// Dictionary to be reused for encoding a new column.
func (d *Dictionary) Reset() {
	d.terms = d.terms[:0]
	for k := range d.buckets {
		delete(d.buckets, k)
	}
	d.finalized = false
	d.sorted = nil
	d.insertionToSorted = nil
}
