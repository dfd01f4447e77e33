package dict

import (
	"bytes"
	"sort"

	"github.com/robcaulk/columnar/endian"
	"github.com/robcaulk/columnar/errs"
)

// on-disk layout of a finalized dictionary payload:
//
//	[num_terms: u32]
//	[term_offsets: (num_terms+1) x u32]  cumulative byte offsets into term_data
//	[term_data: concatenation of sorted term bytes]
const offsetEntrySize = 4

// Encode serializes the finalized dictionary's sorted terms into the
// on-disk dictionary payload format. Must be called after Finalize.
func (d *Dictionary) Encode(engine endian.EndianEngine) []byte {
	n := len(d.sorted)

	dataLen := 0
	for _, t := range d.sorted {
		dataLen += len(t)
	}

	buf := make([]byte, 4+(n+1)*offsetEntrySize+dataLen)
	engine.PutUint32(buf[0:4], uint32(n)) //nolint: gosec

	offsetsStart := 4
	dataStart := offsetsStart + (n+1)*offsetEntrySize
	cursor := dataStart
	for i, t := range d.sorted {
		engine.PutUint32(buf[offsetsStart+i*offsetEntrySize:], uint32(cursor-dataStart)) //nolint: gosec
		copy(buf[cursor:], t)
		cursor += len(t)
	}
	engine.PutUint32(buf[offsetsStart+n*offsetEntrySize:], uint32(cursor-dataStart)) //nolint: gosec

	return buf
}

// Reader is a read-only, zero-copy view over a serialized dictionary
// payload. It borrows from the backing byte slice and must not outlive it.
type Reader struct {
	engine   endian.EndianEngine
	numTerms int
	offsets  []byte // (numTerms+1) x u32, big enough to slice without copies
	data     []byte
}

// Parse parses a dictionary payload produced by Dictionary.Encode.
func Parse(buf []byte, engine endian.EndianEngine) (Reader, error) {
	if len(buf) < 4 {
		return Reader{}, errs.ErrMalformedFile
	}

	n := int(engine.Uint32(buf[0:4]))
	offsetsStart := 4
	offsetsLen := (n + 1) * offsetEntrySize
	dataStart := offsetsStart + offsetsLen
	if len(buf) < dataStart {
		return Reader{}, errs.ErrMalformedFile
	}

	return Reader{
		engine:   engine,
		numTerms: n,
		offsets:  buf[offsetsStart:dataStart],
		data:     buf[dataStart:],
	}, nil
}

// NumTerms returns the number of terms in the dictionary.
func (r Reader) NumTerms() int {
	return r.numTerms
}

func (r Reader) termBounds(ord int) (int, int, bool) {
	if ord < 0 || ord >= r.numTerms {
		return 0, 0, false
	}

	start := int(r.engine.Uint32(r.offsets[ord*offsetEntrySize:]))
	end := int(r.engine.Uint32(r.offsets[(ord+1)*offsetEntrySize:]))

	return start, end, true
}

// OrdToTerm copies the term bytes at ord into buf and returns the result, or
// false if ord is out of range.
func (r Reader) OrdToTerm(ord uint64, buf []byte) ([]byte, bool) {
	start, end, ok := r.termBounds(int(ord))
	if !ok {
		return buf, false
	}

	return append(buf, r.data[start:end]...), true
}

// termAt returns the raw term bytes at ord without copying. ok is false if
// ord is out of range.
func (r Reader) termAt(ord int) ([]byte, bool) {
	start, end, ok := r.termBounds(ord)
	if !ok {
		return nil, false
	}

	return r.data[start:end], true
}

// TermToOrd returns the ordinal of term via binary search, or false if term
// is not present.
func (r Reader) TermToOrd(term []byte) (uint64, bool) {
	idx := sort.Search(r.numTerms, func(i int) bool {
		t, _ := r.termAt(i)
		return bytes.Compare(t, term) >= 0
	})
	if idx >= r.numTerms {
		return 0, false
	}
	t, _ := r.termAt(idx)
	if !bytes.Equal(t, term) {
		return 0, false
	}

	return uint64(idx), true
}
