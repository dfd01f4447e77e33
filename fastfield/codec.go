// Package fastfield implements the bit-packed fixed-width value codec used
// for the stored values of every column category except IpAddr: booleans,
// zigzag-coded signed integers and datetimes, raw unsigned integers,
// IEEE-754 float bit patterns, and dictionary ordinals. Every value is reduced to a uint64,
// and the whole column is packed as (value - base) in the minimum number
// of bits that spans the column's observed range, giving O(1) random
// access via internal/bitpack.Extract.
package fastfield

import (
	"math/bits"

	"github.com/robcaulk/columnar/endian"
	"github.com/robcaulk/columnar/errs"
	"github.com/robcaulk/columnar/internal/bitpack"
)

// headerSize is the fixed prefix before the packed bit stream: an 8-byte
// base and a 1-byte bit width.
const headerSize = 9

// Encoder holds the already-flattened uint64 representation of a column's
// values, ready to be bit-packed.
type Encoder struct {
	values []uint64
	base   uint64
	width  int
}

// Build computes the minimal (base, width) pair spanning values and
// returns an Encoder ready to serialize them.
func Build(values []uint64) Encoder {
	if len(values) == 0 {
		return Encoder{}
	}

	minV, maxV := values[0], values[0]
	for _, v := range values[1:] {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	return Encoder{
		values: values,
		base:   minV,
		width:  bits.Len64(maxV - minV),
	}
}

// Len returns the number of values the Encoder holds.
func (e Encoder) Len() int { return len(e.values) }

// Encode serializes the packed column: an 8-byte base, a 1-byte width,
// then the bit-packed (value-base) deltas.
func (e Encoder) Encode(engine endian.EndianEngine) []byte {
	w := bitpack.NewWriter()
	for _, v := range e.values {
		w.WriteBits(v-e.base, e.width)
	}
	packed := w.Finish()

	out := make([]byte, headerSize+len(packed))
	engine.PutUint64(out[0:8], e.base)
	out[8] = byte(e.width) //nolint: gosec
	copy(out[headerSize:], packed)
	w.Release()

	return out
}

// Reader is a read-only, O(1) random-access view over an Encoder's
// serialized bytes.
type Reader struct {
	base   uint64
	width  int
	packed []byte
	count  int
}

// Parse parses a fastfield payload holding count values.
func Parse(data []byte, count int, engine endian.EndianEngine) (Reader, error) {
	if len(data) < headerSize {
		return Reader{}, errs.ErrMalformedFile
	}

	base := engine.Uint64(data[0:8])
	width := int(data[8])
	need := bitpack.ByteLen(count, width)
	if len(data) < headerSize+need {
		return Reader{}, errs.ErrMalformedFile
	}

	return Reader{base: base, width: width, packed: data[headerSize : headerSize+need], count: count}, nil
}

// At returns the value at index i, or false if i is out of range.
func (r Reader) At(i int) (uint64, bool) {
	if i < 0 || i >= r.count {
		return 0, false
	}

	return r.base + bitpack.Extract(r.packed, r.width, i), true
}

// Len returns the number of values the Reader holds.
func (r Reader) Len() int { return r.count }
