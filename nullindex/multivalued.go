package nullindex

import (
	"math/bits"

	"github.com/robcaulk/columnar/errs"
	"github.com/robcaulk/columnar/internal/bitpack"
)

// Multivalued is the index for a column where every row has zero or more
// values: a monotonically nondecreasing sequence of num_rows+1 value
// offsets, bit-packed to the minimum width that can hold the total value
// count. values_for_row(i) is the half-open range [offset[i], offset[i+1]).
type Multivalued struct {
	packed  []byte
	width   int
	numRows int
}

// bitWidth returns the number of bits needed to represent any value in
// [0, maxValue], or 0 if maxValue is 0 (every offset is zero).
func bitWidth(maxValue uint64) int {
	return bits.Len64(maxValue)
}

// BuildMultivalued constructs a Multivalued index from the per-row value
// counts observed during recording.
func BuildMultivalued(counts []int) Multivalued {
	numRows := len(counts)
	offsets := make([]uint64, numRows+1)
	for i, c := range counts {
		offsets[i+1] = offsets[i] + uint64(c)
	}

	total := offsets[numRows]
	width := bitWidth(total)

	w := bitpack.NewWriter()
	for _, o := range offsets {
		w.WriteBits(o, width)
	}
	packed := append([]byte(nil), w.Finish()...)
	w.Release()

	return Multivalued{packed: packed, width: width, numRows: numRows}
}

// Encode returns the on-disk payload: a 1-byte bit width followed by the
// packed offset sequence.
func (m Multivalued) Encode() []byte {
	out := make([]byte, 1+len(m.packed))
	out[0] = byte(m.width) //nolint: gosec
	copy(out[1:], m.packed)

	return out
}

// ParseMultivalued parses a Multivalued index from its encoded payload.
func ParseMultivalued(data []byte, numRows int) (Multivalued, error) {
	if len(data) < 1 {
		return Multivalued{}, errs.ErrMalformedFile
	}

	width := int(data[0])
	need := bitpack.ByteLen(numRows+1, width)
	if len(data) < 1+need {
		return Multivalued{}, errs.ErrMalformedFile
	}

	return Multivalued{packed: data[1 : 1+need], width: width, numRows: numRows}, nil
}

func (m Multivalued) offsetAt(i int) int {
	return int(bitpack.Extract(m.packed, m.width, i))
}

// ValuesForRow returns the half-open [start, end) range of value indices
// belonging to row. ok is false if row is out of range.
func (m Multivalued) ValuesForRow(row int) (start, end int, ok bool) {
	if row < 0 || row >= m.numRows {
		return 0, 0, false
	}

	return m.offsetAt(row), m.offsetAt(row + 1), true
}

// NumValues returns the total number of stored values across all rows.
func (m Multivalued) NumValues() int {
	return m.offsetAt(m.numRows)
}
