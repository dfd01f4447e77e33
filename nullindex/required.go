// Package nullindex implements the three null/cardinality index encodings:
// Required (no bytes at all), Optional (a dense presence bitset with O(1)
// rank), and Multivalued (a monotonic bit-packed offset array). Exactly one
// of these backs every encoded column, chosen by the column's Cardinality.
package nullindex

// Required is the index for a column where every row has exactly one
// value; row i's value is simply the i-th stored value, so there is
// nothing to encode.
type Required struct {
	NumRows int
}

// Encode always returns nil: a Required index costs zero bytes.
func (r Required) Encode() []byte { return nil }

// ValueIndex returns row itself, since values are stored one per row in
// row order. ok is false if row is out of range.
func (r Required) ValueIndex(row int) (index int, ok bool) {
	if row < 0 || row >= r.NumRows {
		return 0, false
	}

	return row, true
}
