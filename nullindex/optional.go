package nullindex

import (
	"math/bits"

	"github.com/robcaulk/columnar/errs"
)

// Optional is the index for a column where every row has zero or one
// value: a dense presence bitset plus a rank structure giving O(1)
// row->value-index lookup.
//
// Rank support precomputes the cumulative popcount at every 64-row block
// boundary (one uint32 per block); looking up a row then only needs to
// popcount the partial block between the boundary and the row itself,
// using the standard library's math/bits (no library in the surrounding
// corpus implements succinct rank/select, so this one piece of the codec
// is deliberately stdlib).
type Optional struct {
	bits      []byte
	numRows   int
	blockRank []uint32 // len = numBlocks+1; blockRank[k] = popcount of rows [0, 64k)
}

// BuildOptional constructs an Optional index from a per-row presence
// slice. len(present) must equal numRows.
func BuildOptional(present []bool) Optional {
	n := len(present)
	raw := make([]byte, (n+7)/8)
	for i, p := range present {
		if p {
			raw[i/8] |= 1 << uint(i%8)
		}
	}

	o := Optional{bits: raw, numRows: n}
	o.computeRank()

	return o
}

func (o *Optional) computeRank() {
	numBlocks := (o.numRows + 63) / 64
	o.blockRank = make([]uint32, numBlocks+1)

	var cum uint32
	for block := 0; block < numBlocks; block++ {
		o.blockRank[block] = cum

		start := block * 8
		end := start + 8
		if end > len(o.bits) {
			end = len(o.bits)
		}
		for i := start; i < end; i++ {
			cum += uint32(bits.OnesCount8(o.bits[i]))
		}
	}
	o.blockRank[numBlocks] = cum
}

// Encode returns the raw presence bitset bytes. The rank structure is
// recomputed on Parse rather than stored, trading a little decode-time CPU
// for a smaller on-disk footprint.
func (o Optional) Encode() []byte {
	return o.bits
}

// ParseOptional parses an Optional index from its encoded presence bitset.
func ParseOptional(data []byte, numRows int) (Optional, error) {
	size := (numRows + 7) / 8
	if len(data) < size {
		return Optional{}, errs.ErrMalformedFile
	}

	o := Optional{bits: data[:size], numRows: numRows}
	o.computeRank()

	return o, nil
}

// Present reports whether row carries a value.
func (o Optional) Present(row int) bool {
	if row < 0 || row >= o.numRows {
		return false
	}

	return o.bits[row/8]&(1<<uint(row%8)) != 0
}

// ValueIndex returns the rank (0-based position among present rows) of
// row's value, or false if row has no value.
func (o Optional) ValueIndex(row int) (index int, ok bool) {
	if !o.Present(row) {
		return 0, false
	}

	block := row / 64
	rank := int(o.blockRank[block])

	blockStartByte := block * 8
	byteIdx := row / 8
	for b := blockStartByte; b < byteIdx; b++ {
		rank += bits.OnesCount8(o.bits[b])
	}

	bitInByte := uint(row % 8)
	mask := byte((uint16(1) << bitInByte) - 1)
	rank += bits.OnesCount8(o.bits[byteIdx] & mask)

	return rank, true
}

// NumPresent returns the total number of rows carrying a value.
func (o Optional) NumPresent() int {
	return int(o.blockRank[len(o.blockRank)-1])
}
