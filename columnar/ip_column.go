package columnar

import (
	"github.com/robcaulk/columnar/compress"
	"github.com/robcaulk/columnar/endian"
	"github.com/robcaulk/columnar/format"
	"github.com/robcaulk/columnar/layout"
)

// ipColumn accumulates the values recorded for one IpAddr column name.
// IPv6 addresses are 128 bits wide and do not fit the uint64-based
// fastfield codec, so they are stored as a direct big-endian byte run
// instead of bit-packed deltas, per the format's allowance for IpAddr
// columns to skip fast-field packing entirely.
type ipColumn struct {
	rows   []int
	values [][16]byte
}

func (c *ipColumn) record(row int, addr [16]byte) {
	c.rows = append(c.rows, row)
	c.values = append(c.values, addr)
}

func (c *ipColumn) finalize(numRows int, perm []int, compression format.CompressionType, codec compress.Codec, engine endian.EndianEngine) ([]byte, error) {
	newRows, order := planOrder(c.rows, perm)
	counts := countsPerRow(newRows, numRows)
	card := cardinalityFor(counts)

	valuePayload := make([]byte, 16*len(order))
	for i, idx := range order {
		copy(valuePayload[i*16:], c.values[idx][:])
	}

	nullPayload := buildNullIndex(card, counts)

	payload := make([]byte, 0, len(valuePayload)+len(nullPayload))
	payload = append(payload, valuePayload...)
	payload = append(payload, nullPayload...)

	compressed, err := codec.Compress(payload)
	if err != nil {
		return nil, err
	}

	header := layout.NewColumnHeader(format.CategoryIPAddr, card, uint32(numRows), uint32(len(order))) //nolint: gosec
	header.Compression = compression

	out := header.Bytes(engine)
	out = append(out, compressed...)
	out = append(out, layout.NewColumnFooter(uint32(len(compressed))).Bytes(engine)...) //nolint: gosec

	return out, nil
}
