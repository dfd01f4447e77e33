package columnar

import (
	"github.com/robcaulk/columnar/compress"
	"github.com/robcaulk/columnar/endian"
	"github.com/robcaulk/columnar/fastfield"
	"github.com/robcaulk/columnar/format"
	"github.com/robcaulk/columnar/internal/pool"
	"github.com/robcaulk/columnar/layout"
	"github.com/robcaulk/columnar/value"
)

// numericColumn accumulates the values recorded for one U64/I64/F64-family
// column name. The final stored Category is resolved once, at finalize
// time, from every value the column has observed (the promotion lattice
// implemented by value.Observer).
type numericColumn struct {
	rows     []int
	values   []value.Numerical
	observer value.Observer
}

func (c *numericColumn) record(row int, v value.Numerical) {
	c.rows = append(c.rows, row)
	c.values = append(c.values, v)
	c.observer.Observe(v)
}

func (c *numericColumn) finalize(numRows int, perm []int, compression format.CompressionType, codec compress.Codec, engine endian.EndianEngine) (format.Category, []byte, error) {
	cat := c.observer.Category()

	raw, cleanup := pool.GetUint64Slice(len(c.values))
	defer cleanup()
	for i, v := range c.values {
		raw[i] = numericToRaw(value.Coerce(v, cat), cat)
	}

	data, err := encodeRawColumn(cat, numRows, c.rows, raw, perm, compression, codec, engine)

	return cat, data, err
}

func numericToRaw(v value.Numerical, cat format.Category) uint64 {
	switch cat {
	case format.CategoryU64:
		return v.U64
	case format.CategoryI64:
		return fastfield.ZigzagEncode(v.I64)
	default: // format.CategoryF64
		return fastfield.Float64Bits(v.F64)
	}
}

// encodeRawColumn packs rows/raw (aligned by index) into a complete encoded
// column: header, bit-packed value payload, null index, footer. It is the
// shared pipeline behind the Bool, I64, U64, F64 and DateTime categories;
// Str/Bytes (dictionary plus ordinals) and IpAddr columns have their own
// encoders.
func encodeRawColumn(cat format.Category, numRows int, rows []int, raw []uint64, perm []int, compression format.CompressionType, codec compress.Codec, engine endian.EndianEngine) ([]byte, error) {
	newRows, order := planOrder(rows, perm)
	ordered, cleanup := pool.GetUint64Slice(len(order))
	defer cleanup()
	for i, idx := range order {
		ordered[i] = raw[idx]
	}

	counts := countsPerRow(newRows, numRows)
	card := cardinalityFor(counts)

	valuePayload := fastfield.Build(ordered).Encode(engine)
	nullPayload := buildNullIndex(card, counts)

	payload := make([]byte, 0, len(valuePayload)+len(nullPayload))
	payload = append(payload, valuePayload...)
	payload = append(payload, nullPayload...)

	compressed, err := codec.Compress(payload)
	if err != nil {
		return nil, err
	}

	header := layout.NewColumnHeader(cat, card, uint32(numRows), uint32(len(ordered))) //nolint: gosec
	header.Compression = compression

	out := header.Bytes(engine)
	out = append(out, compressed...)
	out = append(out, layout.NewColumnFooter(uint32(len(compressed))).Bytes(engine)...) //nolint: gosec

	return out, nil
}
