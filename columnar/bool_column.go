package columnar

import (
	"github.com/robcaulk/columnar/compress"
	"github.com/robcaulk/columnar/endian"
	"github.com/robcaulk/columnar/fastfield"
	"github.com/robcaulk/columnar/format"
	"github.com/robcaulk/columnar/internal/pool"
)

// boolColumn accumulates the values recorded for one Bool column name.
type boolColumn struct {
	rows   []int
	values []bool
}

func (c *boolColumn) record(row int, v bool) {
	c.rows = append(c.rows, row)
	c.values = append(c.values, v)
}

func (c *boolColumn) finalize(numRows int, perm []int, compression format.CompressionType, codec compress.Codec, engine endian.EndianEngine) ([]byte, error) {
	raw, cleanup := pool.GetUint64Slice(len(c.values))
	defer cleanup()
	for i, v := range c.values {
		raw[i] = fastfield.BoolToBits(v)
	}

	return encodeRawColumn(format.CategoryBool, numRows, c.rows, raw, perm, compression, codec, engine)
}

// datetimeColumn accumulates the values recorded for one DateTime column
// name, stored as zigzag-coded Unix microseconds through the same codec as
// I64 (the category is fixed, never inferred: DateTime never competes with
// I64/U64/F64 in the promotion lattice).
type datetimeColumn struct {
	rows   []int
	micros []int64
}

func (c *datetimeColumn) record(row int, unixMicros int64) {
	c.rows = append(c.rows, row)
	c.micros = append(c.micros, unixMicros)
}

func (c *datetimeColumn) finalize(numRows int, perm []int, compression format.CompressionType, codec compress.Codec, engine endian.EndianEngine) ([]byte, error) {
	raw, cleanup := pool.GetUint64Slice(len(c.micros))
	defer cleanup()
	for i, v := range c.micros {
		raw[i] = fastfield.ZigzagEncode(v)
	}

	return encodeRawColumn(format.CategoryDateTime, numRows, c.rows, raw, perm, compression, codec, engine)
}
