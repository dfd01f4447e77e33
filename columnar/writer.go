// Package columnar implements the document-oriented columnar storage
// engine: a Writer that accumulates per-row, per-column values of
// heterogeneous type across an arena of in-memory column builders and
// serializes them into the on-disk file format, and a Reader/DynamicColumn
// pair that opens a serialized file and exposes its columns without the
// caller needing to know a column's stored category ahead of time.
package columnar

import (
	"sort"
	"time"

	"github.com/robcaulk/columnar/compress"
	"github.com/robcaulk/columnar/endian"
	"github.com/robcaulk/columnar/errs"
	"github.com/robcaulk/columnar/format"
	"github.com/robcaulk/columnar/internal/options"
	"github.com/robcaulk/columnar/layout"
	"github.com/robcaulk/columnar/value"
)

// Writer accumulates recorded values for an arbitrary number of named
// columns and serializes them into one file once every row has been
// recorded. A Writer is not safe for concurrent use: callers recording
// from multiple goroutines must synchronize externally, matching the
// single-threaded-writer model the format assumes.
type Writer struct {
	engine      endian.EndianEngine
	compression format.CompressionType

	numeric map[string]*numericColumn
	bools   map[string]*boolColumn
	strs    map[string]*textColumn
	bytes   map[string]*textColumn
	dts     map[string]*datetimeColumn
	ips     map[string]*ipColumn
}

// NewWriter builds an empty Writer. Options default to little-endian
// framing and no compression.
func NewWriter(opts ...WriterOption) *Writer {
	w := &Writer{
		engine:      endian.GetLittleEndianEngine(),
		compression: format.CompressionNone,
		numeric:     make(map[string]*numericColumn),
		bools:       make(map[string]*boolColumn),
		strs:        make(map[string]*textColumn),
		bytes:       make(map[string]*textColumn),
		dts:         make(map[string]*datetimeColumn),
		ips:         make(map[string]*ipColumn),
	}

	_ = options.Apply(w, opts...) // NoError-wrapped options never fail

	return w
}

// RecordNumerical records a numerical value for (row, name). The column's
// final stored category (U64, I64, or F64) is resolved at Serialize time
// from every value recorded under this name.
func (w *Writer) RecordNumerical(row int, name string, v value.Numerical) error {
	if row < 0 {
		return errs.ErrRowOutOfRange
	}

	c := w.numeric[name]
	if c == nil {
		c = &numericColumn{}
		w.numeric[name] = c
	}
	c.record(row, v)

	return nil
}

// RecordBool records a boolean value for (row, name).
func (w *Writer) RecordBool(row int, name string, v bool) error {
	if row < 0 {
		return errs.ErrRowOutOfRange
	}

	c := w.bools[name]
	if c == nil {
		c = &boolColumn{}
		w.bools[name] = c
	}
	c.record(row, v)

	return nil
}

// RecordStr records a UTF-8 string value for (row, name).
func (w *Writer) RecordStr(row int, name string, s string) error {
	if row < 0 {
		return errs.ErrRowOutOfRange
	}

	c := w.strs[name]
	if c == nil {
		c = newTextColumn(format.CategoryStr)
		w.strs[name] = c
	}
	c.record(row, []byte(s))

	return nil
}

// RecordBytes records an opaque byte-string value for (row, name).
func (w *Writer) RecordBytes(row int, name string, b []byte) error {
	if row < 0 {
		return errs.ErrRowOutOfRange
	}

	c := w.bytes[name]
	if c == nil {
		c = newTextColumn(format.CategoryBytes)
		w.bytes[name] = c
	}
	c.record(row, b)

	return nil
}

// RecordDatetime records a timestamp value for (row, name), stored as
// zigzag-coded Unix microseconds.
func (w *Writer) RecordDatetime(row int, name string, t time.Time) error {
	if row < 0 {
		return errs.ErrRowOutOfRange
	}

	c := w.dts[name]
	if c == nil {
		c = &datetimeColumn{}
		w.dts[name] = c
	}
	c.record(row, t.UnixMicro())

	return nil
}

// RecordIPAddr records a 128-bit, big-endian IPv6 address for (row, name).
// Callers with an IPv4 address should map it into its IPv4-in-IPv6 form
// before calling (net.IP.To16 does this).
func (w *Writer) RecordIPAddr(row int, name string, addr [16]byte) error {
	if row < 0 {
		return errs.ErrRowOutOfRange
	}

	c := w.ips[name]
	if c == nil {
		c = &ipColumn{}
		w.ips[name] = c
	}
	c.record(row, addr)

	return nil
}

// encodedColumn is one fully-serialized column, pending assembly into the
// file's concatenated column section and directory.
type encodedColumn struct {
	name string
	cat  format.Category
	data []byte
}

// Serialize finalizes every recorded column and writes the complete file
// framing: the concatenated column bytes, the column directory, and the
// file footer. numRows is the logical row count the file declares; every
// recorded row id must be below it.
//
// perm, if non-nil, is an old-row-id -> new-row-id permutation of
// [0, numRows) applied to every recorded value before encoding: value
// storage order follows the new row ids, not recording order. A nil perm
// leaves row ids unchanged; values are still stored in ascending row order,
// and recording order is kept only among values of the same row.
func (w *Writer) Serialize(numRows uint32, perm []int) ([]byte, error) {
	if perm != nil {
		if err := validatePermutation(perm, int(numRows)); err != nil {
			return nil, err
		}
	}

	if err := w.validateRowBounds(int(numRows)); err != nil {
		return nil, err
	}

	codec, err := compress.CreateCodec(w.compression, "column")
	if err != nil {
		return nil, err
	}

	cols, err := w.finalizeColumns(int(numRows), perm, codec)
	if err != nil {
		return nil, err
	}

	sortColumns(cols)

	var body []byte
	dir := make(layout.Directory, 0, len(cols))
	var offset uint64
	for _, c := range cols {
		dir = append(dir, layout.DirectoryEntry{
			Name:         c.name,
			TypeCategory: c.cat,
			ColumnOffset: offset,
			ColumnLength: uint64(len(c.data)),
		})
		body = append(body, c.data...)
		offset += uint64(len(c.data))
	}

	dirBytes := dir.Encode(w.engine)
	body = append(body, dirBytes...)
	body = append(body, layout.NewFileFooter(uint64(len(dirBytes)), numRows).Bytes(w.engine)...)

	return body, nil
}

func (w *Writer) finalizeColumns(numRows int, perm []int, codec compress.Codec) ([]encodedColumn, error) {
	var cols []encodedColumn

	for name, c := range w.numeric {
		cat, data, err := c.finalize(numRows, perm, w.compression, codec, w.engine)
		if err != nil {
			return nil, err
		}
		cols = append(cols, encodedColumn{name, cat, data})
	}
	for name, c := range w.bools {
		data, err := c.finalize(numRows, perm, w.compression, codec, w.engine)
		if err != nil {
			return nil, err
		}
		cols = append(cols, encodedColumn{name, format.CategoryBool, data})
	}
	for name, c := range w.dts {
		data, err := c.finalize(numRows, perm, w.compression, codec, w.engine)
		if err != nil {
			return nil, err
		}
		cols = append(cols, encodedColumn{name, format.CategoryDateTime, data})
	}
	for name, c := range w.ips {
		data, err := c.finalize(numRows, perm, w.compression, codec, w.engine)
		if err != nil {
			return nil, err
		}
		cols = append(cols, encodedColumn{name, format.CategoryIPAddr, data})
	}
	for name, c := range w.strs {
		data, err := c.finalize(numRows, perm, w.compression, codec, w.engine)
		if err != nil {
			return nil, err
		}
		cols = append(cols, encodedColumn{name, format.CategoryStr, data})
	}
	for name, c := range w.bytes {
		data, err := c.finalize(numRows, perm, w.compression, codec, w.engine)
		if err != nil {
			return nil, err
		}
		cols = append(cols, encodedColumn{name, format.CategoryBytes, data})
	}

	return cols, nil
}

// sortColumns orders columns by (name, category) so that a file's directory
// is deterministic regardless of the Go map iteration order used to build
// it.
func sortColumns(cols []encodedColumn) {
	sort.Slice(cols, func(i, j int) bool {
		if cols[i].name != cols[j].name {
			return cols[i].name < cols[j].name
		}

		return cols[i].cat < cols[j].cat
	})
}

func (w *Writer) validateRowBounds(numRows int) error {
	for _, c := range w.numeric {
		if r := firstRowOutOfRange(c.rows, numRows); r != -1 {
			return errs.ErrRowOutOfRange
		}
	}
	for _, c := range w.bools {
		if r := firstRowOutOfRange(c.rows, numRows); r != -1 {
			return errs.ErrRowOutOfRange
		}
	}
	for _, c := range w.dts {
		if r := firstRowOutOfRange(c.rows, numRows); r != -1 {
			return errs.ErrRowOutOfRange
		}
	}
	for _, c := range w.ips {
		if r := firstRowOutOfRange(c.rows, numRows); r != -1 {
			return errs.ErrRowOutOfRange
		}
	}
	for _, c := range w.strs {
		if r := firstRowOutOfRange(c.rows, numRows); r != -1 {
			return errs.ErrRowOutOfRange
		}
	}
	for _, c := range w.bytes {
		if r := firstRowOutOfRange(c.rows, numRows); r != -1 {
			return errs.ErrRowOutOfRange
		}
	}

	return nil
}

// validatePermutation checks that perm is a bijection of [0, numRows).
func validatePermutation(perm []int, numRows int) error {
	if len(perm) != numRows {
		return errs.ErrInvalidRowPermutation
	}

	seen := make([]bool, numRows)
	for _, p := range perm {
		if p < 0 || p >= numRows || seen[p] {
			return errs.ErrInvalidRowPermutation
		}
		seen[p] = true
	}

	return nil
}
