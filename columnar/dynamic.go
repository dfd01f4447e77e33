package columnar

import (
	"time"

	"github.com/robcaulk/columnar/compress"
	"github.com/robcaulk/columnar/dict"
	"github.com/robcaulk/columnar/errs"
	"github.com/robcaulk/columnar/fastfield"
	"github.com/robcaulk/columnar/format"
	"github.com/robcaulk/columnar/internal/bitpack"
	"github.com/robcaulk/columnar/layout"
	"github.com/robcaulk/columnar/nullindex"
)

// DynamicColumn is a decoded column whose stored type is discovered at
// runtime rather than known by the caller ahead of time, mirroring the
// eight-variant sum type the format's column directory describes. Callers
// inspect Category to pick the matching typed accessor.
type DynamicColumn struct {
	category    format.Category
	cardinality format.Cardinality
	numRows     int

	required nullindex.Required
	optional nullindex.Optional
	multi    nullindex.Multivalued

	values     fastfield.Reader // Bool, I64, U64, F64, DateTime, and Str/Bytes ordinals
	ipValues   []byte           // IpAddr only: 16 bytes per stored value
	dictionary dict.Reader      // Str, Bytes only
}

// Open decodes the handle's column bytes into a DynamicColumn.
func (h Handle) Open() (DynamicColumn, error) {
	r := h.reader
	e := h.entry

	if e.ColumnOffset+e.ColumnLength > uint64(len(r.body)) {
		return DynamicColumn{}, errs.ErrMalformedFile
	}
	raw := r.body[e.ColumnOffset : e.ColumnOffset+e.ColumnLength]

	if len(raw) < layout.ColumnHeaderSize+layout.ColumnFooterSize {
		return DynamicColumn{}, errs.ErrMalformedFile
	}

	header, err := layout.ParseColumnHeader(raw[:layout.ColumnHeaderSize], r.engine)
	if err != nil {
		return DynamicColumn{}, err
	}

	footerOff := len(raw) - layout.ColumnFooterSize
	footer, err := layout.ParseColumnFooter(raw[footerOff:], r.engine)
	if err != nil {
		return DynamicColumn{}, err
	}

	compressed := raw[layout.ColumnHeaderSize:footerOff]
	if uint32(len(compressed)) != footer.PayloadLen { //nolint: gosec
		return DynamicColumn{}, errs.ErrMalformedFile
	}

	codec, err := compress.GetCodec(header.Compression)
	if err != nil {
		return DynamicColumn{}, err
	}
	payload, err := codec.Decompress(compressed)
	if err != nil {
		return DynamicColumn{}, err
	}

	numRows := int(header.NumRows)
	numValues := int(header.NumValues)

	var valueLen int
	var dictBlob []byte
	if header.Category.IsDictionaryEncoded() {
		if len(payload) < 4 {
			return DynamicColumn{}, errs.ErrMalformedFile
		}
		dictLen := int(r.engine.Uint32(payload[0:4]))
		if len(payload) < 4+dictLen {
			return DynamicColumn{}, errs.ErrMalformedFile
		}
		dictBlob = payload[4 : 4+dictLen]

		ordLen, err := fastfieldPayloadLen(payload[4+dictLen:], numValues)
		if err != nil {
			return DynamicColumn{}, err
		}
		valueLen = 4 + dictLen + ordLen
	} else if header.Category == format.CategoryIPAddr {
		valueLen = 16 * numValues
	} else {
		n, err := fastfieldPayloadLen(payload, numValues)
		if err != nil {
			return DynamicColumn{}, err
		}
		valueLen = n
	}

	if len(payload) < valueLen {
		return DynamicColumn{}, errs.ErrMalformedFile
	}
	valuePayload := payload[:valueLen]
	nullPayload := payload[valueLen:]

	col := DynamicColumn{
		category:    header.Category,
		cardinality: header.Cardinality,
		numRows:     numRows,
	}

	switch header.Cardinality {
	case format.Required:
		col.required = nullindex.Required{NumRows: numRows}
	case format.Optional:
		col.optional, err = nullindex.ParseOptional(nullPayload, numRows)
	default: // format.Multivalued
		col.multi, err = nullindex.ParseMultivalued(nullPayload, numRows)
	}
	if err != nil {
		return DynamicColumn{}, err
	}

	if header.Category == format.CategoryIPAddr {
		col.ipValues = valuePayload
	} else if header.Category.IsDictionaryEncoded() {
		col.dictionary, err = dict.Parse(dictBlob, r.engine)
		if err != nil {
			return DynamicColumn{}, err
		}
		col.values, err = fastfield.Parse(valuePayload[4+len(dictBlob):], numValues, r.engine)
	} else {
		col.values, err = fastfield.Parse(valuePayload, numValues, r.engine)
	}
	if err != nil {
		return DynamicColumn{}, err
	}

	return col, nil
}

// fastfieldPayloadLen inspects a fastfield-encoded buffer's own width byte
// to compute its total byte length without requiring the caller to track
// it separately.
func fastfieldPayloadLen(data []byte, numValues int) (int, error) {
	const headerSize = 9
	if len(data) < headerSize {
		return 0, errs.ErrMalformedFile
	}
	width := int(data[8])

	return headerSize + bitpack.ByteLen(numValues, width), nil
}

// Category returns the column's stored type category.
func (c DynamicColumn) Category() format.Category { return c.category }

// GetCardinality returns the column's Required/Optional/Multivalued tag.
func (c DynamicColumn) GetCardinality() format.Cardinality { return c.cardinality }

// NumDocs returns the number of logical rows the column spans.
func (c DynamicColumn) NumDocs() int { return c.numRows }

// rowRange returns the half-open [start, end) range of stored-value
// indices belonging to row, under whichever null-index backs the column's
// cardinality.
func (c DynamicColumn) rowRange(row int) (start, end int, ok bool) {
	switch c.cardinality {
	case format.Required:
		i, ok := c.required.ValueIndex(row)
		if !ok {
			return 0, 0, false
		}

		return i, i + 1, true
	case format.Optional:
		i, ok := c.optional.ValueIndex(row)
		if !ok {
			return 0, 0, false
		}

		return i, i + 1, true
	default:
		return c.multi.ValuesForRow(row)
	}
}

// First returns the raw stored representation of row's first value: the
// bit pattern for Bool/I64/U64/F64/DateTime, or the dictionary ordinal for
// Str/Bytes. Use FirstIPAddr for IpAddr columns, which store values directly.
func (c DynamicColumn) First(row int) (uint64, bool) {
	start, end, ok := c.rowRange(row)
	if !ok || start >= end {
		return 0, false
	}

	return c.values.At(start)
}

// ValuesForDoc returns every raw stored value belonging to row, in
// recording order.
func (c DynamicColumn) ValuesForDoc(row int) []uint64 {
	start, end, ok := c.rowRange(row)
	if !ok {
		return nil
	}

	out := make([]uint64, 0, end-start)
	for i := start; i < end; i++ {
		v, _ := c.values.At(i)
		out = append(out, v)
	}

	return out
}

// FirstBool decodes row's first value as a bool.
func (c DynamicColumn) FirstBool(row int) (bool, bool) {
	raw, ok := c.First(row)
	return fastfield.BitsToBool(raw), ok
}

// FirstI64 decodes row's first value as a signed integer.
func (c DynamicColumn) FirstI64(row int) (int64, bool) {
	raw, ok := c.First(row)
	if !ok {
		return 0, false
	}

	return fastfield.ZigzagDecode(raw), true
}

// FirstU64 decodes row's first value as an unsigned integer.
func (c DynamicColumn) FirstU64(row int) (uint64, bool) { return c.First(row) }

// FirstF64 decodes row's first value as a float64.
func (c DynamicColumn) FirstF64(row int) (float64, bool) {
	raw, ok := c.First(row)
	if !ok {
		return 0, false
	}

	return fastfield.BitsToFloat64(raw), true
}

// FirstDateTime decodes row's first value as a UTC time.Time.
func (c DynamicColumn) FirstDateTime(row int) (time.Time, bool) {
	raw, ok := c.First(row)
	if !ok {
		return time.Time{}, false
	}

	return time.UnixMicro(fastfield.ZigzagDecode(raw)).UTC(), true
}

// FirstIPAddr decodes row's first value as a 128-bit big-endian address.
func (c DynamicColumn) FirstIPAddr(row int) ([16]byte, bool) {
	start, end, ok := c.rowRange(row)
	if !ok || start >= end {
		return [16]byte{}, false
	}

	var out [16]byte
	copy(out[:], c.ipValues[start*16:start*16+16])

	return out, true
}

// FirstStr decodes row's first value as a string via the column's
// dictionary.
func (c DynamicColumn) FirstStr(row int) (string, bool) {
	ord, ok := c.First(row)
	if !ok {
		return "", false
	}
	b, ok := c.dictionary.OrdToTerm(ord, nil)
	if !ok {
		return "", false
	}

	return string(b), true
}

// FirstBytes decodes row's first value as a byte slice via the column's
// dictionary.
func (c DynamicColumn) FirstBytes(row int) ([]byte, bool) {
	ord, ok := c.First(row)
	if !ok {
		return nil, false
	}

	return c.dictionary.OrdToTerm(ord, nil)
}

// ValuesForDocIPAddr decodes every value belonging to row as 128-bit
// addresses.
func (c DynamicColumn) ValuesForDocIPAddr(row int) [][16]byte {
	start, end, ok := c.rowRange(row)
	if !ok {
		return nil
	}

	out := make([][16]byte, 0, end-start)
	for i := start; i < end; i++ {
		var v [16]byte
		copy(v[:], c.ipValues[i*16:i*16+16])
		out = append(out, v)
	}

	return out
}

// ValuesForDocStr decodes every value belonging to row as strings via the
// column's dictionary.
func (c DynamicColumn) ValuesForDocStr(row int) []string {
	raws := c.ValuesForDoc(row)
	out := make([]string, len(raws))
	for i, ord := range raws {
		b, _ := c.dictionary.OrdToTerm(ord, nil)
		out[i] = string(b)
	}

	return out
}

// ValuesForDocBytes decodes every value belonging to row as byte slices via
// the column's dictionary.
func (c DynamicColumn) ValuesForDocBytes(row int) [][]byte {
	raws := c.ValuesForDoc(row)
	out := make([][]byte, len(raws))
	for i, ord := range raws {
		b, _ := c.dictionary.OrdToTerm(ord, nil)
		out[i] = b
	}

	return out
}

// Ords returns the dictionary ordinal stored at row, or false if row holds
// no value. Valid for Str/Bytes columns only; this is the per-row ordinal
// column the dictionary-encoded format describes, equivalent to First but
// named for the ordinal it returns rather than the raw stored bit pattern.
func (c DynamicColumn) Ords(row int) (uint64, bool) {
	return c.First(row)
}

// OrdToStr resolves a dictionary ordinal to its term, as a string.
func (c DynamicColumn) OrdToStr(ord uint64) (string, bool) {
	b, ok := c.dictionary.OrdToTerm(ord, nil)
	if !ok {
		return "", false
	}

	return string(b), true
}

// OrdToBytes resolves a dictionary ordinal to its term, as raw bytes
// appended to buf.
func (c DynamicColumn) OrdToBytes(ord uint64, buf []byte) ([]byte, bool) {
	return c.dictionary.OrdToTerm(ord, buf)
}
