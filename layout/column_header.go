// Package layout implements the fixed-size binary framing shared by every
// column and by the file as a whole: the column header and footer, the file
// footer, and the column directory. These are the only parts of the format
// that a reader must understand before it knows anything about a specific
// column's codec.
package layout

import (
	"github.com/robcaulk/columnar/endian"
	"github.com/robcaulk/columnar/errs"
	"github.com/robcaulk/columnar/format"
)

// ColumnHeaderSize is the fixed byte size of a ColumnHeader.
const ColumnHeaderSize = 14

// ColumnHeader is the fixed-size header at the start of every encoded
// column. It carries just enough information for a reader to locate and
// interpret the column's null-index and value payloads without consulting
// anything else.
type ColumnHeader struct {
	// Category is the column's stored type category.
	Category format.Category
	// Cardinality is the column's Required/Optional/Multivalued tag.
	Cardinality format.Cardinality
	// Compression is the codec applied to the payload that follows the
	// header, or CompressionNone.
	Compression format.CompressionType
	// NumRows is the number of logical rows this column spans.
	NumRows uint32
	// NumValues is the total number of stored values: equal to NumRows for
	// Required, the number of present rows for Optional, and the sum of
	// per-row value counts for Multivalued.
	NumValues uint32
}

// NewColumnHeader builds a ColumnHeader with no compression applied.
func NewColumnHeader(cat format.Category, card format.Cardinality, numRows, numValues uint32) ColumnHeader {
	return ColumnHeader{
		Category:    cat,
		Cardinality: card,
		Compression: format.CompressionNone,
		NumRows:     numRows,
		NumValues:   numValues,
	}
}

// Bytes serializes the header into a new ColumnHeaderSize-byte slice.
func (h ColumnHeader) Bytes(engine endian.EndianEngine) []byte {
	b := make([]byte, ColumnHeaderSize)
	h.WriteToSlice(b, engine)

	return b
}

// WriteToSlice writes the header into data[:ColumnHeaderSize]. The caller
// must ensure data is at least ColumnHeaderSize bytes long.
func (h ColumnHeader) WriteToSlice(data []byte, engine endian.EndianEngine) {
	data[0] = byte(h.Category)
	data[1] = byte(h.Cardinality)
	data[2] = byte(h.Compression)
	data[3] = 0 // reserved
	engine.PutUint32(data[4:8], h.NumRows)
	engine.PutUint32(data[8:12], h.NumValues)
	data[12] = 0 // reserved
	data[13] = 0 // reserved
}

// ParseColumnHeader parses a ColumnHeader from the first ColumnHeaderSize
// bytes of data.
func ParseColumnHeader(data []byte, engine endian.EndianEngine) (ColumnHeader, error) {
	if len(data) < ColumnHeaderSize {
		return ColumnHeader{}, errs.ErrInvalidHeaderSize
	}

	cat := format.Category(data[0])
	if cat > format.CategoryStr {
		return ColumnHeader{}, errs.ErrUnknownTypeCategory
	}

	card := format.Cardinality(data[1])
	if card > format.Multivalued {
		return ColumnHeader{}, errs.ErrUnknownCardinality
	}

	compression := format.CompressionType(data[2])
	switch compression {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
	default:
		return ColumnHeader{}, errs.ErrUnknownCompression
	}

	return ColumnHeader{
		Category:    cat,
		Cardinality: card,
		Compression: compression,
		NumRows:     engine.Uint32(data[4:8]),
		NumValues:   engine.Uint32(data[8:12]),
	}, nil
}
