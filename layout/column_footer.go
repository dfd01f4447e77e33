package layout

import (
	"github.com/robcaulk/columnar/endian"
	"github.com/robcaulk/columnar/errs"
)

// ColumnFooterSize is the fixed byte size of a ColumnFooter.
const ColumnFooterSize = 6

// currentLayoutVersion is written into every ColumnFooter produced by this
// package and read back (not validated) on parse, leaving room for a future
// reader to special-case older layouts without breaking the file format.
const currentLayoutVersion uint8 = 1

// ColumnFooter trails a column's encoded payload, giving a reader enough
// information to validate the framing without re-deriving it from the
// directory entry.
type ColumnFooter struct {
	// PayloadLen is the byte length of the column's payload, i.e. the
	// bytes between the header and this footer.
	PayloadLen uint32
	// LayoutVersion identifies the internal sub-layout of the payload
	// (null-index format, value codec revision).
	LayoutVersion uint8
}

// NewColumnFooter builds a ColumnFooter stamped with the current layout
// version.
func NewColumnFooter(payloadLen uint32) ColumnFooter {
	return ColumnFooter{PayloadLen: payloadLen, LayoutVersion: currentLayoutVersion}
}

// Bytes serializes the footer into a new ColumnFooterSize-byte slice.
func (f ColumnFooter) Bytes(engine endian.EndianEngine) []byte {
	b := make([]byte, ColumnFooterSize)
	engine.PutUint32(b[0:4], f.PayloadLen)
	b[4] = f.LayoutVersion
	b[5] = 0 // reserved

	return b
}

// ParseColumnFooter parses a ColumnFooter from the first ColumnFooterSize
// bytes of data.
func ParseColumnFooter(data []byte, engine endian.EndianEngine) (ColumnFooter, error) {
	if len(data) < ColumnFooterSize {
		return ColumnFooter{}, errs.ErrInvalidFooterSize
	}

	return ColumnFooter{
		PayloadLen:    engine.Uint32(data[0:4]),
		LayoutVersion: data[4],
	}, nil
}
