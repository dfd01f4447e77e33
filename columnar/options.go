package columnar

import (
	"github.com/robcaulk/columnar/endian"
	"github.com/robcaulk/columnar/format"
	"github.com/robcaulk/columnar/internal/options"
)

// WriterOption configures a Writer at construction time, following the
// teacher's generic functional-options pattern (internal/options).
type WriterOption = options.Option[*Writer]

// WithCompression sets the compression codec applied to every column's
// encoded payload. The default is format.CompressionNone.
func WithCompression(c format.CompressionType) WriterOption {
	return options.NoError(func(w *Writer) { w.compression = c })
}

// WithLittleEndian selects the little-endian engine. This is the default.
func WithLittleEndian() WriterOption {
	return options.NoError(func(w *Writer) { w.engine = endian.GetLittleEndianEngine() })
}

// WithBigEndian selects the big-endian engine for every multi-byte field in
// the produced file.
func WithBigEndian() WriterOption {
	return options.NoError(func(w *Writer) { w.engine = endian.GetBigEndianEngine() })
}
