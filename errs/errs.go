// Package errs defines the sentinel errors returned by the columnar storage
// engine. Callers should use errors.Is against these values; functions that
// need to attach context wrap them with fmt.Errorf("%w: ...", errs.ErrX, ...).
package errs

import "errors"

var (
	// ErrMalformedFile is returned when the file footer, directory, or a
	// column payload cannot be parsed.
	ErrMalformedFile = errors.New("columnar: malformed file")

	// ErrUnknownTypeCategory is returned when a column directory entry or
	// header carries a type-category tag byte this build does not know.
	ErrUnknownTypeCategory = errors.New("columnar: unknown type category")

	// ErrUnknownCardinality is returned when a column header carries a
	// cardinality tag byte this build does not know.
	ErrUnknownCardinality = errors.New("columnar: unknown cardinality")

	// ErrInvalidRowPermutation is returned by Writer.Serialize when the
	// supplied old->new row mapping is not a permutation of [0, num_rows).
	ErrInvalidRowPermutation = errors.New("columnar: invalid row permutation")

	// ErrInvalidHeaderSize is returned when a column header buffer is
	// shorter than the fixed header size.
	ErrInvalidHeaderSize = errors.New("columnar: invalid header size")

	// ErrInvalidFooterSize is returned when a column or file footer buffer
	// is shorter than the fixed footer size.
	ErrInvalidFooterSize = errors.New("columnar: invalid footer size")

	// ErrInvalidDirectoryEntry is returned when a directory entry cannot be
	// parsed (truncated length prefix, name, or offset fields).
	ErrInvalidDirectoryEntry = errors.New("columnar: invalid directory entry")

	// ErrRowOutOfRange is returned when a recorded row id is negative or is
	// not below the num_rows passed to Writer.Serialize.
	ErrRowOutOfRange = errors.New("columnar: row id out of range")

	// ErrUnknownCompression is returned when a column header's compression
	// tag byte is not one this build supports.
	ErrUnknownCompression = errors.New("columnar: unknown compression type")
)
