package layout

import (
	"github.com/robcaulk/columnar/endian"
	"github.com/robcaulk/columnar/errs"
)

// FileFooterSize is the fixed byte size of a FileFooter.
const FileFooterSize = 16

// CurrentFormatVersion is the format_version stamped into every file
// written by this package.
const CurrentFormatVersion uint32 = 1

// FileFooter is the fixed-size trailer at the very end of a serialized
// file, following the column directory. It is the first thing a reader
// looks at: seek to file_size - FileFooterSize, parse it, then use
// DirectoryLength to locate and parse the directory that precedes it.
type FileFooter struct {
	// DirectoryLength is the byte length of the column directory that
	// immediately precedes this footer.
	DirectoryLength uint64
	// FormatVersion identifies the on-disk layout of the file as a whole.
	FormatVersion uint32
	// NumRows is the number of logical rows recorded in the file.
	NumRows uint32
}

// NewFileFooter builds a FileFooter stamped with CurrentFormatVersion.
func NewFileFooter(directoryLength uint64, numRows uint32) FileFooter {
	return FileFooter{
		DirectoryLength: directoryLength,
		FormatVersion:   CurrentFormatVersion,
		NumRows:         numRows,
	}
}

// Bytes serializes the footer into a new FileFooterSize-byte slice.
func (f FileFooter) Bytes(engine endian.EndianEngine) []byte {
	b := make([]byte, FileFooterSize)
	engine.PutUint64(b[0:8], f.DirectoryLength)
	engine.PutUint32(b[8:12], f.FormatVersion)
	engine.PutUint32(b[12:16], f.NumRows)

	return b
}

// ParseFileFooter parses a FileFooter from the last FileFooterSize bytes of
// data.
func ParseFileFooter(data []byte, engine endian.EndianEngine) (FileFooter, error) {
	if len(data) < FileFooterSize {
		return FileFooter{}, errs.ErrInvalidFooterSize
	}

	data = data[len(data)-FileFooterSize:]

	return FileFooter{
		DirectoryLength: engine.Uint64(data[0:8]),
		FormatVersion:   engine.Uint32(data[8:12]),
		NumRows:         engine.Uint32(data[12:16]),
	}, nil
}
