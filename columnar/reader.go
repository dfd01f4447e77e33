package columnar

import (
	"sort"

	"github.com/robcaulk/columnar/endian"
	"github.com/robcaulk/columnar/errs"
	"github.com/robcaulk/columnar/format"
	"github.com/robcaulk/columnar/layout"
)

// Reader opens a serialized file and exposes its column directory. Reader
// is read-only and safe for concurrent use by multiple goroutines, since
// opening a column never mutates the Reader itself (the format's
// "shareable reader, no suspension" concurrency model).
type Reader struct {
	engine  endian.EndianEngine
	body    []byte // everything before the directory: the concatenated column bytes
	dir     layout.Directory
	numRows uint32
}

// Open parses data's trailing file footer and directory and returns a
// Reader ready to serve column handles. It does not decode any column
// payload; that happens lazily when a Handle is opened.
func Open(data []byte, engine endian.EndianEngine) (*Reader, error) {
	footer, err := layout.ParseFileFooter(data, engine)
	if err != nil {
		return nil, err
	}

	dirEnd := len(data) - layout.FileFooterSize
	dirStart := dirEnd - int(footer.DirectoryLength)
	if dirStart < 0 || dirStart > dirEnd {
		return nil, errs.ErrMalformedFile
	}

	dir, err := layout.ParseDirectory(data[dirStart:dirEnd], engine)
	if err != nil {
		return nil, err
	}

	return &Reader{engine: engine, body: data[:dirStart], dir: dir, numRows: footer.NumRows}, nil
}

// NumRows returns the file's declared logical row count.
func (r *Reader) NumRows() uint32 { return r.numRows }

// NumColumns returns the number of columns in the directory, counting each
// (name, category) pair separately.
func (r *Reader) NumColumns() int { return len(r.dir) }

// ListColumns returns every directory entry, ordered deterministically by
// (name, type category) regardless of how they were originally serialized.
func (r *Reader) ListColumns() layout.Directory {
	out := append(layout.Directory(nil), r.dir...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}

		return out[i].TypeCategory < out[j].TypeCategory
	})

	return out
}

// Handle is an unopened reference to one column's bytes within the file.
// Call Open to decode it into a DynamicColumn.
type Handle struct {
	reader *Reader
	entry  layout.DirectoryEntry
}

// Name returns the handle's column name.
func (h Handle) Name() string { return h.entry.Name }

// Category returns the handle's stored type category.
func (h Handle) Category() format.Category { return h.entry.TypeCategory }

// ReadColumns returns a Handle for every column recorded under name,
// across every type category it was written with.
func (r *Reader) ReadColumns(name string) []Handle {
	entries := r.dir.FindAll(name)
	handles := make([]Handle, len(entries))
	for i, e := range entries {
		handles[i] = Handle{reader: r, entry: e}
	}

	return handles
}
