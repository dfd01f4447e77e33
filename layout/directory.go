package layout

import (
	"github.com/robcaulk/columnar/endian"
	"github.com/robcaulk/columnar/errs"
	"github.com/robcaulk/columnar/format"
)

// DirectoryEntry locates one column's bytes within the file and names its
// type. Entries are variable length because column names are arbitrary
// UTF-8 strings.
type DirectoryEntry struct {
	Name         string
	TypeCategory format.Category
	ColumnOffset uint64
	ColumnLength uint64
}

// Size returns the serialized byte length of the entry: a u16 name length,
// the name bytes, a type-category byte, and two u64 offsets.
func (e DirectoryEntry) Size() int {
	return 2 + len(e.Name) + 1 + 8 + 8
}

// AppendTo appends the entry's serialized bytes to buf and returns the
// extended slice, following the teacher's append-based encoder style.
func (e DirectoryEntry) AppendTo(buf []byte, engine endian.EndianEngine) []byte {
	buf = engine.AppendUint16(buf, uint16(len(e.Name))) //nolint: gosec
	buf = append(buf, e.Name...)
	buf = append(buf, byte(e.TypeCategory))
	buf = engine.AppendUint64(buf, e.ColumnOffset)
	buf = engine.AppendUint64(buf, e.ColumnLength)

	return buf
}

// Directory is the ordered sequence of DirectoryEntry records describing
// every column in a file, in the order the columns were serialized.
type Directory []DirectoryEntry

// Encode serializes the directory to a single contiguous byte slice, the
// form written just before the FileFooter.
func (d Directory) Encode(engine endian.EndianEngine) []byte {
	size := 0
	for _, e := range d {
		size += e.Size()
	}

	buf := make([]byte, 0, size)
	for _, e := range d {
		buf = e.AppendTo(buf, engine)
	}

	return buf
}

// ParseDirectory parses a Directory from its encoded bytes. It consumes
// entries until data is exhausted; a file footer's DirectoryLength tells
// the caller exactly how many bytes to slice out before calling this.
func ParseDirectory(data []byte, engine endian.EndianEngine) (Directory, error) {
	var dir Directory

	for len(data) > 0 {
		if len(data) < 2 {
			return nil, errs.ErrInvalidDirectoryEntry
		}

		nameLen := int(engine.Uint16(data[0:2]))
		data = data[2:]

		if len(data) < nameLen+1+8+8 {
			return nil, errs.ErrInvalidDirectoryEntry
		}

		name := string(data[:nameLen])
		data = data[nameLen:]

		cat := format.Category(data[0])
		if cat > format.CategoryStr {
			return nil, errs.ErrUnknownTypeCategory
		}
		data = data[1:]

		offset := engine.Uint64(data[0:8])
		length := engine.Uint64(data[8:16])
		data = data[16:]

		dir = append(dir, DirectoryEntry{
			Name:         name,
			TypeCategory: cat,
			ColumnOffset: offset,
			ColumnLength: length,
		})
	}

	return dir, nil
}

// Find returns the entry for the given column name, or false if absent.
// Since two columns may share a name under different categories, Find
// returns the first match; use FindAll to enumerate every category.
func (d Directory) Find(name string) (DirectoryEntry, bool) {
	for _, e := range d {
		if e.Name == name {
			return e, true
		}
	}

	return DirectoryEntry{}, false
}

// FindAll returns every entry recorded under the given column name, across
// all type categories.
func (d Directory) FindAll(name string) []DirectoryEntry {
	var out []DirectoryEntry
	for _, e := range d {
		if e.Name == name {
			out = append(out, e)
		}
	}

	return out
}

// Names returns the distinct column names in the directory, in first-seen
// order.
func (d Directory) Names() []string {
	seen := make(map[string]struct{}, len(d))
	var names []string
	for _, e := range d {
		if _, ok := seen[e.Name]; ok {
			continue
		}
		seen[e.Name] = struct{}{}
		names = append(names, e.Name)
	}

	return names
}
