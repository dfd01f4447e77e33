// Package merge implements the N-reader merge engine: it unions the column
// directories of several serialized columnar files, resolves each merged
// column's stored type across every input the same way a single Writer
// would, and re-encodes every value into one output file under a chosen
// row order.
//
// Dictionary-backed columns (Str, Bytes) are not merge-sorted by walking
// each input's already-sorted dictionary in lockstep; instead, every
// input's decoded term is re-recorded into a fresh Writer, whose own
// Dictionary.Finalize performs the sort once over the union of terms. This
// is simpler to get right than a streaming k-way merge with per-input
// ordinal remap tables, and produces the same dictionary (same terms, same
// sorted ordinals) the guarantee asks for: merging is observationally
// equivalent to building one file from the concatenated document stream.
package merge

import (
	"time"

	"github.com/robcaulk/columnar/columnar"
	"github.com/robcaulk/columnar/errs"
	"github.com/robcaulk/columnar/fastfield"
	"github.com/robcaulk/columnar/format"
	"github.com/robcaulk/columnar/value"
)

// RowOrder selects how rows from multiple sources are interleaved into the
// merged file's row space.
type RowOrder uint8

const (
	// Stack concatenates sources in declared order: source k's alive rows
	// land contiguously after every alive row of sources 0..k-1, in their
	// original relative order.
	Stack RowOrder = iota
	// Shuffled uses an explicit mapping supplied by the caller, together
	// with a declared new row count.
	Shuffled
)

// Mapping resolves an (source index, old row) pair to a new row id under
// Shuffled row order. ok is false if the row is dropped from the merge.
type Mapping func(sourceIdx, oldRow int) (newRow int, ok bool)

// Source is one input to a merge: a reader plus an optional alive mask.
// A nil Alive means every row in Reader is alive.
type Source struct {
	Reader *columnar.Reader
	Alive  []bool
}

func (s Source) isAlive(row int) bool {
	if s.Alive == nil {
		return true
	}
	if row < 0 || row >= len(s.Alive) {
		return false
	}

	return s.Alive[row]
}

// Options configures a Merge call.
type Options struct {
	Order RowOrder
	// Mapping is required when Order == Shuffled.
	Mapping Mapping
	// NumRows is required when Order == Shuffled: the declared new row
	// count. Ignored (computed automatically) under Stack.
	NumRows int
}

// Merge unions the column directories of every source and re-encodes every
// column's values, in new-row order, into a single serialized file.
func Merge(sources []Source, opts Options, writerOpts ...columnar.WriterOption) ([]byte, error) {
	rowMap, numRows, err := resolveRowMap(sources, opts)
	if err != nil {
		return nil, err
	}

	w := columnar.NewWriter(writerOpts...)

	for _, g := range groupColumns(sources) {
		if err := g.mergeInto(w, sources, rowMap); err != nil {
			return nil, err
		}
	}

	return w.Serialize(uint32(numRows), nil) //nolint: gosec
}

// resolveRowMap builds the (sourceIdx, oldRow) -> newRow function and the
// merged row count for the chosen RowOrder.
func resolveRowMap(sources []Source, opts Options) (Mapping, int, error) {
	if opts.Order == Shuffled {
		if opts.Mapping == nil {
			return nil, 0, errs.ErrInvalidRowPermutation
		}

		return opts.Mapping, opts.NumRows, nil
	}

	offsets := make([]int, len(sources))
	ranks := make([][]int, len(sources))
	total := 0
	for i, s := range sources {
		offsets[i] = total

		n := int(s.Reader.NumRows())
		r := make([]int, n)
		cnt := 0
		for row := 0; row < n; row++ {
			if s.isAlive(row) {
				r[row] = cnt
				cnt++
			} else {
				r[row] = -1
			}
		}
		ranks[i] = r
		total += cnt
	}

	return func(sourceIdx, oldRow int) (int, bool) {
		r := ranks[sourceIdx][oldRow]
		if r < 0 {
			return 0, false
		}

		return offsets[sourceIdx] + r, true
	}, total, nil
}

// family groups type categories that share a merged column identity: the
// U64/I64/F64 promotion lattice unifies those three into one family, while
// Bool, DateTime, IpAddr, Str, and Bytes are each their own fixed family.
type family uint8

const (
	famNumeric family = iota
	famBool
	famDateTime
	famIPAddr
	famStr
	famBytes
)

func familyOf(cat format.Category) family {
	switch cat {
	case format.CategoryU64, format.CategoryI64, format.CategoryF64:
		return famNumeric
	case format.CategoryBool:
		return famBool
	case format.CategoryDateTime:
		return famDateTime
	case format.CategoryIPAddr:
		return famIPAddr
	case format.CategoryStr:
		return famStr
	default: // format.CategoryBytes
		return famBytes
	}
}

type sourceColumnRef struct {
	sourceIdx int
	category  format.Category
}

// columnGroup is every (source, category) occurrence of one merged column
// name+family pair across all sources, gathered so they can be decoded and
// re-recorded together.
type columnGroup struct {
	name   string
	family family
	refs   []sourceColumnRef
}

// groupColumns unions every source's directory into merged column groups,
// in first-seen order across sources (deterministic given a fixed source
// order, though Writer.Serialize re-sorts the final directory anyway).
func groupColumns(sources []Source) []columnGroup {
	index := make(map[string]int)
	var groups []columnGroup

	for si, s := range sources {
		for _, e := range s.Reader.ListColumns() {
			fam := familyOf(e.TypeCategory)
			key := e.Name + "\x00" + string(rune(fam))

			gi, ok := index[key]
			if !ok {
				gi = len(groups)
				index[key] = gi
				groups = append(groups, columnGroup{name: e.Name, family: fam})
			}
			groups[gi].refs = append(groups[gi].refs, sourceColumnRef{sourceIdx: si, category: e.TypeCategory})
		}
	}

	return groups
}

func openNamedColumn(r *columnar.Reader, name string, cat format.Category) (columnar.DynamicColumn, error) {
	for _, h := range r.ReadColumns(name) {
		if h.Category() == cat {
			return h.Open()
		}
	}

	return columnar.DynamicColumn{}, errs.ErrMalformedFile
}

func (g columnGroup) mergeInto(w *columnar.Writer, sources []Source, rowMap Mapping) error {
	switch g.family {
	case famNumeric:
		return g.mergeNumeric(w, sources, rowMap)
	case famBool:
		return g.mergeBool(w, sources, rowMap)
	case famDateTime:
		return g.mergeDateTime(w, sources, rowMap)
	case famIPAddr:
		return g.mergeIPAddr(w, sources, rowMap)
	case famStr:
		return g.mergeText(w, sources, rowMap, true)
	default: // famBytes
		return g.mergeText(w, sources, rowMap, false)
	}
}

func decodeNumeric(raw uint64, cat format.Category) value.Numerical {
	switch cat {
	case format.CategoryU64:
		return value.FromU64(raw)
	case format.CategoryI64:
		return value.FromI64(fastfield.ZigzagDecode(raw))
	default: // format.CategoryF64
		return value.FromF64(fastfield.BitsToFloat64(raw))
	}
}

// mergeNumeric decodes every value through its own source's category and
// re-records it via RecordNumerical: the merged Writer's own Observer
// resolves the final stored category across every input, the same
// promotion lattice a single Writer applies to a column recorded directly.
func (g columnGroup) mergeNumeric(w *columnar.Writer, sources []Source, rowMap Mapping) error {
	for _, ref := range g.refs {
		col, err := openNamedColumn(sources[ref.sourceIdx].Reader, g.name, ref.category)
		if err != nil {
			return err
		}

		for row := 0; row < col.NumDocs(); row++ {
			newRow, ok := rowMap(ref.sourceIdx, row)
			if !ok {
				continue
			}
			for _, raw := range col.ValuesForDoc(row) {
				if err := w.RecordNumerical(newRow, g.name, decodeNumeric(raw, ref.category)); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func (g columnGroup) mergeBool(w *columnar.Writer, sources []Source, rowMap Mapping) error {
	for _, ref := range g.refs {
		col, err := openNamedColumn(sources[ref.sourceIdx].Reader, g.name, format.CategoryBool)
		if err != nil {
			return err
		}

		for row := 0; row < col.NumDocs(); row++ {
			newRow, ok := rowMap(ref.sourceIdx, row)
			if !ok {
				continue
			}
			for _, raw := range col.ValuesForDoc(row) {
				if err := w.RecordBool(newRow, g.name, fastfield.BitsToBool(raw)); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func (g columnGroup) mergeDateTime(w *columnar.Writer, sources []Source, rowMap Mapping) error {
	for _, ref := range g.refs {
		col, err := openNamedColumn(sources[ref.sourceIdx].Reader, g.name, format.CategoryDateTime)
		if err != nil {
			return err
		}

		for row := 0; row < col.NumDocs(); row++ {
			newRow, ok := rowMap(ref.sourceIdx, row)
			if !ok {
				continue
			}
			for _, raw := range col.ValuesForDoc(row) {
				t := time.UnixMicro(fastfield.ZigzagDecode(raw)).UTC()
				if err := w.RecordDatetime(newRow, g.name, t); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func (g columnGroup) mergeIPAddr(w *columnar.Writer, sources []Source, rowMap Mapping) error {
	for _, ref := range g.refs {
		col, err := openNamedColumn(sources[ref.sourceIdx].Reader, g.name, format.CategoryIPAddr)
		if err != nil {
			return err
		}

		for row := 0; row < col.NumDocs(); row++ {
			newRow, ok := rowMap(ref.sourceIdx, row)
			if !ok {
				continue
			}
			for _, addr := range col.ValuesForDocIPAddr(row) {
				if err := w.RecordIPAddr(newRow, g.name, addr); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func (g columnGroup) mergeText(w *columnar.Writer, sources []Source, rowMap Mapping, isStr bool) error {
	cat := format.CategoryBytes
	if isStr {
		cat = format.CategoryStr
	}

	for _, ref := range g.refs {
		col, err := openNamedColumn(sources[ref.sourceIdx].Reader, g.name, cat)
		if err != nil {
			return err
		}

		for row := 0; row < col.NumDocs(); row++ {
			newRow, ok := rowMap(ref.sourceIdx, row)
			if !ok {
				continue
			}

			if isStr {
				for _, s := range col.ValuesForDocStr(row) {
					if err := w.RecordStr(newRow, g.name, s); err != nil {
						return err
					}
				}
			} else {
				for _, b := range col.ValuesForDocBytes(row) {
					if err := w.RecordBytes(newRow, g.name, b); err != nil {
						return err
					}
				}
			}
		}
	}

	return nil
}
