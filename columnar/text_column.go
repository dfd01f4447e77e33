package columnar

import (
	"github.com/robcaulk/columnar/compress"
	"github.com/robcaulk/columnar/dict"
	"github.com/robcaulk/columnar/endian"
	"github.com/robcaulk/columnar/fastfield"
	"github.com/robcaulk/columnar/format"
	"github.com/robcaulk/columnar/internal/pool"
	"github.com/robcaulk/columnar/layout"
)

// textColumn accumulates the values recorded for one Str or Bytes column
// name. Every recorded value is interned into a shared Dictionary at
// record time using its insertion-time ordinal; the ordinals are remapped
// to their final sorted form once, in finalize, after every value for the
// column has been seen.
type textColumn struct {
	rows          []int
	insertionOrds []uint64
	dict          *dict.Dictionary
	category      format.Category
}

func newTextColumn(category format.Category) *textColumn {
	return &textColumn{dict: dict.New(), category: category}
}

func (c *textColumn) record(row int, term []byte) {
	c.rows = append(c.rows, row)
	c.insertionOrds = append(c.insertionOrds, c.dict.Insert(term))
}

// finalize sorts the column's dictionary, remaps every recorded ordinal to
// its sorted form, and produces a complete encoded column whose value
// payload is [dict_len: u32][dict_payload][packed ordinals].
func (c *textColumn) finalize(numRows int, perm []int, compression format.CompressionType, codec compress.Codec, engine endian.EndianEngine) ([]byte, error) {
	c.dict.Finalize()

	sortedOrds, sortedCleanup := pool.GetUint64Slice(len(c.insertionOrds))
	defer sortedCleanup()
	for i, ord := range c.insertionOrds {
		sortedOrds[i] = c.dict.InsertionToSorted(ord)
	}

	newRows, order := planOrder(c.rows, perm)
	ordered, orderedCleanup := pool.GetUint64Slice(len(order))
	defer orderedCleanup()
	for i, idx := range order {
		ordered[i] = sortedOrds[idx]
	}

	counts := countsPerRow(newRows, numRows)
	card := cardinalityFor(counts)

	dictPayload := c.dict.Encode(engine)
	ordinalPayload := fastfield.Build(ordered).Encode(engine)

	valuePayload := make([]byte, 4+len(dictPayload)+len(ordinalPayload))
	engine.PutUint32(valuePayload[0:4], uint32(len(dictPayload))) //nolint: gosec
	copy(valuePayload[4:], dictPayload)
	copy(valuePayload[4+len(dictPayload):], ordinalPayload)

	nullPayload := buildNullIndex(card, counts)

	payload := make([]byte, 0, len(valuePayload)+len(nullPayload))
	payload = append(payload, valuePayload...)
	payload = append(payload, nullPayload...)

	compressed, err := codec.Compress(payload)
	if err != nil {
		return nil, err
	}

	header := layout.NewColumnHeader(c.category, card, uint32(numRows), uint32(len(ordered))) //nolint: gosec
	header.Compression = compression

	out := header.Bytes(engine)
	out = append(out, compressed...)
	out = append(out, layout.NewColumnFooter(uint32(len(compressed))).Bytes(engine)...) //nolint: gosec

	return out, nil
}
