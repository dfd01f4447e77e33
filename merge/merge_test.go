package merge_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robcaulk/columnar/columnar"
	"github.com/robcaulk/columnar/endian"
	"github.com/robcaulk/columnar/format"
	"github.com/robcaulk/columnar/merge"
	"github.com/robcaulk/columnar/value"
)

func openFrom(t *testing.T, data []byte) *columnar.Reader {
	t.Helper()
	r, err := columnar.Open(data, endian.GetLittleEndianEngine())
	require.NoError(t, err)

	return r
}

func TestMerge_EmptyAndOneRowSegment_Stacked(t *testing.T) {
	emptyData, err := columnar.NewWriter().Serialize(0, nil)
	require.NoError(t, err)

	w2 := columnar.NewWriter()
	require.NoError(t, w2.RecordStr(0, "c1", "a"))
	oneRowData, err := w2.Serialize(1, nil)
	require.NoError(t, err)

	sources := []merge.Source{
		{Reader: openFrom(t, emptyData)},
		{Reader: openFrom(t, oneRowData)},
	}

	merged, err := merge.Merge(sources, merge.Options{Order: merge.Stack})
	require.NoError(t, err)

	r := openFrom(t, merged)
	require.EqualValues(t, 1, r.NumRows())
	require.Equal(t, 1, r.NumColumns())

	handles := r.ReadColumns("c1")
	require.Len(t, handles, 1)
	require.Equal(t, format.CategoryStr, handles[0].Category())

	col, err := handles[0].Open()
	require.NoError(t, err)
	v, ok := col.FirstStr(0)
	require.True(t, ok)
	require.Equal(t, "a", v)
}

func TestMerge_StackConcatenatesRowsInOrder(t *testing.T) {
	w1 := columnar.NewWriter()
	require.NoError(t, w1.RecordNumerical(0, "n", value.FromU64(10)))
	require.NoError(t, w1.RecordNumerical(1, "n", value.FromU64(20)))
	data1, err := w1.Serialize(2, nil)
	require.NoError(t, err)

	w2 := columnar.NewWriter()
	require.NoError(t, w2.RecordNumerical(0, "n", value.FromU64(30)))
	data2, err := w2.Serialize(1, nil)
	require.NoError(t, err)

	sources := []merge.Source{
		{Reader: openFrom(t, data1)},
		{Reader: openFrom(t, data2)},
	}

	merged, err := merge.Merge(sources, merge.Options{Order: merge.Stack})
	require.NoError(t, err)

	r := openFrom(t, merged)
	require.EqualValues(t, 3, r.NumRows())

	col, err := r.ReadColumns("n")[0].Open()
	require.NoError(t, err)
	require.Equal(t, format.Required, col.GetCardinality())

	v0, _ := col.FirstU64(0)
	require.EqualValues(t, 10, v0)
	v1, _ := col.FirstU64(1)
	require.EqualValues(t, 20, v1)
	v2, _ := col.FirstU64(2)
	require.EqualValues(t, 30, v2)
}

func TestMerge_DropsDeadRows(t *testing.T) {
	w := columnar.NewWriter()
	require.NoError(t, w.RecordBool(0, "b", true))
	require.NoError(t, w.RecordBool(1, "b", false))
	require.NoError(t, w.RecordBool(2, "b", true))
	data, err := w.Serialize(3, nil)
	require.NoError(t, err)

	sources := []merge.Source{
		{Reader: openFrom(t, data), Alive: []bool{true, false, true}},
	}

	merged, err := merge.Merge(sources, merge.Options{Order: merge.Stack})
	require.NoError(t, err)

	r := openFrom(t, merged)
	require.EqualValues(t, 2, r.NumRows())

	col, err := r.ReadColumns("b")[0].Open()
	require.NoError(t, err)
	v0, ok := col.FirstBool(0)
	require.True(t, ok)
	require.True(t, v0)
	v1, ok := col.FirstBool(1)
	require.True(t, ok)
	require.True(t, v1)
}

func TestMerge_NumericPromotionAcrossSources(t *testing.T) {
	w1 := columnar.NewWriter()
	require.NoError(t, w1.RecordNumerical(0, "v", value.FromU64(7)))
	data1, err := w1.Serialize(1, nil)
	require.NoError(t, err)

	w2 := columnar.NewWriter()
	require.NoError(t, w2.RecordNumerical(0, "v", value.FromI64(-3)))
	data2, err := w2.Serialize(1, nil)
	require.NoError(t, err)

	sources := []merge.Source{
		{Reader: openFrom(t, data1)},
		{Reader: openFrom(t, data2)},
	}

	merged, err := merge.Merge(sources, merge.Options{Order: merge.Stack})
	require.NoError(t, err)

	r := openFrom(t, merged)
	handles := r.ReadColumns("v")
	require.Len(t, handles, 1)
	require.Equal(t, format.CategoryI64, handles[0].Category())
}

func TestMerge_ShuffledRowOrder(t *testing.T) {
	w := columnar.NewWriter()
	require.NoError(t, w.RecordStr(0, "s", "x"))
	require.NoError(t, w.RecordStr(1, "s", "y"))
	data, err := w.Serialize(2, nil)
	require.NoError(t, err)

	sources := []merge.Source{{Reader: openFrom(t, data)}}

	mapping := func(sourceIdx, oldRow int) (int, bool) {
		return 1 - oldRow, true // reverse the two rows
	}

	merged, err := merge.Merge(sources, merge.Options{Order: merge.Shuffled, Mapping: mapping, NumRows: 2})
	require.NoError(t, err)

	r := openFrom(t, merged)
	col, err := r.ReadColumns("s")[0].Open()
	require.NoError(t, err)

	v0, _ := col.FirstStr(0)
	require.Equal(t, "y", v0)
	v1, _ := col.FirstStr(1)
	require.Equal(t, "x", v1)
}
