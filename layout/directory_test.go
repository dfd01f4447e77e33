package layout

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robcaulk/columnar/endian"
	"github.com/robcaulk/columnar/format"
)

func TestDirectory_EncodeParseRoundTrip(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	dir := Directory{
		{Name: "title", TypeCategory: format.CategoryStr, ColumnOffset: 0, ColumnLength: 120},
		{Name: "views", TypeCategory: format.CategoryI64, ColumnOffset: 120, ColumnLength: 40},
		{Name: "", TypeCategory: format.CategoryBool, ColumnOffset: 160, ColumnLength: 8},
	}

	b := dir.Encode(engine)
	got, err := ParseDirectory(b, engine)
	require.NoError(t, err)
	require.Equal(t, dir, got)
}

func TestDirectory_FindAndFindAll(t *testing.T) {
	dir := Directory{
		{Name: "price", TypeCategory: format.CategoryI64, ColumnOffset: 0, ColumnLength: 8},
		{Name: "price", TypeCategory: format.CategoryF64, ColumnOffset: 8, ColumnLength: 8},
	}

	entry, ok := dir.Find("price")
	require.True(t, ok)
	require.Equal(t, format.CategoryI64, entry.TypeCategory)

	all := dir.FindAll("price")
	require.Len(t, all, 2)

	_, ok = dir.Find("missing")
	require.False(t, ok)
}

func TestDirectory_Names(t *testing.T) {
	dir := Directory{
		{Name: "b", TypeCategory: format.CategoryI64},
		{Name: "a", TypeCategory: format.CategoryI64},
		{Name: "b", TypeCategory: format.CategoryF64},
	}

	require.Equal(t, []string{"b", "a"}, dir.Names())
}

func TestDirectory_ParseRejectsTruncatedEntry(t *testing.T) {
	_, err := ParseDirectory([]byte{0x05, 0x00, 'a', 'b'}, endian.GetLittleEndianEngine())
	require.Error(t, err)
}
