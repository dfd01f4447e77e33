package nullindex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequired_ValueIndex(t *testing.T) {
	r := Required{NumRows: 5}

	idx, ok := r.ValueIndex(3)
	require.True(t, ok)
	require.Equal(t, 3, idx)

	_, ok = r.ValueIndex(5)
	require.False(t, ok)

	require.Nil(t, r.Encode())
}

func TestOptional_PresentAndValueIndex(t *testing.T) {
	// rows: present at 1 and 3 (matches bool optional S2 example)
	present := []bool{false, true, false, true, false}
	o := BuildOptional(present)

	require.False(t, o.Present(0))
	require.True(t, o.Present(1))
	require.True(t, o.Present(3))
	require.Equal(t, 2, o.NumPresent())

	idx, ok := o.ValueIndex(1)
	require.True(t, ok)
	require.Equal(t, 0, idx)

	idx, ok = o.ValueIndex(3)
	require.True(t, ok)
	require.Equal(t, 1, idx)

	_, ok = o.ValueIndex(2)
	require.False(t, ok)
}

func TestOptional_EncodeParseRoundTrip(t *testing.T) {
	present := make([]bool, 200)
	for i := range present {
		present[i] = i%3 == 0
	}
	o := BuildOptional(present)

	data := o.Encode()
	got, err := ParseOptional(data, len(present))
	require.NoError(t, err)

	for i := range present {
		require.Equal(t, o.Present(i), got.Present(i), "row %d", i)
	}
	require.Equal(t, o.NumPresent(), got.NumPresent())
}

func TestOptional_ParseRejectsShortInput(t *testing.T) {
	_, err := ParseOptional(nil, 100)
	require.Error(t, err)
}

func TestMultivalued_ValuesForRow(t *testing.T) {
	// counts per row for num_rows=7: row 0 empty, rows 1-5 one value each,
	// row 6 two values (7 values in all)
	counts := []int{0, 1, 1, 1, 1, 1, 2}
	m := BuildMultivalued(counts)

	require.Equal(t, 7, m.NumValues())

	start, end, ok := m.ValuesForRow(0)
	require.True(t, ok)
	require.Equal(t, 0, start)
	require.Equal(t, 0, end)

	start, end, ok = m.ValuesForRow(6)
	require.True(t, ok)
	require.Equal(t, 5, start)
	require.Equal(t, 7, end)

	_, _, ok = m.ValuesForRow(7)
	require.False(t, ok)
}

func TestMultivalued_EncodeParseRoundTrip(t *testing.T) {
	counts := []int{3, 0, 5, 2, 1, 0, 9}
	m := BuildMultivalued(counts)

	data := m.Encode()
	got, err := ParseMultivalued(data, len(counts))
	require.NoError(t, err)

	for row := range counts {
		ws, we, ok := m.ValuesForRow(row)
		require.True(t, ok)
		gs, ge, ok := got.ValuesForRow(row)
		require.True(t, ok)
		require.Equal(t, ws, gs)
		require.Equal(t, we, ge)
	}
}

func TestMultivalued_AllZeroCounts(t *testing.T) {
	counts := []int{0, 0, 0}
	m := BuildMultivalued(counts)
	require.Equal(t, 0, m.NumValues())

	data := m.Encode()
	got, err := ParseMultivalued(data, len(counts))
	require.NoError(t, err)
	require.Equal(t, 0, got.NumValues())
}
