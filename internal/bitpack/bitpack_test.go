package bitpack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriterReader_RoundTrip(t *testing.T) {
	w := NewWriter()
	defer w.Release()

	values := []uint64{1, 2, 3, 0x1F, 7, 0}
	width := 5

	for _, v := range values {
		w.WriteBits(v, width)
	}

	data := w.Finish()

	r := NewReader(data)
	for _, want := range values {
		got, ok := r.ReadBits(width)
		require.True(t, ok)
		require.Equal(t, want, got)
	}
}

func TestWriterReader_VaryingWidths(t *testing.T) {
	w := NewWriter()
	defer w.Release()

	type entry struct {
		value uint64
		width int
	}
	entries := []entry{
		{5, 3},
		{0, 1},
		{1, 1},
		{1000, 11},
		{0xFFFFFFFFFFFFFFFF, 64},
		{42, 7},
	}

	for _, e := range entries {
		w.WriteBits(e.value, e.width)
	}
	data := w.Finish()

	r := NewReader(data)
	for _, e := range entries {
		got, ok := r.ReadBits(e.width)
		require.True(t, ok)
		require.Equal(t, e.value, got)
	}
}

func TestExtract_RandomAccessMatchesSequentialRead(t *testing.T) {
	w := NewWriter()
	defer w.Release()

	const width = 9
	values := make([]uint64, 50)
	for i := range values {
		values[i] = uint64(i * 3 % (1 << width))
		w.WriteBits(values[i], width)
	}

	data := w.Finish()

	for i, want := range values {
		got := Extract(data, width, i)
		require.Equal(t, want, got, "index %d", i)
	}
}

func TestExtract_Width64IsByteAligned(t *testing.T) {
	w := NewWriter()
	defer w.Release()

	values := []uint64{1, 0xDEADBEEFCAFEBABE, 0, ^uint64(0)}
	for _, v := range values {
		w.WriteBits(v, 64)
	}
	data := w.Finish()

	for i, want := range values {
		require.Equal(t, want, Extract(data, 64, i))
	}
}

func TestByteLen(t *testing.T) {
	require.Equal(t, 0, ByteLen(0, 5))
	require.Equal(t, 1, ByteLen(1, 5))
	require.Equal(t, 2, ByteLen(3, 5))
}
