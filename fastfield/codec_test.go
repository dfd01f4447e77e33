package fastfield

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robcaulk/columnar/endian"
)

func TestEncoderReader_RoundTrip(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	values := []uint64{100, 103, 99, 150, 100}

	enc := Build(values)
	data := enc.Encode(engine)

	r, err := Parse(data, len(values), engine)
	require.NoError(t, err)
	require.Equal(t, len(values), r.Len())

	for i, want := range values {
		got, ok := r.At(i)
		require.True(t, ok)
		require.Equal(t, want, got)
	}

	_, ok := r.At(len(values))
	require.False(t, ok)
}

func TestEncoderReader_ConstantColumnUsesZeroWidth(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	values := []uint64{7, 7, 7, 7}

	enc := Build(values)
	require.Equal(t, 0, enc.width)

	data := enc.Encode(engine)
	r, err := Parse(data, len(values), engine)
	require.NoError(t, err)

	for i := range values {
		got, ok := r.At(i)
		require.True(t, ok)
		require.EqualValues(t, 7, got)
	}
}

func TestEncoderReader_Empty(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	enc := Build(nil)
	data := enc.Encode(engine)

	r, err := Parse(data, 0, engine)
	require.NoError(t, err)
	require.Equal(t, 0, r.Len())
}

func TestZigzagRoundTrip(t *testing.T) {
	for _, v := range []int64{0, -1, 1, -2, 2, math.MinInt64, math.MaxInt64} {
		require.Equal(t, v, ZigzagDecode(ZigzagEncode(v)))
	}
}

func TestFloat64BitsRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 1.5, -1.5, math.Inf(1), math.Inf(-1)} {
		require.Equal(t, v, BitsToFloat64(Float64Bits(v)))
	}
}

func TestBoolBitsRoundTrip(t *testing.T) {
	require.True(t, BitsToBool(BoolToBits(true)))
	require.False(t, BitsToBool(BoolToBits(false)))
}

func TestEncoderReader_SignedViaZigzag(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	signed := []int64{-5, 3, -5, 0, 100}

	values := make([]uint64, len(signed))
	for i, v := range signed {
		values[i] = ZigzagEncode(v)
	}

	enc := Build(values)
	data := enc.Encode(engine)
	r, err := Parse(data, len(values), engine)
	require.NoError(t, err)

	for i, want := range signed {
		raw, ok := r.At(i)
		require.True(t, ok)
		require.Equal(t, want, ZigzagDecode(raw))
	}
}
