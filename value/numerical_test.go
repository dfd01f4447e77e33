package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robcaulk/columnar/format"
)

func TestObserver_HomogeneousU64(t *testing.T) {
	var o Observer
	o.Observe(FromU64(2))
	o.Observe(FromU64(3))
	o.Observe(FromU64(math.MaxUint64))

	require.Equal(t, format.CategoryU64, o.Category())
}

func TestObserver_AnyI64PromotesToI64(t *testing.T) {
	var o Observer
	o.Observe(FromU64(2))
	o.Observe(FromI64(-5))

	require.Equal(t, format.CategoryI64, o.Category())
}

func TestObserver_MixedSignedUnsignedExtremesWidenToF64(t *testing.T) {
	var o Observer
	o.Observe(FromI64(-1))
	o.Observe(FromU64(math.MaxUint64))

	require.Equal(t, format.CategoryF64, o.Category())
}

func TestObserver_AnyF64PromotesToF64(t *testing.T) {
	var o Observer
	o.Observe(FromU64(2))
	o.Observe(FromI64(3))
	o.Observe(FromF64(1.2))

	require.Equal(t, format.CategoryF64, o.Category())
}

func TestObserver_EmptyDefaultsToU64(t *testing.T) {
	var o Observer
	require.Equal(t, format.CategoryU64, o.Category())
}

func TestNumerical_AsF64Exactness(t *testing.T) {
	exact, isExact := FromU64(1 << 40).AsF64()
	require.InDelta(t, float64(1<<40), exact, 0)
	require.True(t, isExact)

	_, isExact = FromU64(math.MaxUint64).AsF64()
	require.False(t, isExact)
}

func TestNumerical_AsI64AndAsU64(t *testing.T) {
	v, ok := FromU64(42).AsI64()
	require.True(t, ok)
	require.EqualValues(t, 42, v)

	_, ok = FromU64(math.MaxUint64).AsI64()
	require.False(t, ok)

	_, ok = FromI64(-1).AsU64()
	require.False(t, ok)

	u, ok := FromF64(7.0).AsU64()
	require.True(t, ok)
	require.EqualValues(t, 7, u)

	_, ok = FromF64(7.5).AsU64()
	require.False(t, ok)
}

func TestCoerce(t *testing.T) {
	require.Equal(t, FromI64(5), Coerce(FromU64(5), format.CategoryI64))
	require.Equal(t, FromU64(5), Coerce(FromI64(5), format.CategoryU64))
	f := Coerce(FromI64(5), format.CategoryF64)
	require.Equal(t, KindF64, f.Kind)
	require.Equal(t, 5.0, f.F64)
}
