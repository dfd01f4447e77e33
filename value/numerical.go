// Package value implements the tagged numerical value and the per-column
// type inference that unifies heterogeneous numerical writes into a single
// stored category, following the promotion lattice: a column that only ever
// sees unsigned values stays U64, one that sees any signed value (and no
// unsigned value exceeding the signed range) becomes I64, and one that sees
// either a floating value or both signed and out-of-range-unsigned values
// widens to F64.
package value

import (
	"math"

	"github.com/robcaulk/columnar/format"
)

// Kind tags which arm of the Numerical union is populated.
type Kind uint8

const (
	KindU64 Kind = iota
	KindI64
	KindF64
)

func (k Kind) String() string {
	switch k {
	case KindU64:
		return "U64"
	case KindI64:
		return "I64"
	case KindF64:
		return "F64"
	default:
		return "Unknown"
	}
}

// Numerical is a tagged union over the three wire-level numerical
// representations. Only the field named by Kind is meaningful.
type Numerical struct {
	Kind Kind
	U64  uint64
	I64  int64
	F64  float64
}

// FromU64 builds a Numerical holding an unsigned value.
func FromU64(v uint64) Numerical { return Numerical{Kind: KindU64, U64: v} }

// FromI64 builds a Numerical holding a signed value.
func FromI64(v int64) Numerical { return Numerical{Kind: KindI64, I64: v} }

// FromF64 builds a Numerical holding a floating value.
func FromF64(v float64) Numerical { return Numerical{Kind: KindF64, F64: v} }

// exactFloat64MaxInt is the largest magnitude an integer can have and still
// be represented exactly by a float64 mantissa (2^53).
const exactFloat64MaxInt = 1 << 53

// AsF64 widens the value to float64, and reports whether the conversion is
// exact (i.e. no precision was lost).
func (n Numerical) AsF64() (result float64, exact bool) {
	switch n.Kind {
	case KindF64:
		return n.F64, true
	case KindU64:
		return float64(n.U64), n.U64 <= exactFloat64MaxInt
	case KindI64:
		abs := n.I64
		if abs < 0 {
			abs = -abs
		}

		return float64(n.I64), int64(abs) <= exactFloat64MaxInt
	default:
		return 0, false
	}
}

// AsI64 narrows the value to int64. ok is false if n holds a U64 value that
// overflows int64, or a non-integral F64.
func (n Numerical) AsI64() (result int64, ok bool) {
	switch n.Kind {
	case KindI64:
		return n.I64, true
	case KindU64:
		if n.U64 > math.MaxInt64 {
			return 0, false
		}

		return int64(n.U64), true
	case KindF64:
		if n.F64 != math.Trunc(n.F64) || n.F64 < math.MinInt64 || n.F64 > math.MaxInt64 {
			return 0, false
		}

		return int64(n.F64), true
	default:
		return 0, false
	}
}

// AsU64 narrows the value to uint64. ok is false if n holds a negative I64
// or F64, or a non-integral F64.
func (n Numerical) AsU64() (result uint64, ok bool) {
	switch n.Kind {
	case KindU64:
		return n.U64, true
	case KindI64:
		if n.I64 < 0 {
			return 0, false
		}

		return uint64(n.I64), true
	case KindF64:
		if n.F64 != math.Trunc(n.F64) || n.F64 < 0 || n.F64 > math.MaxUint64 {
			return 0, false
		}

		return uint64(n.F64), true
	default:
		return 0, false
	}
}

// Observer accumulates the Kind of every Numerical recorded for one column
// and resolves the final stored Category once all values have been seen.
// The zero value is ready to use.
type Observer struct {
	sawF64            bool
	sawI64            bool
	sawU64AboveI64Max bool
	count             int
}

// Observe records one value's contribution to the promotion decision.
func (o *Observer) Observe(n Numerical) {
	o.count++

	switch n.Kind {
	case KindF64:
		o.sawF64 = true
	case KindI64:
		o.sawI64 = true
	case KindU64:
		if n.U64 > math.MaxInt64 {
			o.sawU64AboveI64Max = true
		}
	}
}

// Category resolves the stored numerical category per the promotion
// lattice. An Observer that has seen no values resolves to U64, matching an
// empty homogeneous-unsigned column.
func (o *Observer) Category() format.Category {
	switch {
	case o.sawF64:
		return format.CategoryF64
	case o.sawI64 && o.sawU64AboveI64Max:
		return format.CategoryF64
	case o.sawI64:
		return format.CategoryI64
	default:
		return format.CategoryU64
	}
}

// Coerce converts n into the representation required by cat. It never
// fails: U64/I64 targets always succeed by construction of Category
// (Observer never resolves to an integer category that couldn't represent
// every observed value), and F64 targets always succeed via AsF64 (possibly
// with precision loss, matching the column-wide widening policy).
func Coerce(n Numerical, cat format.Category) Numerical {
	switch cat {
	case format.CategoryU64:
		v, _ := n.AsU64()
		return FromU64(v)
	case format.CategoryI64, format.CategoryDateTime:
		v, _ := n.AsI64()
		return FromI64(v)
	case format.CategoryF64:
		v, _ := n.AsF64()
		return FromF64(v)
	default:
		return n
	}
}
