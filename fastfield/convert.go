package fastfield

import "math"

// ZigzagEncode maps a signed integer to an unsigned one so that small
// magnitudes (positive or negative) pack into few bits: 0,-1,1,-2,2,...
// become 0,1,2,3,4,....
func ZigzagEncode(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

// ZigzagDecode inverts ZigzagEncode.
func ZigzagDecode(v uint64) int64 {
	return int64(v>>1) ^ -int64(v&1)
}

// Float64Bits reinterprets a float64 as its raw IEEE-754 bit pattern, for
// lossless storage through the same uint64-based codec used for integers.
func Float64Bits(v float64) uint64 { return math.Float64bits(v) }

// BitsToFloat64 inverts Float64Bits.
func BitsToFloat64(bits uint64) float64 { return math.Float64frombits(bits) }

// BoolToBits maps a bool to 0 or 1.
func BoolToBits(b bool) uint64 {
	if b {
		return 1
	}

	return 0
}

// BitsToBool inverts BoolToBits: any nonzero value is true.
func BitsToBool(bits uint64) bool { return bits != 0 }
