package pool

import "sync"

// uint64SlicePool is the one typed slice pool this module needs: every
// column category is reduced to a uint64 (zigzag ints, float64 bits, bool
// bits, or a dictionary ordinal) before it is bit-packed, so the writer's
// scratch buffers are always []uint64, never a per-category typed slice.
var uint64SlicePool = sync.Pool{
	New: func() any { return &[]uint64{} },
}

// GetUint64Slice retrieves and resizes a uint64 slice from the pool.
//
// The returned slice will have the exact length specified by the size
// parameter. If the pooled slice has insufficient capacity, a new slice is
// allocated. The caller must call the returned cleanup function (typically
// via defer) to return the slice to the pool.
//
// Used for the writer's transient raw-value and row-reordering scratch
// buffers during column serialization.
func GetUint64Slice(size int) ([]uint64, func()) {
	ptr, _ := uint64SlicePool.Get().(*[]uint64)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]uint64, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		*ptr = slice
	}

	return slice, func() { uint64SlicePool.Put(ptr) }
}
