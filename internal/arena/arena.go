// Package arena provides per-call scratch pools for the bosm block codec.
//
// Encoding and decoding a single block allocates a handful of bounded,
// O(block size) scratch slices: the collapsed delta array, the left/right
// outlier index lists, the outlier bitmap, and the run-length side table.
// None of these outlive the encode or decode call that created them, so
// they are pooled with sync.Pool instead of allocated fresh per block,
// one typed-slice pool per scratch element type.
package arena

import "sync"

// RepeatRun is a single collapsed-run entry: the run starts at Start in
// the uncollapsed delta sequence and covers Length equal deltas.
type RepeatRun struct {
	Start  uint32
	Length uint32
}

var (
	u32Pool = sync.Pool{
		New: func() any { return &[]uint32{} },
	}
	bytePool = sync.Pool{
		New: func() any { return &[]byte{} },
	}
	runPool = sync.Pool{
		New: func() any { return &[]RepeatRun{} },
	}
)

// GetUint32Slice retrieves a uint32 scratch slice of exactly length size.
//
// The caller must call the returned cleanup function, typically with
// defer, to return the backing array to the pool.
func GetUint32Slice(size int) ([]uint32, func()) {
	ptr, _ := u32Pool.Get().(*[]uint32)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]uint32, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { u32Pool.Put(ptr) }
}

// GetByteSlice retrieves a byte scratch slice of exactly length size.
func GetByteSlice(size int) ([]byte, func()) {
	ptr, _ := bytePool.Get().(*[]byte)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]byte, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { bytePool.Put(ptr) }
}

// GetRunSlice retrieves a RepeatRun scratch slice with length 0 and at
// least the given capacity, growing it via append as runs are discovered.
func GetRunSlice(capacity int) ([]RepeatRun, func()) {
	ptr, _ := runPool.Get().(*[]RepeatRun)
	slice := (*ptr)[:0]

	if cap(slice) < capacity {
		slice = make([]RepeatRun, 0, capacity)
	}
	*ptr = slice

	return slice, func() { runPool.Put(ptr) }
}
