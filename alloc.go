package temparena

import (
	"fmt"
	"math"
	"runtime"
	"unsafe"
)

// Arena pages are plain bytes to the garbage collector, whichever Procs
// supplied them: a pointer stored only in arena memory does not keep its
// target alive. The typed helpers below panic with ErrPointerType for any
// T that holds Go pointers (pointers, strings, slices, maps, chans, funcs,
// interfaces).

// Alloc returns a pointer to a T stored inside the arena with zeroed memory.
// The returned pointer is valid until the next Reset or Release.
func Alloc[T any](a *Arena) *T {
	mustBePointerFree[T]()
	var zero T
	b := a.AllocBytes(int(unsafe.Sizeof(zero)))
	clear(b)
	return (*T)(unsafe.Pointer(unsafe.SliceData(b)))
}

// AllocZeroed is identical to Alloc - provided for API consistency.
func AllocZeroed[T any](a *Arena) *T {
	return Alloc[T](a)
}

// AllocUninitialized returns a *T located in the arena without zeroing memory.
// The contents are whatever the page held before; initialize before reading.
func AllocUninitialized[T any](a *Arena) *T {
	mustBePointerFree[T]()
	var zero T
	b := a.AllocBytes(int(unsafe.Sizeof(zero)))
	return (*T)(unsafe.Pointer(unsafe.SliceData(b)))
}

// AllocSlice allocates a slice of n elements of type T inside the arena.
// The slice elements are not initialized.
// Returns nil if n <= 0. It panics with ErrOutOfMemory if n elements
// would not fit in an int.
func AllocSlice[T any](a *Arena, n int) []T {
	mustBePointerFree[T]()
	if n <= 0 {
		return nil
	}
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size > 0 && n > math.MaxInt/size {
		panic(fmt.Errorf("allocate %d elements of %d bytes: %w", n, size, ErrOutOfMemory))
	}
	b := a.AllocBytes(size * n)
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n)
}

// AllocSliceZeroed allocates a slice of n elements of type T with zeroed memory.
func AllocSliceZeroed[T any](a *Arena, n int) []T {
	s := AllocSlice[T](a, n)
	clear(s)
	return s
}

// PtrAndKeepAlive returns t and calls runtime.KeepAlive on the arena.
// This is useful to prevent the arena from being garbage collected
// while the pointer is still in use in unsafe code.
func PtrAndKeepAlive[T any](a *Arena, t *T) *T {
	runtime.KeepAlive(a)
	return t
}
