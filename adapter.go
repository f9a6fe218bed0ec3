package temparena

import (
	"fmt"
	"math"
	"unsafe"
)

// ElementAllocator is the storage contract the containers in this package
// are written against.
type ElementAllocator[T any] interface {
	Allocate(count int) []T
	Deallocate(s []T)
}

// BulkReclaimer is storage that can only be reclaimed as a whole. Containers
// backed by it never return memory individually; Deallocate is a no-op and
// the owner reclaims everything with Reset or Release.
type BulkReclaimer interface {
	Reset()
	Release()
}

// Allocator routes element storage for generic containers to an Arena.
// It holds no state besides the arena, so copies are interchangeable and
// Rebind produces an equivalent allocator for another element type.
//
// Any container built on an Allocator must be dropped before the arena is
// Reset or Released. Reading its elements afterwards reads pages that have
// been released or handed out again.
type Allocator[T any] struct {
	a *Arena
}

// NewAllocator returns an Allocator for T backed by a. It panics with
// ErrPointerType if T holds Go pointers: arena pages are never scanned by
// the garbage collector, whatever Procs supplied them.
func NewAllocator[T any](a *Arena) Allocator[T] {
	mustBePointerFree[T]()
	return Allocator[T]{a: a}
}

// Rebind returns an Allocator for U on the same arena as al.
func Rebind[U, T any](al Allocator[T]) Allocator[U] {
	return NewAllocator[U](al.a)
}

// Allocate returns uninitialized storage for count elements, or nil when
// count <= 0.
func (al Allocator[T]) Allocate(count int) []T {
	if count > al.MaxSize() {
		panic(fmt.Errorf("allocate %d elements: %w", count, ErrOutOfMemory))
	}
	return AllocSlice[T](al.a, count)
}

// Deallocate does nothing; storage is reclaimed in bulk by the arena.
func (al Allocator[T]) Deallocate([]T) {}

// MaxSize is the largest element count Allocate can be asked for.
func (al Allocator[T]) MaxSize() int {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		return math.MaxInt
	}
	return math.MaxInt / size
}

// Arena returns the arena backing al.
func (al Allocator[T]) Arena() *Arena {
	return al.a
}

// Reclaimer exposes the only way storage handed out by al is reclaimed.
func (al Allocator[T]) Reclaimer() BulkReclaimer {
	return al.a
}
