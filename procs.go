package temparena

import "unsafe"

// Procs is the backing-memory capability of an arena. Every page the arena
// hands out memory from is obtained through Acquire and returned through
// Release; the arena never touches the heap directly.
//
// Acquire must return a block of exactly size bytes whose first byte is
// aligned to Alignment, or an error. Release receives the exact slice
// Acquire returned.
type Procs interface {
	Acquire(size int) ([]byte, error)
	Release(b []byte) error
}

// HeapProcs acquires pages from the Go heap. Release is a no-op: the page
// becomes garbage once the arena drops it.
type HeapProcs struct{}

// Acquire returns a word-aligned block of size bytes from the Go heap.
func (HeapProcs) Acquire(size int) ([]byte, error) {
	if size < 0 {
		return nil, ErrNegativeSize
	}
	buf := make([]byte, size+int(Alignment))
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
	shift := int(alignPtr(addr) - addr)
	return buf[shift : size+shift : size+shift], nil
}

// Release does nothing; the garbage collector reclaims the block.
func (HeapProcs) Release([]byte) error { return nil }

// ProcFuncs adapts a pair of functions to Procs so that acquire and release
// can be swapped independently. A nil field falls back to HeapProcs.
type ProcFuncs struct {
	AcquireFunc func(size int) ([]byte, error)
	ReleaseFunc func(b []byte) error
}

func (p ProcFuncs) Acquire(size int) ([]byte, error) {
	if p.AcquireFunc == nil {
		return HeapProcs{}.Acquire(size)
	}
	return p.AcquireFunc(size)
}

func (p ProcFuncs) Release(b []byte) error {
	if p.ReleaseFunc == nil {
		return nil
	}
	return p.ReleaseFunc(b)
}

// splitProcs returns p as a ProcFuncs, wrapping the methods of any other
// Procs implementation.
func splitProcs(p Procs) ProcFuncs {
	if pf, ok := p.(ProcFuncs); ok {
		return pf
	}
	return ProcFuncs{AcquireFunc: p.Acquire, ReleaseFunc: p.Release}
}
