package temparena

import "errors"

var (
	// ErrOutOfMemory indicates the installed Procs could not supply a page.
	ErrOutOfMemory = errors.New("arena: out of memory")

	// ErrReleased indicates an operation on an arena after Release().
	ErrReleased = errors.New("arena: use after Release()")

	// ErrNegativeSize indicates a negative allocation request.
	ErrNegativeSize = errors.New("arena: negative allocation size")

	// ErrPointerType indicates a Go type holding pointers was requested from
	// arena memory, which the garbage collector never scans.
	ErrPointerType = errors.New("arena: type contains Go pointers")

	// ErrMmapUnsupported is returned by MmapProcs on platforms without anonymous mappings.
	ErrMmapUnsupported = errors.New("arena: mmap procs unsupported on this platform")
)
