package temparena

import (
	"fmt"
	"log/slog"
	"math"
	"unsafe"
)

// DefaultCapacity is the base page size used when NewArena gets capacity <= 0 (64 MiB).
const DefaultCapacity = 64 << 20

// Alignment is the granularity of every allocation: the platform word size.
const Alignment = unsafe.Sizeof(uintptr(0))

// Arena is a bump allocator over a fixed base page. When the active page is
// exhausted a new overflow page is chained on; Reset releases the overflow
// pages and rewinds the base page. Not goroutine-safe. Use SafeArena or one
// arena per goroutine for concurrent access.
type Arena struct {
	procs    Procs
	base     *page
	active   *page
	capacity int // configured page size; base page is always this size
	overflow pageChain
	tracking bool
	info     Info
	log      *slog.Logger
}

// Option configures an Arena on creation.
type Option func(*Arena)

// WithProcs sets the backing-memory procedures (HeapProcs by default).
func WithProcs(p Procs) Option {
	return func(a *Arena) {
		if p != nil {
			a.procs = p
		}
	}
}

// WithTracking enables the allocation tracker from the start.
func WithTracking(on bool) Option {
	return func(a *Arena) {
		a.tracking = on
	}
}

// WithLogger sets the logger used for growth, reset and release events.
func WithLogger(l *slog.Logger) Option {
	return func(a *Arena) {
		if l != nil {
			a.log = l
		}
	}
}

// NewArena creates an Arena whose base page holds capacity bytes.
// If capacity <= 0, DefaultCapacity is used. It panics if the base page
// cannot be acquired; use TryNewArena to handle that case.
func NewArena(capacity int, opts ...Option) *Arena {
	a, err := TryNewArena(capacity, opts...)
	if err != nil {
		panic(err)
	}
	return a
}

// TryNewArena is NewArena with an explicit error for a failed base page.
func TryNewArena(capacity int, opts ...Option) (*Arena, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	a := &Arena{
		procs:    HeapProcs{},
		capacity: capacity,
		log:      slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(a)
	}
	buf, err := a.acquire(capacity)
	if err != nil {
		return nil, err
	}
	a.base = &page{buf: buf}
	a.active = a.base
	return a, nil
}

// SetProcs replaces both backing-memory procedures. Pages already handed
// out are released through whatever procedures are installed at release
// time; swapping while pages are live is the caller's responsibility.
func (a *Arena) SetProcs(p Procs) {
	if p == nil {
		p = HeapProcs{}
	}
	a.procs = p
}

// SetAcquireFunc replaces only the acquire procedure.
func (a *Arena) SetAcquireFunc(fn func(size int) ([]byte, error)) {
	pf := splitProcs(a.procs)
	pf.AcquireFunc = fn
	a.procs = pf
}

// SetReleaseFunc replaces only the release procedure.
func (a *Arena) SetReleaseFunc(fn func(b []byte) error) {
	pf := splitProcs(a.procs)
	pf.ReleaseFunc = fn
	a.procs = pf
}

// AllocBytes returns n bytes starting at the active page's cursor. The
// length is n and the capacity is n rounded up to Alignment; a zero-byte
// request still consumes one alignment unit. The memory is NOT zeroed.
// The slice is valid until the next Reset or Release.
//
// AllocBytes panics if n is negative or a new page cannot be acquired.
func (a *Arena) AllocBytes(n int) []byte {
	b, err := a.TryAllocBytes(n)
	if err != nil {
		panic(err)
	}
	return b
}

// TryAllocBytes is AllocBytes with an explicit error instead of a panic.
func (a *Arena) TryAllocBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrNegativeSize
	}
	if a.base == nil {
		return nil, ErrReleased
	}
	size, ok := alignSize(n)
	if !ok {
		return nil, fmt.Errorf("request %d bytes: %w", n, ErrOutOfMemory)
	}

	// Fast path: fits in the active page
	p := a.active
	if p.remaining() < size {
		var err error
		if p, err = a.grow(size); err != nil {
			return nil, err
		}
	}
	if a.tracking {
		a.info.record(n, size)
	}
	return p.bump(n, size), nil
}

// EnsureCapacity makes sure the active page has at least n free bytes,
// chaining a new overflow page if it does not. It panics if n is negative.
func (a *Arena) EnsureCapacity(n int) {
	a.panicIfReleased()
	if n < 0 {
		panic(ErrNegativeSize)
	}
	size, ok := alignSize(n)
	if !ok {
		panic(fmt.Errorf("ensure %d bytes: %w", n, ErrOutOfMemory))
	}
	if a.active.remaining() < size {
		if _, err := a.grow(size); err != nil {
			panic(err)
		}
	}
}

// Free does nothing. Memory is reclaimed only in bulk by Reset or Release;
// Free exists so the arena satisfies deallocation contracts.
func (a *Arena) Free([]byte) {}

// Realloc returns a fresh allocation of newSize bytes holding the first
// min(len(old), newSize) bytes of old. The old block is not reclaimed.
func (a *Arena) Realloc(old []byte, newSize int) []byte {
	b := a.AllocBytes(newSize)
	copy(b, old)
	return b
}

// Reset releases every overflow page, rewinds the base page to its start
// and, if tracking is on, zeroes the allocation info. Every slice, pointer
// and container obtained from the arena before the call is invalid after it.
func (a *Arena) Reset() {
	a.panicIfReleased()
	released := a.overflow.n
	a.overflow.drain(a.releasePage)
	a.base.off = 0
	a.active = a.base
	if a.tracking {
		a.info = Info{}
	}
	if released > 0 {
		a.log.Debug("arena reset", "overflow_pages_released", released, "capacity", a.capacity)
	}
}

// Release returns all pages to the procedures and makes the arena unusable.
// Any subsequent allocation panics. Calling Release again is a no-op.
func (a *Arena) Release() {
	if a.base == nil {
		return
	}
	released := a.overflow.n
	a.overflow.drain(a.releasePage)
	a.releasePage(a.base)
	a.base = nil
	a.active = nil
	a.info = Info{}
	a.log.Debug("arena released", "overflow_pages_released", released, "capacity", a.capacity)
}

// grow chains a new overflow page able to hold size bytes and makes it the
// active page. Oversized requests get a page of size+capacity so that later
// small allocations still have room.
func (a *Arena) grow(size int) (*page, error) {
	pageSize := a.capacity
	if size > a.capacity {
		if size > math.MaxInt-a.capacity {
			return nil, fmt.Errorf("overflow page for %d bytes: %w", size, ErrOutOfMemory)
		}
		pageSize = size + a.capacity
	}
	buf, err := a.acquire(pageSize)
	if err != nil {
		return nil, err
	}
	p := &page{buf: buf}
	a.overflow.push(p)
	a.active = p
	if a.tracking {
		a.info.OverflowPagesAllocated++
	}
	a.log.Debug("arena grow", "request", size, "page_size", pageSize, "overflow_pages", a.overflow.n)
	return p, nil
}

func (a *Arena) acquire(size int) ([]byte, error) {
	buf, err := a.procs.Acquire(size)
	if err != nil {
		return nil, fmt.Errorf("acquire %d bytes: %w: %w", size, ErrOutOfMemory, err)
	}
	if len(buf) < size {
		return nil, fmt.Errorf("acquire %d bytes: got %d: %w", size, len(buf), ErrOutOfMemory)
	}
	return buf[:size], nil
}

func (a *Arena) releasePage(p *page) {
	if err := a.procs.Release(p.buf); err != nil {
		a.log.Warn("arena page release failed", "size", len(p.buf), "err", err)
	}
	p.buf = nil
	p.off = 0
}

// panicIfReleased panics if the arena has been released.
func (a *Arena) panicIfReleased() {
	if a.base == nil {
		panic(ErrReleased)
	}
}

// alignSize rounds n up to Alignment; zero rounds up to one unit.
func alignSize(n int) (int, bool) {
	if n == 0 {
		return int(Alignment), true
	}
	if n > math.MaxInt-int(Alignment) {
		return 0, false
	}
	return int(alignPtr(uintptr(n))), true
}

// alignPtr aligns the offset up to pointer size alignment.
func alignPtr(off uintptr) uintptr {
	const mask = Alignment - 1
	return (off + mask) & ^mask
}
