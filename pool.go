package temparena

import "sync"

// Pool recycles arenas between work cycles so each goroutine can own one
// without acquiring a fresh base page every time.
//
// Arenas the pool drops are left to the garbage collector without Release,
// so a Pool should only be used with procedures whose pages need no
// explicit release, such as HeapProcs.
type Pool struct {
	p sync.Pool
}

// NewPool creates a Pool whose arenas are built with NewArena(capacity, opts...).
func NewPool(capacity int, opts ...Option) *Pool {
	pl := &Pool{}
	pl.p.New = func() any {
		return NewArena(capacity, opts...)
	}
	return pl
}

// Get borrows an arena. It is empty: either new or reset by Put.
func (pl *Pool) Get() *Arena {
	return pl.p.Get().(*Arena)
}

// Put resets a and returns it to the pool. Nothing allocated from a may be
// used afterwards. Released arenas are dropped.
func (pl *Pool) Put(a *Arena) {
	if a == nil || a.base == nil {
		return
	}
	a.Reset()
	pl.p.Put(a)
}
