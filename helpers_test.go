package temparena

import (
	"errors"
	"unsafe"
)

var errBoom = errors.New("boom")

// countingProcs wraps HeapProcs and records every block it hands out so
// tests can check that each page is released exactly once.
type countingProcs struct {
	acquired   int
	released   int
	badRelease int
	sizes      []int
	live       map[*byte]int

	// failAt makes the n-th Acquire (1-based) and every later one fail; 0 never fails.
	failAt int
}

func newCountingProcs() *countingProcs {
	return &countingProcs{live: make(map[*byte]int)}
}

func (p *countingProcs) Acquire(size int) ([]byte, error) {
	if p.failAt > 0 && p.acquired+1 >= p.failAt {
		return nil, errBoom
	}
	b, err := HeapProcs{}.Acquire(size)
	if err != nil {
		return nil, err
	}
	p.acquired++
	p.sizes = append(p.sizes, size)
	p.live[unsafe.SliceData(b)] = size
	return b, nil
}

func (p *countingProcs) Release(b []byte) error {
	k := unsafe.SliceData(b)
	if _, ok := p.live[k]; !ok {
		p.badRelease++
		return errors.New("release of unknown block")
	}
	delete(p.live, k)
	p.released++
	return nil
}

func addrOf(b []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))
}

func unsafePointer[T any](s []T) unsafe.Pointer {
	return unsafe.Pointer(unsafe.SliceData(s))
}
