//go:build linux || darwin || freebsd

package temparena

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// MmapProcs backs pages with anonymous private mappings outside the Go heap.
// Releasing a page unmaps it, so Reset and Release return overflow memory
// to the operating system immediately.
type MmapProcs struct{}

// Acquire maps size bytes of zero-filled, page-aligned memory.
func (MmapProcs) Acquire(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("mmap %d bytes: %w", size, ErrNegativeSize)
	}
	b, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("mmap %d bytes: %w", size, err)
	}
	return b, nil
}

// Release unmaps a block previously returned by Acquire.
func (MmapProcs) Release(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if err := unix.Munmap(b); err != nil {
		return fmt.Errorf("munmap %d bytes: %w", len(b), err)
	}
	return nil
}

// mmapSupported reports whether MmapProcs can acquire memory here.
const mmapSupported = true
