//go:build !(linux || darwin || freebsd)

package temparena

// MmapProcs is unavailable on this platform; Acquire always fails.
type MmapProcs struct{}

func (MmapProcs) Acquire(int) ([]byte, error) { return nil, ErrMmapUnsupported }

func (MmapProcs) Release([]byte) error { return nil }

const mmapSupported = false
