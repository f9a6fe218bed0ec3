package temparena

// SizeInUse returns the total number of bytes currently allocated in the arena.
// This includes internal fragmentation due to alignment.
func (a *Arena) SizeInUse() int {
	if a.base == nil {
		return 0
	}
	sum := a.base.off
	a.overflow.each(func(p *page) { sum += p.off })
	return sum
}

// NumPages returns the number of pages currently held: the base page plus
// the overflow pages of the current epoch.
func (a *Arena) NumPages() int {
	if a.base == nil {
		return 0
	}
	return 1 + a.overflow.n
}

// Capacity returns the total capacity (in bytes) of all pages in the arena.
func (a *Arena) Capacity() int {
	if a.base == nil {
		return 0
	}
	sum := len(a.base.buf)
	a.overflow.each(func(p *page) { sum += len(p.buf) })
	return sum
}

// Utilization returns the ratio of bytes in use to total capacity (0.0 to 1.0).
// Returns 0.0 if the arena has no capacity.
func (a *Arena) Utilization() float64 {
	capacity := a.Capacity()
	if capacity == 0 {
		return 0
	}
	return float64(a.SizeInUse()) / float64(capacity)
}

// PageSize returns the configured page capacity, which is also the size of
// the base page.
func (a *Arena) PageSize() int {
	return a.capacity
}

// Metrics returns a snapshot of arena statistics.
func (a *Arena) Metrics() ArenaMetrics {
	return ArenaMetrics{
		SizeInUse:   a.SizeInUse(),
		Capacity:    a.Capacity(),
		NumPages:    a.NumPages(),
		PageSize:    a.PageSize(),
		Utilization: a.Utilization(),
	}
}

// ArenaMetrics contains statistical information about an arena.
type ArenaMetrics struct {
	SizeInUse   int     `json:"size_in_use"` // Bytes currently allocated
	Capacity    int     `json:"capacity"`    // Total capacity in bytes
	NumPages    int     `json:"num_pages"`   // Base page plus overflow pages
	PageSize    int     `json:"page_size"`   // Configured page capacity
	Utilization float64 `json:"utilization"` // Ratio of used to total capacity (0.0-1.0)
}

// Thread-safe metrics for SafeArena

// SizeInUse thread-safely returns the total number of bytes currently allocated.
func (s *SafeArena) SizeInUse() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.SizeInUse()
}

// NumPages thread-safely returns the number of pages currently held.
func (s *SafeArena) NumPages() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.NumPages()
}

// Capacity thread-safely returns the total capacity of all pages.
func (s *SafeArena) Capacity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Capacity()
}

// Utilization thread-safely returns the ratio of bytes in use to total capacity.
func (s *SafeArena) Utilization() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Utilization()
}

// Info thread-safely returns the allocation tracker snapshot.
func (s *SafeArena) Info() Info {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Info()
}

// Metrics thread-safely returns a snapshot of arena statistics.
func (s *SafeArena) Metrics() ArenaMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Metrics()
}

// PageSize thread-safely returns the configured page capacity.
func (s *SafeArena) PageSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.PageSize()
}
