package temparena

// Info is a snapshot of the allocation tracker.
//
// MaxAllocation is the largest size requested by a caller, before
// alignment. TotalAllocatedBytes sums aligned sizes, so it matches the
// bytes actually consumed from pages. AverageAllocation is derived from the
// two and is 0 when no allocation has been recorded.
type Info struct {
	AllocationCount        int `json:"allocation_count"`
	MaxAllocation          int `json:"max_allocation"`
	AverageAllocation      int `json:"average_allocation"`
	TotalAllocatedBytes    int `json:"total_allocated_bytes"`
	OverflowPagesAllocated int `json:"overflow_pages_allocated"`
}

func (i *Info) record(requested, aligned int) {
	i.AllocationCount++
	if requested > i.MaxAllocation {
		i.MaxAllocation = requested
	}
	i.TotalAllocatedBytes += aligned
}

// SetTracking turns the allocation tracker on or off. Counters are kept
// while tracking is off but are neither updated nor reported.
func (a *Arena) SetTracking(on bool) {
	a.tracking = on
}

// Tracking reports whether the allocation tracker is on.
func (a *Arena) Tracking() bool {
	return a.tracking
}

// Info returns the tracker snapshot for the current epoch, or a zero Info
// when tracking is off.
func (a *Arena) Info() Info {
	if !a.tracking {
		return Info{}
	}
	info := a.info
	if info.AllocationCount > 0 {
		info.AverageAllocation = info.TotalAllocatedBytes / info.AllocationCount
	}
	return info
}
