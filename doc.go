// Package temparena implements a bump-pointer arena with chained overflow
// pages for short-lived allocations inside a bounded work cycle.
//
// # Overview
//
// An arena hands out memory by advancing a cursor through a pre-sized base
// page. Nothing is freed individually: at the end of the cycle a single
// Reset reclaims everything. This is particularly useful for:
//
//   - Per-frame scratch memory in real-time loops
//   - Request-scoped allocations in servers
//   - Temporary strings and buffers with batch cleanup
//   - Reducing garbage collection pressure
//
// # Basic Usage
//
//	a := temparena.NewArena(0) // 64 MiB base page
//	defer a.Release()
//
//	for running {
//		buf := a.AllocBytes(1024)
//		name := a.Sprintf("entity-%d", id)
//		ptr := temparena.Alloc[Transform](a)
//		...
//		a.Reset() // end of frame
//	}
//
// # Overflow Pages
//
// When the active page cannot hold a request, a new page of the configured
// capacity is chained on (or request+capacity bytes when the request alone
// is larger). Slices handed out earlier stay valid. Reset releases the
// overflow pages and rewinds the base page, so a steady workload that fits
// the base page never touches the backing allocator after start-up. Info
// reports how many overflow pages an epoch needed, which is the signal to
// raise the capacity.
//
// # Backing Memory
//
// Pages come from a Procs implementation. HeapProcs (the default) uses the
// Go heap; MmapProcs uses anonymous mappings that Reset and Release return
// to the operating system. SetAcquireFunc and SetReleaseFunc swap either
// procedure on its own.
//
// # Failure
//
// NewArena, AllocBytes and the helpers built on them panic when backing
// memory cannot be acquired. TryNewArena and TryAllocBytes report the same
// failures as errors wrapping ErrOutOfMemory.
//
// # Containers
//
// Allocator adapts an arena to the ElementAllocator contract used by Vector
// and Map. Deallocate is a no-op: storage is reclaimed only in bulk, so a
// container must be dropped before its arena is Reset or Released.
//
// # Thread Safety
//
// Arena is not thread-safe. Share one through SafeArena, or give each
// goroutine its own, for example from a Pool.
//
// # Important Notes
//
//   - Allocated memory is only valid until the next Reset or Release
//   - No individual deallocation - use Reset() or Release() for bulk cleanup
//   - Memory is not zeroed unless using Alloc() or AllocSliceZeroed()
//   - Every allocation is aligned to the platform word size
//   - Types holding Go pointers cannot be stored in an arena; the garbage
//     collector does not scan arena pages
package temparena
