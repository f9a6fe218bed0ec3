package temparena

import (
	"hash/maphash"
	"math/bits"
)

const (
	slotEmpty uint8 = iota
	slotFull
	slotDeleted

	minMapSlots = 8
)

type mapSlot[K comparable, V any] struct {
	key   K
	val   V
	state uint8
}

// Map is an open-addressing hash map whose table comes from an arena
// Allocator. Deleted entries leave tombstones that are dropped on the next
// rehash. Keys and values must be free of Go pointers.
type Map[K comparable, V any] struct {
	al    Allocator[mapSlot[K, V]]
	seed  maphash.Seed
	slots []mapSlot[K, V]
	n     int // live entries
	used  int // live entries plus tombstones
}

// NewMap creates a Map with room for about hint entries, storing its table
// through al rebound to the map's slot type.
func NewMap[K comparable, V any, T any](al Allocator[T], hint int) *Map[K, V] {
	m := &Map[K, V]{
		al:   Rebind[mapSlot[K, V]](al),
		seed: maphash.MakeSeed(),
	}
	m.slots = m.newTable(tableSize(hint))
	return m
}

// tableSize is the power of two that keeps hint entries under 3/4 load.
func tableSize(hint int) int {
	need := max(hint*4/3+1, minMapSlots)
	return 1 << bits.Len(uint(need-1))
}

func (m *Map[K, V]) newTable(size int) []mapSlot[K, V] {
	slots := m.al.Allocate(size)
	clear(slots)
	return slots
}

func (m *Map[K, V]) hash(k K) uint64 {
	return maphash.Comparable(m.seed, k)
}

// find returns the slot index holding k, or -1.
func (m *Map[K, V]) find(k K) int {
	mask := len(m.slots) - 1
	for i := int(m.hash(k)) & mask; ; i = (i + 1) & mask {
		s := &m.slots[i]
		switch {
		case s.state == slotEmpty:
			return -1
		case s.state == slotFull && s.key == k:
			return i
		}
	}
}

// Put inserts or replaces the value for k.
func (m *Map[K, V]) Put(k K, v V) {
	if i := m.find(k); i >= 0 {
		m.slots[i].val = v
		return
	}
	if (m.used+1)*4 > len(m.slots)*3 {
		m.rehash()
	}
	mask := len(m.slots) - 1
	i := int(m.hash(k)) & mask
	for m.slots[i].state == slotFull {
		i = (i + 1) & mask
	}
	if m.slots[i].state == slotEmpty {
		m.used++
	}
	m.slots[i] = mapSlot[K, V]{key: k, val: v, state: slotFull}
	m.n++
}

// Get returns the value for k and whether it was present.
func (m *Map[K, V]) Get(k K) (V, bool) {
	if i := m.find(k); i >= 0 {
		return m.slots[i].val, true
	}
	var zero V
	return zero, false
}

// Delete removes k and reports whether it was present.
func (m *Map[K, V]) Delete(k K) bool {
	i := m.find(k)
	if i < 0 {
		return false
	}
	var zero mapSlot[K, V]
	m.slots[i] = zero
	m.slots[i].state = slotDeleted
	m.n--
	return true
}

func (m *Map[K, V]) Len() int { return m.n }

// Range calls fn for each entry until fn returns false. The map must not be
// modified during Range.
func (m *Map[K, V]) Range(fn func(K, V) bool) {
	for i := range m.slots {
		s := &m.slots[i]
		if s.state == slotFull && !fn(s.key, s.val) {
			return
		}
	}
}

// rehash moves live entries into a fresh table, doubling it unless most of
// the load was tombstones.
func (m *Map[K, V]) rehash() {
	size := len(m.slots)
	if (m.n+1)*2 > size {
		size *= 2
	}
	old := m.slots
	m.slots = m.newTable(size)
	mask := size - 1
	for i := range old {
		s := &old[i]
		if s.state != slotFull {
			continue
		}
		j := int(m.hash(s.key)) & mask
		for m.slots[j].state == slotFull {
			j = (j + 1) & mask
		}
		m.slots[j] = *s
	}
	m.used = m.n
	m.al.Deallocate(old)
}
