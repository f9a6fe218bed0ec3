package temparena

const minVectorCap = 8

// Vector is a growable sequence whose storage comes from an ElementAllocator.
// Growth allocates a larger block, copies, and hands the old block to
// Deallocate.
type Vector[T any] struct {
	al   ElementAllocator[T]
	data []T
}

// NewVector creates an empty Vector with room for capacity elements.
func NewVector[T any](al ElementAllocator[T], capacity int) *Vector[T] {
	v := &Vector[T]{al: al}
	if capacity > 0 {
		v.data = al.Allocate(capacity)[:0]
	}
	return v
}

// Append adds vals to the end of the vector.
func (v *Vector[T]) Append(vals ...T) {
	need := len(v.data) + len(vals)
	if need > cap(v.data) {
		v.grow(need)
	}
	n := len(v.data)
	v.data = v.data[:need]
	copy(v.data[n:], vals)
}

func (v *Vector[T]) grow(need int) {
	newCap := max(2*cap(v.data), need, minVectorCap)
	data := v.al.Allocate(newCap)[:len(v.data)]
	copy(data, v.data)
	v.al.Deallocate(v.data)
	v.data = data
}

// At returns the element at i. It panics if i is out of range.
func (v *Vector[T]) At(i int) T {
	return v.data[i]
}

// Set replaces the element at i. It panics if i is out of range.
func (v *Vector[T]) Set(i int, val T) {
	v.data[i] = val
}

func (v *Vector[T]) Len() int { return len(v.data) }

func (v *Vector[T]) Cap() int { return cap(v.data) }

// Slice returns the live elements. The slice aliases the vector's storage
// and is invalidated by the next growth.
func (v *Vector[T]) Slice() []T {
	return v.data
}

// Truncate shortens the vector to n elements. It panics if n > Len().
func (v *Vector[T]) Truncate(n int) {
	v.data = v.data[:n]
}
