// Package buffer holds the ordered item storage behind taskqueue.Queue.
//
// A FIFO is not safe for concurrent use. The owning queue serializes every
// call under its own mutex, which is what lets batch pushes and pops appear
// atomic to other goroutines.
package buffer

// FIFO is a slice-backed first-in first-out buffer.
type FIFO[T any] struct {
	data []T
}

// New returns an empty FIFO with room preallocated for capacity items.
// A negative capacity is treated as zero.
func New[T any](capacity int) *FIFO[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &FIFO[T]{data: make([]T, 0, capacity)}
}

// Len returns the number of buffered items.
func (b *FIFO[T]) Len() int {
	return len(b.data)
}

// Push appends v to the tail. Amortized complexity: O(1).
func (b *FIFO[T]) Push(v T) {
	b.data = append(b.data, v)
}

// PushMany appends items to the tail in order. Amortized complexity: O(k)
// for k items.
func (b *FIFO[T]) PushMany(items []T) {
	b.data = append(b.data, items...)
}

// Pop removes and returns the head item.
// The second result is false when the buffer is empty.
func (b *FIFO[T]) Pop() (T, bool) {
	var zero T
	if len(b.data) == 0 {
		return zero, false
	}
	v := b.data[0]
	// Clear the slot so the buffer does not keep the item reachable, then
	// reslice; append reallocates once the tail runs out of room.
	b.data[0] = zero
	b.data = b.data[1:]
	return v, true
}

// PopMany removes the first n items and returns them in FIFO order as a new
// slice. It returns nil when n is not positive and panics if n exceeds Len;
// callers check the length first.
func (b *FIFO[T]) PopMany(n int) []T {
	if n <= 0 {
		return nil
	}
	out := make([]T, n)
	copy(out, b.data[:n])
	clear(b.data[:n])
	b.data = b.data[n:]
	return out
}
