// Package stack provides the growable LIFO used by the iterative tree walkers.
package stack

const initialCapacity = 8

// Stack is a growable LIFO buffer. The zero value is ready to use.
type Stack[T any] struct {
	items []T
}

// New creates a stack with the supplied initial capacity.
func New[T any](capacity int) *Stack[T] {
	if capacity <= 0 {
		capacity = initialCapacity
	}
	return &Stack[T]{items: make([]T, 0, capacity)}
}

// Len returns the number of pushed items.
func (s *Stack[T]) Len() int { return len(s.items) }

// Push appends an item, doubling the backing storage when full.
func (s *Stack[T]) Push(item T) {
	if len(s.items) == cap(s.items) {
		size := cap(s.items) * 2
		if size == 0 {
			size = initialCapacity
		}
		grown := make([]T, len(s.items), size)
		copy(grown, s.items)
		s.items = grown
	}
	s.items = append(s.items, item)
}

// Pop removes and returns the top item. The vacated slot is cleared so the
// stack does not retain references once the item is handed back.
func (s *Stack[T]) Pop() T {
	n := len(s.items) - 1
	item := s.items[n]
	var zero T
	s.items[n] = zero
	s.items = s.items[:n]
	return item
}

// Peek returns a pointer to the top item, valid until the next Push.
func (s *Stack[T]) Peek() *T {
	return &s.items[len(s.items)-1]
}

// Reset drops all items, keeping the allocated capacity.
func (s *Stack[T]) Reset() {
	clear(s.items)
	s.items = s.items[:0]
}
