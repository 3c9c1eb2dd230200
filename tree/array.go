package tree

import "iter"

// Array is an ordered sequence of values with contiguous indexes.
type Array struct {
	items []Value
}

// NewArray creates an empty array with room for capacity values.
func NewArray(capacity int) *Array {
	if capacity <= 0 {
		return &Array{}
	}
	return &Array{items: make([]Value, 0, capacity)}
}

func (a *Array) Len() int { return len(a.items) }

// Add appends v.
func (a *Array) Add(v Value) { a.items = append(a.items, v) }

// Get returns the value at index.
func (a *Array) Get(index int) (Value, error) {
	if index < 0 || index >= len(a.items) {
		return Value{}, &IndexError{Index: index, Len: len(a.items)}
	}
	return a.items[index], nil
}

// At returns a pointer to the value at index for in-place mutation. The
// pointer is invalidated by the next Add, Set past the end, or Delete.
func (a *Array) At(index int) (*Value, bool) {
	if index < 0 || index >= len(a.items) {
		return nil, false
	}
	return &a.items[index], true
}

// Set assigns v at index. An index at or past the end extends the array,
// filling the gap with null.
func (a *Array) Set(index int, v Value) error {
	if index < 0 {
		return &IndexError{Index: index, Len: len(a.items)}
	}
	for len(a.items) < index {
		a.items = append(a.items, Value{})
	}
	if index == len(a.items) {
		a.items = append(a.items, v)
		return nil
	}
	a.items[index] = v
	return nil
}

// Delete removes the value at index, shifting later values down.
func (a *Array) Delete(index int) bool {
	if index < 0 || index >= len(a.items) {
		return false
	}
	copy(a.items[index:], a.items[index+1:])
	a.items[len(a.items)-1] = Value{}
	a.items = a.items[:len(a.items)-1]
	return true
}

// IsDefined reports whether index addresses an element.
func (a *Array) IsDefined(index int) bool {
	return index >= 0 && index < len(a.items)
}

// All yields index and value pairs in order.
func (a *Array) All() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		for i, v := range a.items {
			if !yield(i, v) {
				return
			}
		}
	}
}
