// Package pool implements a lock-free object pool shared by concurrent parsers.
package pool

import "sync/atomic"

type node[T any] struct {
	item *T
	next *node[T]
}

// BufferPool is a multi-producer multi-consumer LIFO of reusable items.
// Rent and Return are individually atomic compare-and-swap loops. Each Return
// links a fresh node, so a node observed by a racing Rent is never recycled
// while referenced.
type BufferPool[T any] struct {
	head atomic.Pointer[node[T]]
	New  func() *T
}

// New creates a pool that builds missing items with newFn.
func New[T any](newFn func() *T) *BufferPool[T] {
	return &BufferPool[T]{New: newFn}
}

// Rent pops a pooled item or builds a new one when the pool is empty.
func (p *BufferPool[T]) Rent() *T {
	for {
		head := p.head.Load()
		if head == nil {
			if p.New == nil {
				return new(T)
			}
			return p.New()
		}
		if p.head.CompareAndSwap(head, head.next) {
			return head.item
		}
	}
}

// Return pushes item back for reuse by a later Rent.
func (p *BufferPool[T]) Return(item *T) {
	if item == nil {
		return
	}
	n := &node[T]{item: item}
	for {
		head := p.head.Load()
		n.next = head
		if p.head.CompareAndSwap(head, n) {
			return
		}
	}
}
