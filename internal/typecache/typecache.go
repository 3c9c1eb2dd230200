// Package typecache caches per-type metadata computed by a pure function.
package typecache

import (
	"reflect"
	"sync/atomic"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

const initialCapacity = 5

type entry[T any] struct {
	key   reflect.Type
	value T
}

// TypeDictionary is a small linear cache scanned newest-first. Entries are
// published through an atomic slice header, so reads never lock. A single
// claim flag admits one writer at a time; a caller losing the claim returns
// its own freshly computed value without storing it. Callers may therefore
// observe distinct but equivalent values for the same type.
type TypeDictionary[T any] struct {
	entries atomic.Pointer[[]entry[T]]
	claim   atomic.Bool
	compute func(reflect.Type) T
	logger  log.Logger
}

// New creates a cache around compute, which must be pure and idempotent.
func New[T any](compute func(reflect.Type) T, logger log.Logger) *TypeDictionary[T] {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &TypeDictionary[T]{compute: compute, logger: logger}
}

// Get returns cached metadata for t, computing it on first use.
func (d *TypeDictionary[T]) Get(t reflect.Type) T {
	if value, ok := d.lookup(t); ok {
		return value
	}
	value := d.compute(t)
	if !d.claim.CompareAndSwap(false, true) {
		level.Debug(d.logger).Log("msg", "metadata insert lost race, returning uncached value", "type", t.String())
		return value
	}
	defer d.claim.Store(false)
	if existing, ok := d.lookup(t); ok {
		return existing
	}
	var current []entry[T]
	if p := d.entries.Load(); p != nil {
		current = *p
	}
	if len(current) == cap(current) {
		size := cap(current) * 2
		if size == 0 {
			size = initialCapacity
		}
		grown := make([]entry[T], len(current), size)
		copy(grown, current)
		current = grown
	}
	// Readers only see current[:len] of the previous header, so writing
	// past it before publishing is not observable.
	current = append(current, entry[T]{key: t, value: value})
	d.entries.Store(&current)
	return value
}

// Len returns the number of cached types.
func (d *TypeDictionary[T]) Len() int {
	if p := d.entries.Load(); p != nil {
		return len(*p)
	}
	return 0
}

func (d *TypeDictionary[T]) lookup(t reflect.Type) (T, bool) {
	if p := d.entries.Load(); p != nil {
		items := *p
		for i := len(items) - 1; i >= 0; i-- {
			if items[i].key == t {
				return items[i].value, true
			}
		}
	}
	var zero T
	return zero, false
}
