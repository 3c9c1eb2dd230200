package tree

import (
	"iter"

	"github.com/cespare/xxhash/v2"
)

const (
	emptySlot   int32 = -1
	deletedSlot int32 = -2
	minSlots          = 8
)

type entry struct {
	hash  uint64
	key   string
	value Value
	live  bool
}

// Dictionary is an insertion-ordered map from string keys to values.
//
// Lookup goes through an open-addressing slot table with linear probing.
// Slots hold indexes into the entries slice, which keeps insertion order;
// removal tombstones the slot and leaves a hole in entries that enumeration
// skips. Both are reclaimed when the table is rebuilt. The zero value is an
// empty dictionary.
type Dictionary struct {
	slots   []int32
	entries []entry
	count   int
}

// NewDictionary creates an empty dictionary sized for capacity keys.
func NewDictionary(capacity int) *Dictionary {
	d := &Dictionary{}
	if capacity > 0 {
		d.init(slotsFor(capacity))
		d.entries = make([]entry, 0, capacity)
	}
	return d
}

func slotsFor(count int) int {
	size := minSlots
	for size/2 < count {
		size <<= 1
	}
	return size
}

func (d *Dictionary) init(size int) {
	d.slots = make([]int32, size)
	for i := range d.slots {
		d.slots[i] = emptySlot
	}
}

// Len returns the number of present keys.
func (d *Dictionary) Len() int { return d.count }

// find returns the slot holding key, or the slot an insert should use.
func (d *Dictionary) find(key string, hash uint64) (int, bool) {
	if len(d.slots) == 0 {
		return -1, false
	}
	mask := uint64(len(d.slots) - 1)
	free := -1
	for i := hash & mask; ; i = (i + 1) & mask {
		switch idx := d.slots[i]; idx {
		case emptySlot:
			if free == -1 {
				free = int(i)
			}
			return free, false
		case deletedSlot:
			if free == -1 {
				free = int(i)
			}
		default:
			e := &d.entries[idx]
			if e.hash == hash && e.key == key {
				return int(i), true
			}
		}
	}
}

func (d *Dictionary) insert(key string, hash uint64, v Value, slot int) {
	if len(d.slots) == 0 || len(d.entries)+1 > len(d.slots)*3/4 {
		d.rehash()
		slot, _ = d.find(key, hash)
	}
	d.slots[slot] = int32(len(d.entries))
	d.entries = append(d.entries, entry{hash: hash, key: key, value: v, live: true})
	d.count++
}

// rehash rebuilds the slot table, compacting holes out of entries. The table
// doubles until live keys fill at most half of it.
func (d *Dictionary) rehash() {
	size := len(d.slots)
	if size < minSlots {
		size = minSlots
	}
	for size/2 < d.count+1 {
		size <<= 1
	}
	live := make([]entry, 0, max(size/2, d.count+1))
	for _, e := range d.entries {
		if e.live {
			live = append(live, e)
		}
	}
	d.init(size)
	mask := uint64(size - 1)
	for idx := range live {
		i := live[idx].hash & mask
		for d.slots[i] != emptySlot {
			i = (i + 1) & mask
		}
		d.slots[i] = int32(idx)
	}
	d.entries = live
}

// Add inserts key unless it is already present, in which case the original
// value is kept. It reports whether v was inserted.
func (d *Dictionary) Add(key string, v Value) bool {
	hash := xxhash.Sum64String(key)
	slot, found := d.find(key, hash)
	if found {
		return false
	}
	d.insert(key, hash, v, slot)
	return true
}

// Set assigns v to key, overwriting an existing value.
func (d *Dictionary) Set(key string, v Value) {
	hash := xxhash.Sum64String(key)
	slot, found := d.find(key, hash)
	if found {
		d.entries[d.slots[slot]].value = v
		return
	}
	d.insert(key, hash, v, slot)
}

// Get returns the value stored under key or a KeyNotFoundError.
func (d *Dictionary) Get(key string) (Value, error) {
	if p := d.Lookup(key); p != nil {
		return *p, nil
	}
	return Value{}, &KeyNotFoundError{Key: key}
}

// TryGet returns the value stored under key and whether it was present.
func (d *Dictionary) TryGet(key string) (Value, bool) {
	if p := d.Lookup(key); p != nil {
		return *p, true
	}
	return Value{}, false
}

// Lookup returns a pointer to the stored value for in-place mutation, or nil.
// The pointer is invalidated by the next insert.
func (d *Dictionary) Lookup(key string) *Value {
	if d.count == 0 {
		return nil
	}
	slot, found := d.find(key, xxhash.Sum64String(key))
	if !found {
		return nil
	}
	return &d.entries[d.slots[slot]].value
}

// ContainsKey reports whether key is present.
func (d *Dictionary) ContainsKey(key string) bool { return d.Lookup(key) != nil }

// Remove deletes key. It returns false when the key is absent.
func (d *Dictionary) Remove(key string) bool {
	if d.count == 0 {
		return false
	}
	slot, found := d.find(key, xxhash.Sum64String(key))
	if !found {
		return false
	}
	idx := d.slots[slot]
	d.slots[slot] = deletedSlot
	d.entries[idx] = entry{}
	d.count--
	return true
}

// Keys returns present keys in insertion order.
func (d *Dictionary) Keys() []string {
	keys := make([]string, 0, d.count)
	for i := range d.entries {
		if d.entries[i].live {
			keys = append(keys, d.entries[i].key)
		}
	}
	return keys
}

// All yields present entries in insertion order.
func (d *Dictionary) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for i := range d.entries {
			e := &d.entries[i]
			if e.live && !yield(e.key, e.value) {
				return
			}
		}
	}
}

// Cursor returns an iterator over present entries in insertion order.
func (d *Dictionary) Cursor() Cursor { return Cursor{d: d, pos: -1} }

// Cursor walks a dictionary without allocating. Inserting while a cursor is
// active invalidates it.
type Cursor struct {
	d   *Dictionary
	pos int
}

// Next advances to the next present entry.
func (c *Cursor) Next() bool {
	for c.pos++; c.pos < len(c.d.entries); c.pos++ {
		if c.d.entries[c.pos].live {
			return true
		}
	}
	return false
}

func (c *Cursor) Key() string { return c.d.entries[c.pos].key }

func (c *Cursor) Value() *Value { return &c.d.entries[c.pos].value }
