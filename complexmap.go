// Package complexmap provides an ordered map that accepts any value as a key.
//
// Go maps require comparable keys, and even then they compare structs and arrays by value
// and panic on interfaces holding slices or funcs.
// Map instead keeps its entries in two parallel slices and finds keys with a linear scan,
// matching them by identity or strict equality (see Identity).
// The price of that universality is O(n) lookups.
//
// Besides keyed access, Map carries a cursor that supports seeking to a key
// and stepping through the entries in insertion order:
//
//	for m.Rewind(); m.Valid(); m.Next() {
//		k := m.Key()
//		v, _ := m.Current()
//	}
//
// Map is not safe for concurrent use.
package complexmap

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/emirpasic/gods/v2/containers"
	"go.llib.dev/frameless/port/option"

	"go.llib.dev/complexmap/port/ds"
)

type Map[K, V any] struct {
	keys   []K
	values []V
	cursor int
	config Config[K]
}

var (
	_ ds.OrderedMap[string, int] = (*Map[string, int])(nil)
	_ containers.Container[int]  = (*Map[string, int])(nil)
)

// New makes a Map from the paired keys and values.
// keys[i] is associated with values[i], and the insertion order follows the slice order.
// Both slices are copied, so later changes to them don't affect the Map, and the other way around.
//
// Keys must be unique under the key comparator, a repeated key fails with ErrDuplicateKey
// instead of being kept as a shadowed entry that lookups never reach.
func New[K, V any](keys []K, values []V, opts ...Option[K]) (*Map[K, V], error) {
	if len(keys) != len(values) {
		return nil, ErrLengthMismatch.F("got %d keys and %d values", len(keys), len(values))
	}
	m := &Map[K, V]{config: option.ToConfig(opts)}
	for i, key := range keys {
		if j, ok := m.locate(key); ok {
			return nil, ErrDuplicateKey.F("key at index %d is the same as the key at index %d", i, j)
		}
		m.keys = append(m.keys, key)
	}
	m.values = slices.Clone(values)
	return m, nil
}

// locate returns the index of the first stored key that matches key.
func (m *Map[K, V]) locate(key K) (int, bool) {
	for i, k := range m.keys {
		if m.config.equal(k, key) {
			return i, true
		}
	}
	return -1, false
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	return len(m.keys)
}

// Size is an alias of Len.
func (m *Map[K, V]) Size() int {
	return m.Len()
}

func (m *Map[K, V]) Empty() bool {
	return m.Len() == 0
}

// Clear removes all entries and rewinds the cursor.
func (m *Map[K, V]) Clear() {
	m.keys = nil
	m.values = nil
	m.cursor = 0
}

// Seek moves the cursor to the entry of key.
// When the key is not present, ErrKeyNotFound is returned and the cursor stays where it was.
func (m *Map[K, V]) Seek(key K) error {
	index, ok := m.locate(key)
	if !ok {
		return ErrKeyNotFound
	}
	m.cursor = index
	return nil
}

// Current returns the value under the cursor.
// When the cursor is not Valid, it returns the zero value and false.
func (m *Map[K, V]) Current() (V, bool) {
	if !m.Valid() {
		var zero V
		return zero, false
	}
	return m.values[m.cursor], true
}

// Next advances the cursor and returns the value it lands on, the same way Current does.
// Stepping past the last entry leaves the cursor at Len(), where the Map is not Valid
// until Rewind or Seek is called.
func (m *Map[K, V]) Next() (V, bool) {
	if m.cursor < len(m.keys) {
		m.cursor++
	}
	return m.Current()
}

// Key returns the key under the cursor.
//
// Calling Key while the cursor is not Valid is a programming error and Key panics.
func (m *Map[K, V]) Key() K {
	if !m.Valid() {
		panic(ErrCursorOutOfRange.F("cursor at %d, length is %d", m.cursor, m.Len()))
	}
	return m.keys[m.cursor]
}

// Valid reports whether the cursor points to an entry.
func (m *Map[K, V]) Valid() bool {
	return 0 <= m.cursor && m.cursor < len(m.keys) && m.cursor < len(m.values)
}

// Rewind moves the cursor to the first entry.
func (m *Map[K, V]) Rewind() {
	m.cursor = 0
}

func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.locate(key)
	return ok
}

// Get returns the value of key, or ErrKeyNotFound.
func (m *Map[K, V]) Get(key K) (V, error) {
	index, ok := m.locate(key)
	if !ok {
		var zero V
		return zero, ErrKeyNotFound
	}
	return m.values[index], nil
}

func (m *Map[K, V]) Lookup(key K) (V, bool) {
	index, ok := m.locate(key)
	if !ok {
		var zero V
		return zero, false
	}
	return m.values[index], true
}

// Set updates the value of an existing key in place,
// or appends a new entry to the end of the Map.
func (m *Map[K, V]) Set(key K, value V) {
	if index, ok := m.locate(key); ok {
		m.values[index] = value
		return
	}
	m.keys = append(m.keys, key)
	m.values = append(m.values, value)
}

// Delete removes the entry of key, keeping the order of the remaining entries.
// When the key is not present, ErrKeyNotFound is returned.
//
// Entries after the removed one shift one position towards the front.
// The cursor is an index, so by default it is left as is,
// and after a Delete at or before it, it refers to a different entry, or past the end.
//
// In Strict mode the cursor follows its entry instead.
// Deleting an entry before the cursor moves the cursor back by one.
// Deleting the entry under the cursor also moves it back by one,
// so the next call to Next lands on the entry that followed the deleted one.
func (m *Map[K, V]) Delete(key K) error {
	index, ok := m.locate(key)
	if !ok {
		return ErrKeyNotFound
	}
	m.keys = slices.Delete(m.keys, index, index+1)
	m.values = slices.Delete(m.values, index, index+1)
	if m.config.Strict && index <= m.cursor {
		m.cursor--
	}
	return nil
}

// Keys returns a copy of the keys in insertion order.
func (m *Map[K, V]) Keys() []K {
	return slices.Clone(m.keys)
}

// Values returns a copy of the values in insertion order.
func (m *Map[K, V]) Values() []V {
	return slices.Clone(m.values)
}

// All iterates over the entries in insertion order without touching the cursor.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i := 0; i < len(m.keys); i++ {
			if !yield(m.keys[i], m.values[i]) {
				return
			}
		}
	}
}

// Clone returns a Map with its own copy of the entries, the same configuration and cursor position.
func (m *Map[K, V]) Clone() *Map[K, V] {
	return &Map[K, V]{
		keys:   slices.Clone(m.keys),
		values: slices.Clone(m.values),
		cursor: m.cursor,
		config: m.config,
	}
}

// String formats the entries in insertion order, the same way fmt prints a Go map.
func (m *Map[K, V]) String() string {
	var b strings.Builder
	b.WriteString("map[")
	for i := range m.keys {
		if 0 < i {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%v:%v", m.keys[i], m.values[i])
	}
	b.WriteString("]")
	return b.String()
}
