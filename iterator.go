package complexmap

import "github.com/emirpasic/gods/v2/containers"

// Iterator is a stateful iterator over a Map that is independent of the Map's own cursor.
// It reads the Map live, so entries set or deleted during iteration are visible to it.
type Iterator[K, V any] struct {
	m     *Map[K, V]
	index int
}

var _ containers.ReverseIteratorWithKey[string, int] = (*Iterator[string, int])(nil)

// Iterator returns an Iterator positioned before the first entry.
func (m *Map[K, V]) Iterator() *Iterator[K, V] {
	return &Iterator[K, V]{m: m, index: -1}
}

// Next moves the iterator to the next entry and reports whether there was one.
// Once it returns false, the iterator is past the end.
func (it *Iterator[K, V]) Next() bool {
	if it.index < it.m.Len() {
		it.index++
	}
	return it.m.isIndex(it.index)
}

// Prev moves the iterator to the previous entry and reports whether there was one.
func (it *Iterator[K, V]) Prev() bool {
	if n := it.m.Len(); n < it.index {
		it.index = n
	}
	if 0 <= it.index {
		it.index--
	}
	return it.m.isIndex(it.index)
}

// Value returns the value of the current entry.
// It should only be called after Next, Prev, First or Last reported true.
func (it *Iterator[K, V]) Value() V {
	return it.m.values[it.index]
}

// Key returns the key of the current entry.
// It should only be called after Next, Prev, First or Last reported true.
func (it *Iterator[K, V]) Key() K {
	return it.m.keys[it.index]
}

// Begin resets the iterator to its initial state, one before the first entry.
func (it *Iterator[K, V]) Begin() {
	it.index = -1
}

// End moves the iterator past the last entry.
func (it *Iterator[K, V]) End() {
	it.index = it.m.Len()
}

func (it *Iterator[K, V]) First() bool {
	it.Begin()
	return it.Next()
}

func (it *Iterator[K, V]) Last() bool {
	it.End()
	return it.Prev()
}

// NextTo moves the iterator to the next entry that satisfies fn.
func (it *Iterator[K, V]) NextTo(fn func(key K, value V) bool) bool {
	for it.Next() {
		if fn(it.Key(), it.Value()) {
			return true
		}
	}
	return false
}

// PrevTo moves the iterator to the previous entry that satisfies fn.
func (it *Iterator[K, V]) PrevTo(fn func(key K, value V) bool) bool {
	for it.Prev() {
		if fn(it.Key(), it.Value()) {
			return true
		}
	}
	return false
}

func (m *Map[K, V]) isIndex(i int) bool {
	return 0 <= i && i < len(m.keys)
}
