// Package ds contains the capability interfaces of ordered, seekable key-value containers.
//
// Keys are not constrained to comparable types,
// how two keys are matched is up to the implementation.
package ds

import "iter"

// Len is the countable capability.
type Len interface {
	Len() int
}

// Subscript is the keyed access capability.
type Subscript[K, V any] interface {
	Has(key K) bool
	// Get returns the value of the key, or an error when the key is not present.
	Get(key K) (V, error)
	// Set updates the value of an existing key or adds a new entry.
	Set(key K, val V)
	// Delete removes the entry of the key, or returns an error when the key is not present.
	Delete(key K) error
}

// SeekableIterator is the cursor based iteration capability.
//
// An iteration protocol drives it the following way:
//
//	for it.Rewind(); it.Valid(); it.Next() {
//		key := it.Key()
//		val, _ := it.Current()
//	}
type SeekableIterator[K, V any] interface {
	// Current returns the value under the cursor, or false when the cursor is not valid.
	Current() (V, bool)
	// Next advances the cursor, then returns what Current would.
	Next() (V, bool)
	// Key returns the key under the cursor.
	// It must only be called while Valid reports true.
	Key() K
	Valid() bool
	Rewind()
	// Seek moves the cursor to the key's entry.
	// On failure the cursor doesn't move.
	Seek(key K) error
}

type Keys[K any] interface {
	Keys() []K
}

type Values[V any] interface {
	Values() []V
}

type All[K, V any] interface {
	All() iter.Seq2[K, V]
}

type ReadOnlyMap[K, V any] interface {
	Len
	Has(key K) bool
	Get(key K) (V, error)
	All[K, V]
}

type OrderedMap[K, V any] interface {
	Len
	Subscript[K, V]
	SeekableIterator[K, V]
	Keys[K]
	Values[V]
	All[K, V]
}
