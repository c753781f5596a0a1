// Package dsmap is a utility package for working with the ds map ports.
package dsmap

import (
	"iter"

	"github.com/emirpasic/gods/v2/containers"
	"go.llib.dev/frameless/pkg/iterkit"

	"go.llib.dev/complexmap/port/ds"
)

// Each drives the iteration protocol of a SeekableIterator.
// It rewinds the cursor, and while the cursor is valid,
// it passes the current key and value to fn, then advances.
// Returning false from fn stops the iteration and leaves the cursor on that entry.
func Each[K, V any](it ds.SeekableIterator[K, V], fn func(key K, val V) bool) {
	for it.Rewind(); it.Valid(); it.Next() {
		val, _ := it.Current()
		if !fn(it.Key(), val) {
			return
		}
	}
}

// Seq turns the cursor based iteration into a range-over-func iterator.
// Iterating it moves the cursor of it.
func Seq[K, V any](it ds.SeekableIterator[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		Each(it, yield)
	}
}

// Collect returns the keys and values in iteration order.
func Collect[K, V any](it ds.SeekableIterator[K, V]) ([]K, []V) {
	var (
		keys   []K
		values []V
	)
	Each(it, func(key K, val V) bool {
		keys = append(keys, key)
		values = append(values, val)
		return true
	})
	return keys, values
}

// Iterate turns a gods key iterator into a range-over-func iterator.
// The iterator is reset with Begin before the first entry is read.
func Iterate[K, V any](it containers.IteratorWithKey[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for it.Begin(); it.Next(); {
			if !yield(it.Key(), it.Value()) {
				return
			}
		}
	}
}

func Len[K, V any](m ds.All[K, V]) int {
	if l, ok := m.(ds.Len); ok {
		return l.Len()
	}
	return iterkit.Count2(m.All())
}

func Keys[K, V any](m ds.All[K, V]) []K {
	if kvk, ok := m.(ds.Keys[K]); ok {
		return kvk.Keys()
	}
	return iterkit.Collect2(m.All(), func(k K, _ V) K { return k })
}
