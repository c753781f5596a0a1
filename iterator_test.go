package complexmap_test

import (
	"testing"

	"github.com/emirpasic/gods/v2/containers"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
	"go.llib.dev/testcase/let"

	"go.llib.dev/complexmap"
)

func TestIterator(t *testing.T) {
	s := testcase.NewSpec(t)

	m := let.Var(s, func(t *testcase.T) *complexmap.Map[string, int] {
		m, err := complexmap.New([]string{"a", "b", "c"}, []int{1, 2, 3})
		assert.NoError(t, err)
		return m
	})
	subject := let.Var(s, func(t *testcase.T) *complexmap.Iterator[string, int] {
		return m.Get(t).Iterator()
	})

	collect := func(it containers.IteratorWithKey[string, int]) (keys []string, values []int) {
		for it.Next() {
			keys = append(keys, it.Key())
			values = append(values, it.Value())
		}
		return keys, values
	}

	s.Test("forward iteration in insertion order", func(t *testcase.T) {
		keys, values := collect(subject.Get(t))
		assert.Equal(t, []string{"a", "b", "c"}, keys)
		assert.Equal(t, []int{1, 2, 3}, values)
		assert.False(t, subject.Get(t).Next())
	})

	s.Test("backward iteration from the end", func(t *testcase.T) {
		var keys []string
		for subject.Get(t).End(); subject.Get(t).Prev(); {
			keys = append(keys, subject.Get(t).Key())
		}
		assert.Equal(t, []string{"c", "b", "a"}, keys)
		assert.False(t, subject.Get(t).Prev())
		assert.True(t, subject.Get(t).Next())
		assert.Equal(t, "a", subject.Get(t).Key())
	})

	s.Test("First and Last", func(t *testcase.T) {
		assert.True(t, subject.Get(t).Last())
		assert.Equal(t, "c", subject.Get(t).Key())
		assert.True(t, subject.Get(t).First())
		assert.Equal(t, "a", subject.Get(t).Key())
	})

	s.Test("Begin resets the iteration", func(t *testcase.T) {
		collect(subject.Get(t))
		subject.Get(t).Begin()
		keys, _ := collect(subject.Get(t))
		assert.Equal(t, []string{"a", "b", "c"}, keys)
	})

	s.Test("NextTo and PrevTo", func(t *testcase.T) {
		assert.True(t, subject.Get(t).NextTo(func(key string, value int) bool { return 2 <= value }))
		assert.Equal(t, "b", subject.Get(t).Key())
		assert.False(t, subject.Get(t).NextTo(func(key string, value int) bool { return key == "a" }))

		subject.Get(t).End()
		assert.True(t, subject.Get(t).PrevTo(func(key string, value int) bool { return value < 3 }))
		assert.Equal(t, "b", subject.Get(t).Key())
	})

	s.Test("the map cursor is not moved", func(t *testcase.T) {
		assert.NoError(t, m.Get(t).Seek("b"))
		collect(subject.Get(t))
		assert.Equal(t, "b", m.Get(t).Key())
	})

	s.Test("deletes during iteration are seen", func(t *testcase.T) {
		assert.True(t, subject.Get(t).Next())
		assert.NoError(t, m.Get(t).Delete("c"))
		keys, _ := collect(subject.Get(t))
		assert.Equal(t, []string{"b"}, keys)
	})

	s.Test("Prev after the map shrank", func(t *testcase.T) {
		subject.Get(t).End()
		assert.NoError(t, m.Get(t).Delete("c"))
		assert.NoError(t, m.Get(t).Delete("b"))
		assert.True(t, subject.Get(t).Prev())
		assert.Equal(t, "a", subject.Get(t).Key())
	})

	s.Test("on an empty map", func(t *testcase.T) {
		m.Get(t).Clear()
		assert.False(t, subject.Get(t).Next())
		assert.False(t, subject.Get(t).First())
		assert.False(t, subject.Get(t).Last())
	})
}
