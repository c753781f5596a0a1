package dscontract

import (
	"fmt"

	"go.llib.dev/frameless/pkg/reflectkit"
	"go.llib.dev/frameless/port/contract"
	"go.llib.dev/frameless/port/option"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
	"go.llib.dev/testcase/let"
	"go.llib.dev/testcase/random"

	"go.llib.dev/complexmap/port/ds"
	"go.llib.dev/complexmap/port/ds/dsmap"
)

// Countable checks that the length of an empty subject follows its keyed mutations.
func Countable[K, V any](mk contract.Make[ds.OrderedMap[K, V]], opts ...Option[K, V]) contract.Contract {
	s := testcase.NewSpec(nil)
	c := option.ToConfig(opts)

	s.Test("empty subject has zero length", func(t *testcase.T) {
		assert.Equal(t, 0, mk(t).Len())
	})

	s.Test("setting a new key increases the length by one", func(t *testcase.T) {
		subject := mk(t)
		keys := c.makeKeys(t, t.Random.IntBetween(3, 7))
		for i, key := range keys {
			subject.Set(key, c.makeValue(t))
			assert.Equal(t, i+1, subject.Len())
		}
	})

	s.Test("setting an existing key keeps the length", func(t *testcase.T) {
		subject := mk(t)
		keys := c.makeKeys(t, t.Random.IntBetween(3, 7))
		for _, key := range keys {
			subject.Set(key, c.makeValue(t))
		}
		subject.Set(random.Pick(t.Random, keys...), c.makeValue(t))
		assert.Equal(t, len(keys), subject.Len())
	})

	s.Test("deleting a key decreases the length by one", func(t *testcase.T) {
		subject := mk(t)
		keys := c.makeKeys(t, t.Random.IntBetween(3, 7))
		for _, key := range keys {
			subject.Set(key, c.makeValue(t))
		}
		assert.NoError(t, subject.Delete(random.Pick(t.Random, keys...)))
		assert.Equal(t, len(keys)-1, subject.Len())
		assert.Equal(t, subject.Len(), len(subject.Keys()))
		assert.Equal(t, subject.Len(), len(subject.Values()))
	})

	return s.AsSuite(fmt.Sprintf("Countable[%s, %s]", reflectkit.TypeOf[K]().String(), reflectkit.TypeOf[V]().String()))
}

// Subscript checks the keyed access of an empty subject.
func Subscript[K, V any](mk contract.Make[ds.OrderedMap[K, V]], opts ...Option[K, V]) contract.Contract {
	s := testcase.NewSpec(nil)
	c := option.ToConfig(opts)

	subject := let.Var(s, func(t *testcase.T) ds.OrderedMap[K, V] {
		return mk(t)
	})
	key := let.Var(s, func(t *testcase.T) K {
		return c.makeKey(t)
	})
	val := let.Var(s, func(t *testcase.T) V {
		return c.makeValue(t)
	})

	assertKeyNotFound := func(t *testcase.T, err error) {
		if c.ErrKeyNotFound != nil {
			assert.ErrorIs(t, c.ErrKeyNotFound, err)
			return
		}
		assert.Error(t, err)
	}

	s.When("the key is absent", func(s *testcase.Spec) {
		s.Then("#Has reports false", func(t *testcase.T) {
			assert.False(t, subject.Get(t).Has(key.Get(t)))
		})

		s.Then("#Get fails with key not found", func(t *testcase.T) {
			_, err := subject.Get(t).Get(key.Get(t))
			assertKeyNotFound(t, err)
		})

		s.Then("#Delete fails with key not found", func(t *testcase.T) {
			assertKeyNotFound(t, subject.Get(t).Delete(key.Get(t)))
		})

		s.Then("#Set adds the entry to the end", func(t *testcase.T) {
			others := c.makeKeys(t, t.Random.IntBetween(1, 3), key.Get(t))
			for _, k := range others {
				subject.Get(t).Set(k, c.makeValue(t))
			}
			subject.Get(t).Set(key.Get(t), val.Get(t))

			keys := subject.Get(t).Keys()
			assert.Equal(t, len(others)+1, len(keys))
			got, err := subject.Get(t).Get(keys[len(keys)-1])
			assert.NoError(t, err)
			assert.Equal(t, val.Get(t), got)
		})
	})

	s.When("the key is present", func(s *testcase.Spec) {
		s.Before(func(t *testcase.T) {
			subject.Get(t).Set(key.Get(t), val.Get(t))
		})

		s.Then("#Has reports true", func(t *testcase.T) {
			assert.True(t, subject.Get(t).Has(key.Get(t)))
		})

		s.Then("#Get returns the stored value", func(t *testcase.T) {
			got, err := subject.Get(t).Get(key.Get(t))
			assert.NoError(t, err)
			assert.Equal(t, val.Get(t), got)
		})

		s.Then("#Set overwrites the value in place", func(t *testcase.T) {
			after := c.makeKeys(t, t.Random.IntBetween(1, 3), key.Get(t))
			for _, k := range after {
				subject.Get(t).Set(k, c.makeValue(t))
			}
			keysBefore := subject.Get(t).Keys()

			newVal := c.makeValue(t)
			subject.Get(t).Set(key.Get(t), newVal)

			got, err := subject.Get(t).Get(key.Get(t))
			assert.NoError(t, err)
			assert.Equal(t, newVal, got)
			assert.Equal(t, len(keysBefore), subject.Get(t).Len())
			assert.True(t, sameOrder(subject.Get(t), keysBefore))
		})

		s.Then("#Delete removes the entry", func(t *testcase.T) {
			assert.NoError(t, subject.Get(t).Delete(key.Get(t)))
			assert.False(t, subject.Get(t).Has(key.Get(t)))
			_, err := subject.Get(t).Get(key.Get(t))
			assertKeyNotFound(t, err)
		})

		s.Then("#Delete keeps the order of the remaining entries", func(t *testcase.T) {
			others := c.makeKeys(t, t.Random.IntBetween(2, 5), key.Get(t))
			for _, k := range others {
				subject.Get(t).Set(k, c.makeValue(t))
			}
			assert.NoError(t, subject.Get(t).Delete(key.Get(t)))
			assert.True(t, sameOrder(subject.Get(t), others))
		})
	})

	return s.AsSuite(fmt.Sprintf("Subscript[%s, %s]", reflectkit.TypeOf[K]().String(), reflectkit.TypeOf[V]().String()))
}

// SeekableIterator checks the cursor protocol of a subject filled with Set.
func SeekableIterator[K, V any](mk contract.Make[ds.OrderedMap[K, V]], opts ...Option[K, V]) contract.Contract {
	s := testcase.NewSpec(nil)
	c := option.ToConfig(opts)

	subject := let.Var(s, func(t *testcase.T) ds.OrderedMap[K, V] {
		return mk(t)
	})

	s.When("subject is empty", func(s *testcase.Spec) {
		s.Then("it is not valid", func(t *testcase.T) {
			subject.Get(t).Rewind()
			assert.False(t, subject.Get(t).Valid())
			_, ok := subject.Get(t).Current()
			assert.False(t, ok)
		})
	})

	s.When("subject has entries", func(s *testcase.Spec) {
		keys := let.Var(s, func(t *testcase.T) []K {
			return c.makeKeys(t, t.Random.IntBetween(3, 7))
		})
		values := let.Var(s, func(t *testcase.T) []V {
			return c.makeValues(t, len(keys.Get(t)))
		})
		s.Before(func(t *testcase.T) {
			for i, k := range keys.Get(t) {
				subject.Get(t).Set(k, values.Get(t)[i])
			}
		})

		s.Then("iteration yields every entry once in insertion order", func(t *testcase.T) {
			gotKeys, gotValues := dsmap.Collect[K, V](subject.Get(t))
			assert.Equal(t, len(keys.Get(t)), len(gotKeys))
			assert.True(t, sameOrder(subject.Get(t), gotKeys))
			assert.Equal(t, values.Get(t), gotValues)
		})

		s.Then("after rewind the cursor is on the first entry", func(t *testcase.T) {
			subject.Get(t).Next()
			subject.Get(t).Rewind()
			assert.True(t, subject.Get(t).Valid())
			got, ok := subject.Get(t).Current()
			assert.True(t, ok)
			assert.Equal(t, values.Get(t)[0], got)
		})

		s.Then("seeking a key positions the cursor on its entry", func(t *testcase.T) {
			for i, k := range keys.Get(t) {
				assert.NoError(t, subject.Get(t).Seek(k))
				assert.True(t, subject.Get(t).Valid())
				got, ok := subject.Get(t).Current()
				assert.True(t, ok)
				assert.Equal(t, values.Get(t)[i], got)
				assert.True(t, subject.Get(t).Has(subject.Get(t).Key()))
			}
		})

		s.Then("seeking an absent key fails and leaves the cursor", func(t *testcase.T) {
			i := t.Random.IntN(len(keys.Get(t)))
			assert.NoError(t, subject.Get(t).Seek(keys.Get(t)[i]))

			absent := random.Unique(func() K { return c.makeKey(t) }, keys.Get(t)...)
			err := subject.Get(t).Seek(absent)
			if c.ErrKeyNotFound != nil {
				assert.ErrorIs(t, c.ErrKeyNotFound, err)
			} else {
				assert.Error(t, err)
			}

			got, ok := subject.Get(t).Current()
			assert.True(t, ok)
			assert.Equal(t, values.Get(t)[i], got)
		})

		s.Then("stepping past the last entry invalidates the cursor without failing", func(t *testcase.T) {
			subject.Get(t).Rewind()
			for range len(keys.Get(t)) {
				subject.Get(t).Next()
			}
			assert.False(t, subject.Get(t).Valid())
			_, ok := subject.Get(t).Current()
			assert.False(t, ok)
			_, ok = subject.Get(t).Next()
			assert.False(t, ok)
			assert.False(t, subject.Get(t).Valid())
		})
	})

	return s.AsSuite(fmt.Sprintf("SeekableIterator[%s, %s]", reflectkit.TypeOf[K]().String(), reflectkit.TypeOf[V]().String()))
}

// OrderedMap combines the Countable, Subscript and SeekableIterator contracts,
// and checks that the ordered views agree with each other.
func OrderedMap[K, V any](mk contract.Make[ds.OrderedMap[K, V]], opts ...Option[K, V]) contract.Contract {
	s := testcase.NewSpec(nil)
	c := option.ToConfig(opts)

	s.Context("Countable", Countable(mk, c).Spec)
	s.Context("Subscript", Subscript(mk, c).Spec)
	s.Context("SeekableIterator", SeekableIterator(mk, c).Spec)

	s.Test("Keys, Values and All agree on the order", func(t *testcase.T) {
		subject := mk(t)
		keys := c.makeKeys(t, t.Random.IntBetween(3, 7))
		values := c.makeValues(t, len(keys))
		for i, k := range keys {
			subject.Set(k, values[i])
		}
		assert.Equal(t, values, subject.Values())
		assert.True(t, sameOrder(subject, keys))

		var i int
		for k, v := range subject.All() {
			assert.True(t, subject.Has(k))
			assert.Equal(t, values[i], v)
			i++
		}
		assert.Equal(t, len(keys), i)
		assert.Equal(t, len(keys), dsmap.Len[K, V](subject))
	})

	return s.AsSuite(fmt.Sprintf("OrderedMap[%s, %s]", reflectkit.TypeOf[K]().String(), reflectkit.TypeOf[V]().String()))
}

// sameOrder tells if the subject holds exactly the expected keys, in the expected order.
// Positions are resolved through the subject's own Seek,
// so keys that only match by identity work as well.
func sameOrder[K, V any](subject ds.OrderedMap[K, V], expected []K) bool {
	if subject.Len() != len(expected) {
		return false
	}
	for i, key := range expected {
		if index, ok := positionOf(subject, key); !ok || index != i {
			return false
		}
	}
	return true
}

// positionOf seeks the key, then counts the entries after it.
// It moves the cursor of the subject.
func positionOf[K, V any](subject ds.OrderedMap[K, V], key K) (int, bool) {
	if err := subject.Seek(key); err != nil {
		return -1, false
	}
	var rest int
	for {
		if _, ok := subject.Next(); !ok {
			break
		}
		rest++
	}
	return subject.Len() - 1 - rest, true
}
