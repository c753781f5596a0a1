package dscontract

import (
	"testing"

	"go.llib.dev/frameless/pkg/reflectkit"
	"go.llib.dev/frameless/port/option"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/random"
)

type Option[K, V any] interface {
	option.Option[Config[K, V]]
}

type Config[K, V any] struct {
	// MakeKey creates a new key.
	// Keys made by separate calls are expected to be distinct keys for the subject.
	MakeKey func(testing.TB) K
	// MakeValue creates a value to be stored.
	MakeValue func(testing.TB) V
	// ErrKeyNotFound is the error the subject reports when a key is absent.
	// When left empty, any non-nil error is accepted.
	ErrKeyNotFound error
}

var _ Option[any, any] = Config[any, any]{}

func (c Config[K, V]) Configure(o *Config[K, V]) {
	if c.MakeKey != nil {
		o.MakeKey = c.MakeKey
	}
	if c.MakeValue != nil {
		o.MakeValue = c.MakeValue
	}
	if c.ErrKeyNotFound != nil {
		o.ErrKeyNotFound = c.ErrKeyNotFound
	}
}

func (c Config[K, V]) makeKey(tb testing.TB) K {
	if c.MakeKey != nil {
		return c.MakeKey(tb)
	}
	return makeRandom[K](tb)
}

func (c Config[K, V]) makeValue(tb testing.TB) V {
	if c.MakeValue != nil {
		return c.MakeValue(tb)
	}
	return makeRandom[V](tb)
}

// makeKeys makes n keys that are unique among each other and differ from the excluded ones.
func (c Config[K, V]) makeKeys(tb testing.TB, n int, exclude ...K) []K {
	var keys []K
	for range n {
		seen := append(append([]K{}, exclude...), keys...)
		keys = append(keys, random.Unique(func() K { return c.makeKey(tb) }, seen...))
	}
	return keys
}

func (c Config[K, V]) makeValues(tb testing.TB, n int) []V {
	return random.Slice(n, func() V { return c.makeValue(tb) })
}

func makeRandom[T any](tb testing.TB) T {
	t := testcase.ToT(&tb)
	return t.Random.Make(reflectkit.TypeOf[T]()).(T)
}
