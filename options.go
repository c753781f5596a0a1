package complexmap

import (
	"go.llib.dev/complexmap/internal/identity"
	"go.llib.dev/frameless/port/option"
)

type Option[K any] interface {
	option.Option[Config[K]]
}

type Config[K any] struct {
	// Equal tells if two keys are the same key.
	// By default, keys are matched with Identity.
	Equal func(a, b K) bool
	// Strict keeps the cursor on its entry when an entry before or under it is deleted.
	// See Map.Delete for the details.
	Strict bool
}

func (c Config[K]) Configure(o *Config[K]) {
	if c.Equal != nil {
		o.Equal = c.Equal
	}
	if c.Strict {
		o.Strict = true
	}
}

func (c Config[K]) equal(a, b K) bool {
	if c.Equal != nil {
		return c.Equal(a, b)
	}
	return Identity(a, b)
}

// WithEqual replaces the key comparator.
func WithEqual[K any](fn func(a, b K) bool) Option[K] {
	return option.Func[Config[K]](func(c *Config[K]) { c.Equal = fn })
}

// Strict enables the strict cursor mode.
func Strict[K any]() Option[K] {
	return option.Func[Config[K]](func(c *Config[K]) { c.Strict = true })
}

// Identity is the default key comparator.
// Scalars and plain data structures match by type and value,
// pointers, maps, channels, slices and funcs match only when they are the same instance.
func Identity[K any](a, b K) bool {
	return identity.Equal(a, b)
}
