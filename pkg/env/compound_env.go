package env

import "github.com/stackb/headerc/pkg/symbol"

// CompoundEnv composes layers in order: a query tries each layer in turn and
// returns the first hit, short-circuiting on the first success. Writes are
// not part of this interface — they go only to the source env a caller
// holds separately.
type CompoundEnv[T any] struct {
	layers []Env[T]
}

// NewCompoundEnv composes layers, queried in the given order.
func NewCompoundEnv[T any](layers ...Env[T]) *CompoundEnv[T] {
	return &CompoundEnv[T]{layers: layers}
}

// Append returns a new CompoundEnv with an additional layer appended after
// the existing ones, leaving the receiver untouched.
func (c *CompoundEnv[T]) Append(layer Env[T]) *CompoundEnv[T] {
	next := make([]Env[T], len(c.layers)+1)
	copy(next, c.layers)
	next[len(c.layers)] = layer
	return &CompoundEnv[T]{layers: next}
}

// Get implements Env, trying each layer in order.
func (c *CompoundEnv[T]) Get(sym symbol.ClassSymbol) (T, bool) {
	for _, layer := range c.layers {
		if v, ok := layer.Get(sym); ok {
			return v, ok
		}
	}
	var zero T
	return zero, false
}
