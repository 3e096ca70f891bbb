// Package env implements the layered symbol lookup used throughout binding:
// a source env populated during binding, a lazily-decoded classpath env,
// and a CompoundEnv that composes them by trying each layer in order. Only
// the classpath env memoizes what it decodes.
package env

import "github.com/stackb/headerc/pkg/symbol"

// Env is an abstract lookup from a class symbol to its bound representation.
// T is instantiated with *bound.TypeBoundClass for the class env; modules
// are looked up through the separate ModuleEnv interface below.
type Env[T any] interface {
	Get(sym symbol.ClassSymbol) (T, bool)
}

// ModuleEnv looks up module descriptors by module symbol.
type ModuleEnv[T any] interface {
	GetModule(sym symbol.ModuleSymbol) (T, bool)
}

// SimpleEnv is a fixed in-memory Env over a pre-populated map.
type SimpleEnv[T any] struct {
	m map[symbol.ClassSymbol]T
}

// NewSimpleEnv constructs a SimpleEnv from an existing map, taking ownership
// of it.
func NewSimpleEnv[T any](m map[symbol.ClassSymbol]T) *SimpleEnv[T] {
	if m == nil {
		m = make(map[symbol.ClassSymbol]T)
	}
	return &SimpleEnv[T]{m: m}
}

// Get implements Env.
func (e *SimpleEnv[T]) Get(sym symbol.ClassSymbol) (T, bool) {
	v, ok := e.m[sym]
	return v, ok
}

// Put records a binding. Once a symbol's binding is materialized it must
// not change: callers that need that invariant enforced should use
// *SourceEnv instead.
func (e *SimpleEnv[T]) Put(sym symbol.ClassSymbol, v T) {
	e.m[sym] = v
}
