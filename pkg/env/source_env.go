package env

import (
	"fmt"

	"github.com/stackb/headerc/pkg/symbol"
)

// SourceEnv is the Env populated during binding of the current compilation's
// own classes. Bind is append-only: a second Bind of the same symbol
// panics. Rebind replaces a binding and is used only to advance a class to
// its next stage, matching the fixpoint-by-staging discipline the
// hierarchy/member/constant binders depend on.
type SourceEnv[T any] struct {
	m map[symbol.ClassSymbol]T
}

// NewSourceEnv constructs an empty SourceEnv.
func NewSourceEnv[T any]() *SourceEnv[T] {
	return &SourceEnv[T]{m: make(map[symbol.ClassSymbol]T)}
}

// Get implements Env.
func (e *SourceEnv[T]) Get(sym symbol.ClassSymbol) (T, bool) {
	v, ok := e.m[sym]
	return v, ok
}

// Bind records sym's binding. Binding the same symbol twice is a bug,
// reported via panic rather than a recoverable diagnostic; staged binders
// must materialize each class's stage exactly once.
func (e *SourceEnv[T]) Bind(sym symbol.ClassSymbol, v T) {
	if _, ok := e.m[sym]; ok {
		panic(fmt.Sprintf("internal: duplicate binding for %s", sym))
	}
	e.m[sym] = v
}

// Rebind replaces sym's binding, used only to advance the same class
// through successive Stage values (header-bound -> member-bound ->
// const-bound) where the caller is replacing its own prior stage's result,
// not introducing a second class under the same symbol.
func (e *SourceEnv[T]) Rebind(sym symbol.ClassSymbol, v T) {
	e.m[sym] = v
}

// Symbols returns every bound symbol; insertion order is not guaranteed, so
// callers needing a deterministic order must sort.
func (e *SourceEnv[T]) Symbols() []symbol.ClassSymbol {
	out := make([]symbol.ClassSymbol, 0, len(e.m))
	for k := range e.m {
		out = append(out, k)
	}
	return out
}
