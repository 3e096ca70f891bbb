package env

import "github.com/stackb/headerc/pkg/symbol"

// Loader decodes one classpath class's bound representation on demand. The
// decoder itself is an external collaborator; this package only provides
// the laziness and memoization around it.
type Loader[T any] func(sym symbol.ClassSymbol) (T, bool)

// ClasspathEnv is a lazily-decoded Env backed by a Loader, memoizing every
// lookup so repeated references to the same classpath symbol decode once.
type ClasspathEnv[T any] struct {
	load  Loader[T]
	cache map[symbol.ClassSymbol]cacheEntry[T]
}

type cacheEntry[T any] struct {
	val T
	ok  bool
}

// NewClasspathEnv constructs a ClasspathEnv around load.
func NewClasspathEnv[T any](load Loader[T]) *ClasspathEnv[T] {
	return &ClasspathEnv[T]{
		load:  load,
		cache: make(map[symbol.ClassSymbol]cacheEntry[T]),
	}
}

// Get implements Env, decoding and memoizing on first access.
func (e *ClasspathEnv[T]) Get(sym symbol.ClassSymbol) (T, bool) {
	if entry, ok := e.cache[sym]; ok {
		return entry.val, entry.ok
	}
	v, ok := e.load(sym)
	e.cache[sym] = cacheEntry[T]{val: v, ok: ok}
	return v, ok
}
