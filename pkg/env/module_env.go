package env

import "github.com/stackb/headerc/pkg/symbol"

// SimpleModuleEnv is a fixed in-memory ModuleEnv, used by the module binder
// to look up the version of a referenced module when binding `requires`
// directives, including the synthesized `requires java.base`.
type SimpleModuleEnv[T any] struct {
	m map[symbol.ModuleSymbol]T
}

// NewSimpleModuleEnv constructs a SimpleModuleEnv from an existing map.
func NewSimpleModuleEnv[T any](m map[symbol.ModuleSymbol]T) *SimpleModuleEnv[T] {
	if m == nil {
		m = make(map[symbol.ModuleSymbol]T)
	}
	return &SimpleModuleEnv[T]{m: m}
}

// GetModule implements ModuleEnv.
func (e *SimpleModuleEnv[T]) GetModule(sym symbol.ModuleSymbol) (T, bool) {
	v, ok := e.m[sym]
	return v, ok
}
