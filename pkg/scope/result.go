// Package scope implements name resolution: a chain of scopes is tried in
// a fixed phase order, and a hit against the root identifier(s) of a
// dotted key returns a possibly non-empty tail of simple names still to be
// walked as nested classes.
package scope

import "github.com/stackb/headerc/pkg/symbol"

// ResultKind discriminates what a Lookup hit resolved to.
type ResultKind int

const (
	ResultClass ResultKind = iota
	ResultTyVar
)

// Result is what a single resolution phase returns on a hit: either a class
// symbol (with any unconsumed dotted-name tail left to resolve as nested
// classes) or a type variable (which, having no nested members, never
// leaves a tail).
type Result struct {
	Kind      ResultKind
	Sym       symbol.ClassSymbol
	TyVar     symbol.TyVarSymbol
	Remaining []string
}
