// Package types is the closed tagged union of resolved types: class types,
// arrays, type variables, primitives, wildcards, void, intersections, and
// the error sentinel.
package types

import (
	"github.com/stackb/headerc/pkg/symbol"
)

// PrimKind enumerates the primitive kinds.
type PrimKind int

const (
	Boolean PrimKind = iota
	Byte
	Short
	Char
	Int
	Long
	Float
	Double
)

// Anno is an opaque placeholder for a type annotation attached to a Type.
// The binder does not populate these, and the lowerer emits no
// type-annotation attributes from them.
type Anno struct {
	Sym ClassRef
}

// ClassRef is the minimal reference to an annotation's class, kept separate
// from the full Type union to avoid import cycles with the Const model.
type ClassRef struct {
	Sym symbol.ClassSymbol
}

// Type is implemented by every member of the tagged union. The interface is
// deliberately closed: callers switch on concrete type via Kind(), never via
// further embedded interfaces, keeping one match site per transformation.
type Type interface {
	Kind() Tag
}

// Tag discriminates the concrete Type implementation.
type Tag int

const (
	TagClass Tag = iota
	TagArray
	TagTyVar
	TagPrim
	TagWild
	TagVoid
	TagIntersection
	TagError
)

// SimpleClassTy is one part of a ClassTy's enclosing-to-innermost chain: a
// class symbol, its type arguments, and the annotations on this part.
type SimpleClassTy struct {
	Sym      symbol.ClassSymbol
	TyArgs   []Type
	Annos    []Anno
}

// ClassTy is a non-empty chain of SimpleClassTy from outermost enclosing
// class to innermost. Parts whose enclosing class has no type parameters may
// be collapsed into the innermost part for representation, but must be
// expanded again for signature emission.
type ClassTy struct {
	Parts []SimpleClassTy
}

func (ClassTy) Kind() Tag { return TagClass }

// Sym returns the innermost class symbol, i.e. the type this ClassTy denotes.
func (c ClassTy) Sym() symbol.ClassSymbol {
	return c.Parts[len(c.Parts)-1].Sym
}

// ClassOf constructs a single-part, non-generic ClassTy for sym.
func ClassOf(sym symbol.ClassSymbol) ClassTy {
	return ClassTy{Parts: []SimpleClassTy{{Sym: sym}}}
}

// ArrayTy is an array of Elem, annotated at this array level.
type ArrayTy struct {
	Elem  Type
	Annos []Anno
}

func (ArrayTy) Kind() Tag { return TagArray }

// TyVar references a declared type parameter.
type TyVar struct {
	Sym   symbol.TyVarSymbol
	Annos []Anno
}

func (TyVar) Kind() Tag { return TagTyVar }

// PrimTy is one of the eight primitive kinds.
type PrimTy struct {
	PKind PrimKind
	Annos []Anno
}

func (PrimTy) Kind() Tag { return TagPrim }

// WildBound discriminates the three wildcard shapes.
type WildBound int

const (
	Unbounded WildBound = iota
	UpperBounded
	LowerBounded
)

// WildTy is a generic wildcard type argument: `?`, `? extends T`, or
// `? super T`.
type WildTy struct {
	Bound WildBound
	Inner Type // nil when Bound == Unbounded
	Annos []Anno
}

func (WildTy) Kind() Tag { return TagWild }

// VoidTy is the singleton void/unit return type.
type VoidTy struct{}

func (VoidTy) Kind() Tag { return TagVoid }

// Void is the canonical VoidTy value.
var Void = VoidTy{}

// IntersectionTy only appears as a type-parameter bound: a class bound
// (possibly the implicit root object) followed by interface bounds.
type IntersectionTy struct {
	Bounds []ClassTy
}

func (IntersectionTy) Kind() Tag { return TagIntersection }

// ErrorTy is the sentinel produced when a name cannot be resolved. It
// propagates through the pipeline without crashing; downstream stages treat
// it as a class with no members.
type ErrorTy struct{}

func (ErrorTy) Kind() Tag { return TagError }

// Error is the canonical ErrorTy value.
var Error = ErrorTy{}

// RootObject is the language's root object type, e.g. java/lang/Object. It
// is substituted for unresolvable supertypes and used as the fallback class
// bound when a type parameter's first bound chases to nothing concrete.
var RootObject = symbol.NewClassSymbol("java/lang/Object")

// IsErroneous reports whether t is the ErrorTy sentinel, recursing into
// array element types so a single unresolved name doesn't require every
// caller to unwrap arrays by hand.
func IsErroneous(t Type) bool {
	for {
		switch v := t.(type) {
		case ErrorTy:
			return true
		case ArrayTy:
			t = v.Elem
			continue
		default:
			return false
		}
	}
}
