// Package sig renders resolved types into JVM Signature attribute strings:
// class, method, and field generic signatures. Plain (non-generic) types
// never need a Signature attribute at all; callers call NeedsSignature
// first and only invoke the Write* functions when it reports true.
package sig

import (
	"strings"

	"github.com/stackb/headerc/pkg/bound"
	"github.com/stackb/headerc/pkg/types"
)

// NeedsSignature reports whether t (or any part of a composite type) uses a
// feature the erased descriptor cannot express: a type variable, a
// parameterized class, or an array of either.
func NeedsSignature(t types.Type) bool {
	switch v := t.(type) {
	case types.TyVar:
		return true
	case types.ClassTy:
		for _, part := range v.Parts {
			if len(part.TyArgs) > 0 {
				return true
			}
		}
		return false
	case types.ArrayTy:
		return NeedsSignature(v.Elem)
	case types.WildTy:
		return true
	default:
		return false
	}
}

// WriteFieldSignature renders t as a field-type signature, e.g.
// "Ljava/util/List<Ljava/lang/String;>;" or "TT;".
func WriteFieldSignature(t types.Type) string {
	var b strings.Builder
	writeType(&b, t)
	return b.String()
}

// WriteClassSignature renders a class's type parameters, superclass, and
// interfaces as a ClassSignature, e.g.
// "<T:Ljava/lang/Object;>Ljava/lang/Object;Ljava/util/List<TT;>;".
func WriteClassSignature(tyParams []bound.TyParam, super *types.ClassTy, interfaces []types.ClassTy) string {
	var b strings.Builder
	writeTyParams(&b, tyParams)
	if super != nil {
		writeClassTy(&b, *super)
	} else {
		writeClassTy(&b, types.ClassOf(types.RootObject))
	}
	for _, iface := range interfaces {
		writeClassTy(&b, iface)
	}
	return b.String()
}

// WriteMethodSignature renders a method's type parameters, parameter
// types, return type, and checked-throws clause as a MethodSignature.
func WriteMethodSignature(tyParams []bound.TyParam, params []types.Type, ret types.Type, thrown []types.Type) string {
	var b strings.Builder
	writeTyParams(&b, tyParams)
	b.WriteByte('(')
	for _, p := range params {
		writeType(&b, p)
	}
	b.WriteByte(')')
	writeType(&b, ret)
	for _, t := range thrown {
		b.WriteByte('^')
		writeType(&b, t)
	}
	return b.String()
}

func writeTyParams(b *strings.Builder, tyParams []bound.TyParam) {
	if len(tyParams) == 0 {
		return
	}
	b.WriteByte('<')
	for _, tp := range tyParams {
		b.WriteString(tp.Sym.Name)
		bounds := tp.Bounds.Bounds
		if len(bounds) == 0 {
			b.WriteByte(':')
			writeClassTy(b, types.ClassOf(types.RootObject))
			continue
		}
		// A class bound is always written, even when it is the implicit
		// root object, so a reader can tell an interface-only bound list
		// apart from "no explicit bound at all".
		first := bounds[0]
		b.WriteByte(':')
		writeClassTy(b, first)
		for _, extra := range bounds[1:] {
			b.WriteByte(':')
			writeClassTy(b, extra)
		}
	}
	b.WriteByte('>')
}

func writeType(b *strings.Builder, t types.Type) {
	switch v := t.(type) {
	case types.ClassTy:
		writeClassTy(b, v)
	case types.ArrayTy:
		b.WriteByte('[')
		writeType(b, v.Elem)
	case types.TyVar:
		b.WriteByte('T')
		b.WriteString(v.Sym.Name)
		b.WriteByte(';')
	case types.PrimTy:
		b.WriteString(primDescriptor(v.PKind))
	case types.WildTy:
		writeWild(b, v)
	case types.VoidTy:
		b.WriteByte('V')
	case types.ErrorTy:
		writeClassTy(b, types.ClassOf(types.RootObject))
	default:
		writeClassTy(b, types.ClassOf(types.RootObject))
	}
}

func writeWild(b *strings.Builder, w types.WildTy) {
	switch w.Bound {
	case types.Unbounded:
		b.WriteByte('*')
	case types.UpperBounded:
		b.WriteByte('+')
		writeType(b, w.Inner)
	case types.LowerBounded:
		b.WriteByte('-')
		writeType(b, w.Inner)
	}
}

// writeClassTy renders a ClassTy's chain of parts. When no part anywhere in
// the chain carries type arguments, the whole chain collapses to the plain
// binary name of the innermost part ("Ltest/Outer$Inner;"): there is nothing
// for a '.'-separated enclosing segment to qualify. Only when some part is
// parameterized does the chain spell out each enclosing level with '.' and
// the nested part's simple name, per the JVM's ClassTypeSignature grammar.
func writeClassTy(b *strings.Builder, c types.ClassTy) {
	b.WriteByte('L')
	if !anyPartParameterized(c.Parts) {
		b.WriteString(c.Parts[len(c.Parts)-1].Sym.Binary)
		b.WriteByte(';')
		return
	}
	for i, part := range c.Parts {
		if i == 0 {
			b.WriteString(part.Sym.Binary)
		} else {
			b.WriteByte('.')
			b.WriteString(part.Sym.SimpleName())
		}
		if len(part.TyArgs) > 0 {
			b.WriteByte('<')
			for _, arg := range part.TyArgs {
				writeType(b, arg)
			}
			b.WriteByte('>')
		}
	}
	b.WriteByte(';')
}

func anyPartParameterized(parts []types.SimpleClassTy) bool {
	for _, part := range parts {
		if len(part.TyArgs) > 0 {
			return true
		}
	}
	return false
}

func primDescriptor(k types.PrimKind) string {
	switch k {
	case types.Boolean:
		return "Z"
	case types.Byte:
		return "B"
	case types.Short:
		return "S"
	case types.Char:
		return "C"
	case types.Int:
		return "I"
	case types.Long:
		return "J"
	case types.Float:
		return "F"
	case types.Double:
		return "D"
	default:
		return "I"
	}
}
