// Package binder implements the staged fixpoint that turns a parsed
// compilation into fully resolved TypeBoundClass and ModuleInfo values:
// a header stage that resolves supertypes and type parameters, a member
// stage that resolves field and method signatures, and hand-off to the
// constant evaluator for the const-bound stage.
package binder

import (
	"fmt"

	"github.com/stackb/headerc/pkg/bound"
	"github.com/stackb/headerc/pkg/diag"
	"github.com/stackb/headerc/pkg/env"
	"github.com/stackb/headerc/pkg/scope"
	"github.com/stackb/headerc/pkg/symbol"
	"github.com/stackb/headerc/pkg/tree"
	"github.com/stackb/headerc/pkg/types"
)

// ResolveTypeRef resolves a single source type reference to its Type,
// walking sc for the root identifier and classes for any nested-class
// tail. The resulting ClassTy carries one SimpleClassTy part per level of
// the enclosing-class chain (root through each nested step), so a
// qualified reference into a generic enclosing class expands correctly
// for signature emission. Type arguments on the source reference attach
// only to the innermost part, since tree.TypeRef itself carries a single
// TyArgs list rather than one per qualifying segment — the source shape
// has no way to spell per-level type arguments on a qualified reference.
func ResolveTypeRef(ref tree.TypeRef, sc *scope.CompoundScope, classes env.Env[*bound.TypeBoundClass], sink diag.Sink, source string) types.Type {
	switch ref.Kind {
	case tree.RefVoid:
		return types.Void
	case tree.RefPrimitive:
		return types.PrimTy{PKind: primKind(ref.Prim)}
	case tree.RefArray:
		return types.ArrayTy{Elem: ResolveTypeRef(*ref.Elem, sc, classes, sink, source)}
	case tree.RefWildcard:
		switch ref.Wild {
		case tree.WildNone:
			return types.WildTy{Bound: types.Unbounded}
		case tree.WildExtends:
			return types.WildTy{Bound: types.UpperBounded, Inner: ResolveTypeRef(*ref.Bound, sc, classes, sink, source)}
		default:
			return types.WildTy{Bound: types.LowerBounded, Inner: ResolveTypeRef(*ref.Bound, sc, classes, sink, source)}
		}
	case tree.RefSimple, tree.RefQualified, tree.RefParameterized:
		return resolveClassRef(ref, sc, classes, sink, source)
	default:
		return types.Error
	}
}

func resolveClassRef(ref tree.TypeRef, sc *scope.CompoundScope, classes env.Env[*bound.TypeBoundClass], sink diag.Sink, source string) types.Type {
	result, err := sc.Lookup(ref.Names)
	if err != nil {
		report(sink, source, diag.AmbiguousName, ref.Names, err)
		return types.Error
	}
	if result == nil {
		report(sink, source, diag.SymbolNotFound, ref.Names, fmt.Errorf("cannot find %v", ref.Names))
		return types.Error
	}
	if result.Kind == scope.ResultTyVar {
		return types.TyVar{Sym: result.TyVar}
	}

	chain := []symbol.ClassSymbol{result.Sym}
	if len(result.Remaining) > 0 {
		resolved, err := scope.ResolveNestedChain(classes, result.Sym, result.Remaining)
		if err != nil {
			report(sink, source, diag.SymbolNotFound, ref.Names, err)
			return types.Error
		}
		chain = resolved
	}

	tyArgs := make([]types.Type, 0, len(ref.TyArgs))
	for _, arg := range ref.TyArgs {
		tyArgs = append(tyArgs, ResolveTypeRef(arg, sc, classes, sink, source))
	}

	parts := make([]types.SimpleClassTy, len(chain))
	for i, sym := range chain {
		parts[i] = types.SimpleClassTy{Sym: sym}
	}
	parts[len(parts)-1].TyArgs = tyArgs
	return types.ClassTy{Parts: parts}
}

func primKind(p tree.PrimName) types.PrimKind {
	switch p {
	case tree.PrimBoolean:
		return types.Boolean
	case tree.PrimByte:
		return types.Byte
	case tree.PrimShort:
		return types.Short
	case tree.PrimChar:
		return types.Char
	case tree.PrimInt:
		return types.Int
	case tree.PrimLong:
		return types.Long
	case tree.PrimFloat:
		return types.Float
	default:
		return types.Double
	}
}

func report(sink diag.Sink, source string, kind diag.Kind, names []string, cause error) {
	if sink == nil {
		return
	}
	sink.Report(diag.Diagnostic{
		Source: source,
		Kind:   kind,
		Args:   []interface{}{names, cause.Error()},
	})
}

func classFlagsOf(mods []tree.Modifier, declKind tree.DeclKind) bound.ClassFlag {
	var f bound.ClassFlag
	for _, m := range mods {
		switch m {
		case tree.ModPublic:
			f |= bound.ClassPublic
		case tree.ModFinal:
			f |= bound.ClassFinal
		case tree.ModAbstract:
			f |= bound.ClassAbstract
		}
	}
	switch declKind {
	case tree.DeclInterface:
		f |= bound.ClassInterface | bound.ClassAbstract
	case tree.DeclEnum:
		f |= bound.ClassEnum
	case tree.DeclAnnotation:
		f |= bound.ClassInterface | bound.ClassAbstract | bound.ClassAnnotation
	default:
		f |= bound.ClassSuper
	}
	return f
}

func fieldFlagsOf(mods []tree.Modifier) bound.FieldFlag {
	var f bound.FieldFlag
	for _, m := range mods {
		switch m {
		case tree.ModPublic:
			f |= bound.FieldPublic
		case tree.ModPrivate:
			f |= bound.FieldPrivate
		case tree.ModProtected:
			f |= bound.FieldProtected
		case tree.ModStatic:
			f |= bound.FieldStatic
		case tree.ModFinal:
			f |= bound.FieldFinal
		case tree.ModVolatile:
			f |= bound.FieldVolatile
		case tree.ModTransient:
			f |= bound.FieldTransient
		}
	}
	return f
}

func methodFlagsOf(mods []tree.Modifier) bound.MethodFlag {
	var f bound.MethodFlag
	for _, m := range mods {
		switch m {
		case tree.ModPublic:
			f |= bound.MethodPublic
		case tree.ModPrivate:
			f |= bound.MethodPrivate
		case tree.ModProtected:
			f |= bound.MethodProtected
		case tree.ModStatic:
			f |= bound.MethodStatic
		case tree.ModFinal:
			f |= bound.MethodFinal
		case tree.ModAbstract:
			f |= bound.MethodAbstract
		case tree.ModNative:
			f |= bound.MethodNative
		case tree.ModSynchronized:
			f |= bound.MethodSynchronized
		case tree.ModStrictfp:
			f |= bound.MethodStrict
		}
	}
	return f
}

func classKindOf(k tree.DeclKind) bound.Kind {
	switch k {
	case tree.DeclInterface:
		return bound.KindInterface
	case tree.DeclEnum:
		return bound.KindEnum
	case tree.DeclAnnotation:
		return bound.KindAnnotation
	case tree.DeclRecord:
		return bound.KindRecord
	default:
		return bound.KindClass
	}
}
