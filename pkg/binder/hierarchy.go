package binder

import (
	"github.com/stackb/headerc/pkg/bound"
	"github.com/stackb/headerc/pkg/diag"
	"github.com/stackb/headerc/pkg/scope"
	"github.com/stackb/headerc/pkg/symbol"
	"github.com/stackb/headerc/pkg/tree"
	"github.com/stackb/headerc/pkg/types"
)

// hierarchyBinder resolves each class's declared type-parameter bounds,
// superclass, interfaces, and sealed permits list. A CycleDetector guards
// against a supertype reference chain looping back on itself; a class
// caught in a cycle falls back to extending the root object type so the
// rest of the compilation can still proceed.
type hierarchyBinder struct {
	binder *Binder
	idx    *indexer
	cycles *scope.CycleDetector
	done   map[symbol.ClassSymbol]bool
}

func (hb *hierarchyBinder) resolve(sym symbol.ClassSymbol) {
	if hb.done == nil {
		hb.done = make(map[symbol.ClassSymbol]bool)
		hb.cycles = scope.NewCycleDetector()
	}
	hb.resolveOne(sym)
}

func (hb *hierarchyBinder) resolveOne(sym symbol.ClassSymbol) {
	if hb.done[sym] {
		return
	}
	if !hb.cycles.Enter(sym) {
		hb.report(sym, diag.CyclicHierarchy, "cyclic type hierarchy")
		fallback := types.ClassOf(types.RootObject)
		hb.finish(sym, nil, &fallback, nil, nil)
		return
	}
	defer hb.cycles.Exit(sym)

	info := hb.idx.decls[sym]
	if info == nil {
		hb.done[sym] = true
		return
	}
	decl := info.decl

	tyParamScope := hb.idx.tyParamScopeFor(sym)
	sc := hb.idx.buildScope(sym, tyParamScope)

	tyParams := make([]bound.TyParam, 0, len(decl.TyParams))
	for _, tp := range decl.TyParams {
		tyParams = append(tyParams, bound.TyParam{
			Sym:    symbol.TyVarSymbol{Owner: sym, Name: tp.Name},
			Bounds: hb.resolveBounds(tp.Bounds, sc, info.cu.Source),
		})
	}

	var superclass *types.ClassTy
	switch {
	case decl.Superclass != nil:
		t := hb.resolveClassType(*decl.Superclass, sc, info.cu.Source)
		superclass = &t
	case sym != types.RootObject:
		t := types.ClassOf(types.RootObject)
		superclass = &t
	}

	interfaces := make([]types.ClassTy, 0, len(decl.Interfaces))
	for _, ifaceRef := range decl.Interfaces {
		interfaces = append(interfaces, hb.resolveClassType(ifaceRef, sc, info.cu.Source))
	}

	var permits []symbol.ClassSymbol
	for _, path := range decl.Permits {
		if len(path) == 0 {
			continue
		}
		if result, err := sc.Lookup(path); err == nil && result != nil && result.Kind == scope.ResultClass {
			permits = append(permits, result.Sym)
		}
	}

	// Resolve each supertype's own hierarchy first, so a chain that loops
	// back to sym re-enters it and is caught by the cycle detector.
	supers := interfaces
	if superclass != nil {
		supers = append([]types.ClassTy{*superclass}, interfaces...)
	}
	for _, st := range supers {
		hb.resolveOne(st.Sym())
	}
	if hb.done[sym] {
		return // a cycle through sym already finished it with the root-object fallback
	}

	hb.finish(sym, tyParams, superclass, interfaces, permits)
}

func (hb *hierarchyBinder) resolveClassType(ref tree.TypeRef, sc *scope.CompoundScope, source string) types.ClassTy {
	t := ResolveTypeRef(ref, sc, hb.idx.lookup, hb.binder.Sink, source)
	if ct, ok := t.(types.ClassTy); ok {
		return ct
	}
	return types.ClassOf(types.RootObject)
}

// resolveBounds resolves a type parameter's declared bound list to an
// intersection type: the first bound if it names a class, followed by
// every interface bound. An unbounded type parameter's implicit bound is
// the root object type.
func (hb *hierarchyBinder) resolveBounds(refs []tree.TypeRef, sc *scope.CompoundScope, source string) types.IntersectionTy {
	if len(refs) == 0 {
		return types.IntersectionTy{Bounds: []types.ClassTy{types.ClassOf(types.RootObject)}}
	}
	bounds := make([]types.ClassTy, 0, len(refs))
	for _, ref := range refs {
		bounds = append(bounds, hb.resolveClassType(ref, sc, source))
	}
	return types.IntersectionTy{Bounds: bounds}
}

func (hb *hierarchyBinder) finish(sym symbol.ClassSymbol, tyParams []bound.TyParam, superclass *types.ClassTy, interfaces []types.ClassTy, permits []symbol.ClassSymbol) {
	tbc, ok := hb.idx.classes.Get(sym)
	if !ok {
		hb.done[sym] = true
		return
	}
	tbc.TyParams = tyParams
	tbc.Superclass = superclass
	tbc.Interfaces = interfaces
	tbc.PermittedSubclasses = permits
	tbc.Stage = bound.HeaderBound
	hb.idx.classes.Rebind(sym, tbc)
	hb.done[sym] = true
}

func (hb *hierarchyBinder) report(sym symbol.ClassSymbol, kind diag.Kind, msg string) {
	if hb.binder.Sink == nil {
		return
	}
	hb.binder.Sink.Report(diag.Diagnostic{Kind: kind, Args: []interface{}{sym.String(), msg}})
}
