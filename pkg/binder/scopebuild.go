package binder

import (
	"strings"

	"github.com/stackb/headerc/pkg/scope"
	"github.com/stackb/headerc/pkg/symbol"
)

// implicitRootPackage is the language-root package consulted as the last
// resolution phase, e.g. java.lang.
const implicitRootPackage = "java.lang"

// buildScope constructs the seven-phase CompoundScope for sym, given
// tyParams already declared in enclosing scope (own declaration plus every
// enclosing owner's, nearest-declaring class taking precedence on a name
// collision since it is applied last into the flat map).
func (idx *indexer) buildScope(sym symbol.ClassSymbol, tyParams scope.TypeParamScope) *scope.CompoundScope {
	info := idx.decls[sym]
	if info == nil {
		return scope.NewCompoundScope(idx.index)
	}

	phase1 := tyParams
	phase2 := scope.NewMemberScope(sym, idx.lookup)
	phase3 := make(scope.SimpleClassScope, len(info.topSibs))
	for _, s := range info.topSibs {
		phase3[s.SimpleName()] = scope.Result{Kind: scope.ResultClass, Sym: s}
	}

	phase4 := make(scope.SimpleClassScope)
	for _, imp := range info.cu.Imports {
		if imp.OnDemand {
			continue
		}
		if sym2, ok := idx.lookupDotted(imp.Name); ok {
			phase4[imp.Name[len(imp.Name)-1]] = scope.Result{Kind: scope.ResultClass, Sym: sym2}
		}
	}

	pkgDotted := strings.Join(info.cu.Package, ".")
	phase5 := idx.packageScope(pkgDotted)

	var onDemandSources []scope.SimpleClassScope
	for _, imp := range info.cu.Imports {
		if !imp.OnDemand || imp.Static {
			continue
		}
		onDemandSources = append(onDemandSources, idx.packageScope(strings.Join(imp.Name, ".")))
	}
	phase6 := scope.NewOnDemandScope(onDemandSources...)

	phase7 := scope.NewOnDemandScope(idx.packageScope(implicitRootPackage))

	return scope.NewCompoundScope(idx.index, phase1, phase2, phase3, phase4, phase5, phase6, phase7)
}

// packageScope returns the registered simple-name scope for pkgDotted,
// merging source-compiled classes with any classpath package table the
// caller supplied; an unknown package yields an empty (never-nil) scope so
// on-demand phases degrade to "no match" rather than a nil dereference.
func (idx *indexer) packageScope(pkgDotted string) scope.SimpleClassScope {
	merged := make(scope.SimpleClassScope)
	if src, ok := idx.byPkg[pkgDotted]; ok {
		for k, v := range src {
			merged[k] = v
		}
	}
	if idx.b.ClasspathPackages != nil {
		if cp, ok := idx.b.ClasspathPackages[pkgDotted]; ok {
			for k, v := range cp {
				if _, exists := merged[k]; !exists {
					merged[k] = v
				}
			}
		}
	}
	return merged
}

func (idx *indexer) lookupDotted(names []string) (symbol.ClassSymbol, bool) {
	dotted := strings.Join(names, ".")
	sym, _, ok := idx.index.Lookup(dotted)
	return sym, ok
}

// tyParamScopeFor collects the declared type-parameter names visible at
// sym's declaration: sym's own plus every lexically enclosing owner's, so a
// bound referencing an enclosing class's type parameter resolves.
func (idx *indexer) tyParamScopeFor(sym symbol.ClassSymbol) scope.TypeParamScope {
	out := make(scope.TypeParamScope)
	var chain []symbol.ClassSymbol
	cur := sym
	for {
		chain = append(chain, cur)
		info := idx.decls[cur]
		if info == nil || info.owner == nil {
			break
		}
		cur = *info.owner
	}
	for i := len(chain) - 1; i >= 0; i-- {
		info := idx.decls[chain[i]]
		if info == nil {
			continue
		}
		for _, tp := range info.decl.TyParams {
			out[tp.Name] = scope.Result{
				Kind:  scope.ResultTyVar,
				TyVar: symbol.TyVarSymbol{Owner: chain[i], Name: tp.Name},
			}
		}
	}
	return out
}
