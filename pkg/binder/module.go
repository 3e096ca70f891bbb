package binder

import (
	"strings"

	"github.com/stackb/headerc/pkg/bound"
	"github.com/stackb/headerc/pkg/constant"
	"github.com/stackb/headerc/pkg/diag"
	"github.com/stackb/headerc/pkg/scope"
	"github.com/stackb/headerc/pkg/symbol"
	"github.com/stackb/headerc/pkg/tree"
)

// moduleBinder resolves a parsed module-info unit into its bound form,
// synthesizing the implicit "requires java.base" directive every module
// carries whether or not source spells it out.
type moduleBinder struct {
	binder *Binder
	idx    *indexer
}

func (mb *moduleBinder) bind(cu *tree.CompUnit) *bound.ModuleInfo {
	decl := cu.Module
	info := &bound.ModuleInfo{Name: decl.Name}
	if decl.Open {
		info.Flags |= bound.ModuleOpen
	}

	sawJavaBase := false
	for _, d := range decl.Directives {
		switch n := d.(type) {
		case *tree.ModRequires:
			if n.ModuleName == symbol.JavaBase.Name {
				sawJavaBase = true
			}
			req := bound.RequireInfo{ModuleName: n.ModuleName}
			if n.Transitive {
				req.Flags |= bound.ModuleTransitive
			}
			if n.Static {
				req.Flags |= bound.ModuleStaticPhase
			}
			if mb.binder.ModuleClasspath != nil {
				if required, ok := mb.binder.ModuleClasspath.GetModule(symbol.ModuleSymbol{Name: n.ModuleName}); ok {
					req.Version = required.Version
				} else {
					mb.report(cu.Source, "requires "+n.ModuleName+": module not found on classpath")
				}
			}
			info.Requires = append(info.Requires, req)
		case *tree.ModExports:
			info.Exports = append(info.Exports, bound.ExportInfo{Package: n.Package, ToModules: n.To})
		case *tree.ModOpens:
			info.Opens = append(info.Opens, bound.OpenInfo{Package: n.Package, ToModules: n.To})
		case *tree.ModUses:
			if sym, ok := mb.resolveTypeName(n.TypeName); ok {
				info.Uses = append(info.Uses, bound.UseInfo{Service: sym})
			}
		case *tree.ModProvides:
			service, ok := mb.resolveTypeName(n.TypeName)
			if !ok {
				continue
			}
			p := bound.ProvideInfo{Service: service}
			for _, implPath := range n.ImplNames {
				if impl, ok := mb.resolveTypeName(implPath); ok {
					p.Impls = append(p.Impls, impl)
				}
			}
			info.Provides = append(info.Provides, p)
		}
	}

	if !sawJavaBase {
		req := bound.RequireInfo{
			ModuleName: symbol.JavaBase.Name,
			Flags:      bound.ModuleMandated,
		}
		if mb.binder.ModuleClasspath != nil {
			if javaBase, ok := mb.binder.ModuleClasspath.GetModule(symbol.ModuleSymbol{Name: symbol.JavaBase.Name}); ok {
				req.Version = javaBase.Version
			}
		}
		info.Requires = append(info.Requires, req)
	}

	if len(decl.Annos) > 0 {
		sc := scope.NewCompoundScope(mb.idx.index)
		evaluator := constant.NewEvaluator(mb.binder.Sink, func([]string) (*bound.Field, bool) { return nil, false })
		annoEval := constant.NewAnnotationEvaluator(evaluator, mb.classLookup(sc), mb.annoTypeLookup())
		for _, a := range decl.Annos {
			if resolved, err := annoEval.Evaluate(a); err == nil {
				info.Annos = append(info.Annos, resolved)
			}
		}
	}

	return info
}

func (mb *moduleBinder) resolveTypeName(path []string) (symbol.ClassSymbol, bool) {
	dotted := strings.Join(path, ".")
	sym, remaining, ok := mb.idx.index.Lookup(dotted)
	if !ok {
		return symbol.ClassSymbol{}, false
	}
	if len(remaining) > 0 {
		resolved, err := scope.ResolveNested(mb.idx.lookup, sym, remaining)
		if err != nil {
			return symbol.ClassSymbol{}, false
		}
		return resolved, true
	}
	return sym, true
}

func (mb *moduleBinder) classLookup(sc *scope.CompoundScope) constant.ClassLookup {
	return func(path []string) (symbol.ClassSymbol, bool) {
		return mb.resolveTypeName(path)
	}
}

func (mb *moduleBinder) annoTypeLookup() constant.AnnoTypeLookup {
	return func(sym symbol.ClassSymbol) (*bound.TypeBoundClass, bool) {
		return mb.idx.lookup.Get(sym)
	}
}

func (mb *moduleBinder) report(source, msg string) {
	if mb.binder.Sink == nil {
		return
	}
	mb.binder.Sink.Report(diag.Diagnostic{Source: source, Kind: diag.ModuleNotFound, Args: []interface{}{msg}})
}
