package binder

import (
	"github.com/stackb/headerc/pkg/bound"
	"github.com/stackb/headerc/pkg/diag"
	"github.com/stackb/headerc/pkg/env"
	"github.com/stackb/headerc/pkg/scope"
	"github.com/stackb/headerc/pkg/symbol"
	"github.com/stackb/headerc/pkg/tree"
)

// Binder drives the full fixpoint over one compilation: skeleton indexing,
// hierarchy and type-parameter resolution, member resolution, and constant
// evaluation, in that order. Each stage is a complete pass over every
// class before the next stage begins, since a later stage may depend on
// any class's earlier-stage result regardless of source order.
type Binder struct {
	Classpath         env.Env[*bound.TypeBoundClass]
	ClasspathIndex    *scope.ClassIndex
	ClasspathPackages map[string]scope.SimpleClassScope
	ModuleClasspath   env.ModuleEnv[*bound.ModuleInfo]
	Sink              diag.Sink
}

// NewBinder constructs a Binder. classpath and classpathIndex may be nil for
// a compilation with no external dependencies.
func NewBinder(classpath env.Env[*bound.TypeBoundClass], classpathIndex *scope.ClassIndex, classpathPackages map[string]scope.SimpleClassScope, moduleClasspath env.ModuleEnv[*bound.ModuleInfo], sink diag.Sink) *Binder {
	if sink == nil {
		sink = diag.NewSink()
	}
	return &Binder{
		Classpath:         classpath,
		ClasspathIndex:    classpathIndex,
		ClasspathPackages: classpathPackages,
		ModuleClasspath:   moduleClasspath,
		Sink:              sink,
	}
}

// Result is everything a compilation's binding phase produces.
type Result struct {
	Classes *env.SourceEnv[*bound.TypeBoundClass]
	Modules []*bound.ModuleInfo
	Order   []symbol.ClassSymbol
}

// Bind runs every stage over units and returns the fully const-bound
// result. Diagnostics recorded along the way are available from b.Sink;
// the caller decides whether to gate lowering on diag.Sink.HasErrors.
func (b *Binder) Bind(units []*tree.CompUnit) *Result {
	idx := newIndexer(b)
	for _, cu := range units {
		if cu.Module != nil {
			continue
		}
		idx.indexUnit(cu)
	}

	hb := &hierarchyBinder{binder: b, idx: idx}
	for _, sym := range idx.order {
		hb.resolve(sym)
	}

	mb := &memberBinder{binder: b, idx: idx}
	for _, sym := range idx.order {
		mb.resolve(sym)
	}

	cb := newConstBinder(b, idx)
	for _, sym := range idx.order {
		cb.resolve(sym)
	}

	var modules []*bound.ModuleInfo
	modBinder := &moduleBinder{binder: b, idx: idx}
	for _, cu := range units {
		if cu.Module == nil {
			continue
		}
		modules = append(modules, modBinder.bind(cu))
	}

	return &Result{Classes: idx.classes, Modules: modules, Order: idx.order}
}
