package binder

import (
	"github.com/stackb/headerc/pkg/bound"
	"github.com/stackb/headerc/pkg/constant"
	"github.com/stackb/headerc/pkg/scope"
	"github.com/stackb/headerc/pkg/symbol"
	"github.com/stackb/headerc/pkg/tree"
	"github.com/stackb/headerc/pkg/types"
)

// constBinder runs last: it evaluates field initializers, annotation
// element defaults, and every raw annotation literal attached by the
// member stage, each against a scope rebuilt for that declaration's own
// class so an unqualified field or type reference resolves the same way
// it would have at the point of declaration.
type constBinder struct {
	binder *Binder
	idx    *indexer
}

func newConstBinder(b *Binder, idx *indexer) *constBinder {
	return &constBinder{binder: b, idx: idx}
}

func (cb *constBinder) resolve(sym symbol.ClassSymbol) {
	tbc, ok := cb.idx.classes.Get(sym)
	if !ok {
		return
	}
	sc := cb.idx.buildScope(sym, cb.idx.tyParamScopeFor(sym))
	evaluator := constant.NewEvaluator(cb.binder.Sink, cb.makeFieldLookup(sym, sc))
	annoEval := constant.NewAnnotationEvaluator(evaluator, cb.makeClassLookup(sc), cb.annoTypeLookup())

	for _, f := range tbc.Fields {
		if f.ConstExpr != nil {
			v := evaluator.EvaluateField(f)
			f.ConstValue = &v
		}
		f.Annos = cb.evalAnnos(cb.idx.fieldAnnos[f], annoEval)
	}

	for _, m := range tbc.Methods {
		if m.DefaultValue != nil {
			if expr, ok := m.DefaultValue.(tree.Expr); ok {
				if v, err := evaluator.Evaluate(expr); err == nil {
					v = coerceDefault(v, m.Return)
					m.DefaultConst = &v
				}
			}
		}
		m.Annos = cb.evalAnnos(cb.idx.methodAnnos[m], annoEval)
		if raw, ok := cb.idx.paramAnnos[m]; ok {
			m.ParamAnnos = make([][]*bound.AnnoInfo, len(raw))
			for i, annos := range raw {
				m.ParamAnnos[i] = cb.evalAnnos(annos, annoEval)
			}
		}
	}

	tbc.Annos = cb.evalAnnos(cb.idx.classAnnos[sym], annoEval)
	tbc.Stage = bound.ConstBound
	cb.idx.classes.Rebind(sym, tbc)
}

func (cb *constBinder) evalAnnos(raw []tree.Anno, annoEval *constant.AnnotationEvaluator) []*bound.AnnoInfo {
	if len(raw) == 0 {
		return nil
	}
	out := make([]*bound.AnnoInfo, 0, len(raw))
	for _, a := range raw {
		info, err := annoEval.Evaluate(a)
		if err != nil {
			continue
		}
		out = append(out, info)
	}
	return out
}

// coerceDefault applies the scalar-to-single-element-array rule to an
// annotation element's default value, mirroring the rule the annotation
// evaluator applies to explicitly-supplied arguments.
func coerceDefault(v bound.Const, ret types.Type) bound.Const {
	if v.Kind == bound.ArrayConst || ret == nil || ret.Kind() != types.TagArray {
		return v
	}
	return bound.Const{Kind: bound.ArrayConst, Elements: []bound.Const{v}}
}

func (cb *constBinder) makeFieldLookup(owner symbol.ClassSymbol, sc *scope.CompoundScope) constant.FieldLookup {
	return func(path []string) (*bound.Field, bool) {
		if len(path) == 0 {
			return nil, false
		}
		if len(path) == 1 {
			return cb.findField(owner, path[0])
		}
		result, err := sc.Lookup(path[:len(path)-1])
		if err != nil || result == nil || result.Kind != scope.ResultClass {
			return nil, false
		}
		target := result.Sym
		if len(result.Remaining) > 0 {
			resolved, err := scope.ResolveNested(cb.idx.lookup, target, result.Remaining)
			if err != nil {
				return nil, false
			}
			target = resolved
		}
		return cb.findField(target, path[len(path)-1])
	}
}

func (cb *constBinder) findField(sym symbol.ClassSymbol, name string) (*bound.Field, bool) {
	seen := map[symbol.ClassSymbol]bool{}
	queue := []symbol.ClassSymbol{sym}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if seen[cur] {
			continue
		}
		seen[cur] = true
		tbc, ok := cb.idx.lookup.Get(cur)
		if !ok {
			continue
		}
		for _, f := range tbc.Fields {
			if f.Name == name {
				return f, true
			}
		}
		for _, super := range tbc.AllSupertypes() {
			queue = append(queue, super.Sym())
		}
	}
	return nil, false
}

func (cb *constBinder) makeClassLookup(sc *scope.CompoundScope) constant.ClassLookup {
	return func(path []string) (symbol.ClassSymbol, bool) {
		if len(path) == 0 {
			return symbol.ClassSymbol{}, false
		}
		result, err := sc.Lookup(path)
		if err != nil || result == nil || result.Kind != scope.ResultClass {
			return symbol.ClassSymbol{}, false
		}
		sym := result.Sym
		if len(result.Remaining) > 0 {
			resolved, err := scope.ResolveNested(cb.idx.lookup, sym, result.Remaining)
			if err != nil {
				return symbol.ClassSymbol{}, false
			}
			sym = resolved
		}
		return sym, true
	}
}

func (cb *constBinder) annoTypeLookup() constant.AnnoTypeLookup {
	return func(sym symbol.ClassSymbol) (*bound.TypeBoundClass, bool) {
		return cb.idx.lookup.Get(sym)
	}
}
