package binder

import (
	"github.com/stackb/headerc/pkg/bound"
	"github.com/stackb/headerc/pkg/classfile"
	"github.com/stackb/headerc/pkg/scope"
	"github.com/stackb/headerc/pkg/symbol"
	"github.com/stackb/headerc/pkg/tree"
	"github.com/stackb/headerc/pkg/types"
)

// memberBinder resolves each class's declared fields and methods: their
// types, flags, thrown-exception lists, and own type parameters (for
// generic methods). Constant initializer expressions and annotation
// default values are attached but not yet evaluated; that is the constant
// binder's job once every class's members are in scope for field-reference
// resolution.
type memberBinder struct {
	binder *Binder
	idx    *indexer
}

func (mb *memberBinder) resolve(sym symbol.ClassSymbol) {
	info := mb.idx.decls[sym]
	tbc, ok := mb.idx.classes.Get(sym)
	if info == nil || !ok {
		return
	}
	decl := info.decl

	tyParamScope := mb.idx.tyParamScopeFor(sym)
	sc := mb.idx.buildScope(sym, tyParamScope)

	var fields []*bound.Field
	var methods []*bound.Method
	for _, m := range decl.Members {
		switch n := m.(type) {
		case *tree.FieldDecl:
			fields = append(fields, mb.bindField(sym, n, sc, info.cu.Source))
		case *tree.MethodDecl:
			methods = append(methods, mb.bindMethod(sym, n, tyParamScope, sc, info.cu.Source))
		}
	}

	tbc.Fields = fields
	tbc.Methods = methods
	tbc.Stage = bound.MemberBound
	mb.idx.classes.Rebind(sym, tbc)
}

func (mb *memberBinder) bindField(owner symbol.ClassSymbol, n *tree.FieldDecl, sc *scope.CompoundScope, source string) *bound.Field {
	f := &bound.Field{
		Sym:   symbol.FieldSymbol{Owner: owner, Name: n.Name},
		Name:  n.Name,
		Type:  ResolveTypeRef(n.Type, sc, mb.idx.lookup, mb.binder.Sink, source),
		Flags: fieldFlagsOf(n.Mods),
	}
	if n.Init != nil {
		f.ConstExpr = n.Init
	}
	if len(n.Annos) > 0 {
		mb.idx.fieldAnnos[f] = n.Annos
	}
	return f
}

func (mb *memberBinder) bindMethod(owner symbol.ClassSymbol, n *tree.MethodDecl, enclosingTyParams scope.TypeParamScope, enclosingScope *scope.CompoundScope, source string) *bound.Method {
	methodTyParams := make(scope.TypeParamScope)
	for k, v := range enclosingTyParams {
		methodTyParams[k] = v
	}
	for _, tp := range n.TyParams {
		methodTyParams[tp.Name] = scope.Result{
			Kind:  scope.ResultTyVar,
			TyVar: symbol.TyVarSymbol{Owner: methodOwnerStringer{owner, n.Name}, Name: tp.Name},
		}
	}
	sc := enclosingScope
	if len(n.TyParams) > 0 {
		sc = mb.idx.rebuildScopeWithTyParams(owner, methodTyParams)
	}

	ret := ResolveTypeRef(n.Return, sc, mb.idx.lookup, mb.binder.Sink, source)
	params := make([]bound.Param, 0, len(n.Params))
	paramTypes := make([]types.Type, 0, len(n.Params))
	for _, p := range n.Params {
		pt := ResolveTypeRef(p.Type, sc, mb.idx.lookup, mb.binder.Sink, source)
		params = append(params, bound.Param{Name: p.Name, Type: pt, Flags: fieldFlagsOf(p.Mods)})
		paramTypes = append(paramTypes, pt)
	}
	thrown := make([]types.Type, 0, len(n.Thrown))
	for _, t := range n.Thrown {
		thrown = append(thrown, ResolveTypeRef(t, sc, mb.idx.lookup, mb.binder.Sink, source))
	}

	tyParams := make([]bound.TyParam, 0, len(n.TyParams))
	for _, tp := range n.TyParams {
		bounds := make([]types.ClassTy, 0, len(tp.Bounds))
		for _, b := range tp.Bounds {
			if ct, ok := ResolveTypeRef(b, sc, mb.idx.lookup, mb.binder.Sink, source).(types.ClassTy); ok {
				bounds = append(bounds, ct)
			}
		}
		if len(bounds) == 0 {
			bounds = append(bounds, types.ClassOf(types.RootObject))
		}
		tyParams = append(tyParams, bound.TyParam{
			Sym:    symbol.TyVarSymbol{Owner: methodOwnerStringer{owner, n.Name}, Name: tp.Name},
			Bounds: types.IntersectionTy{Bounds: bounds},
		})
	}

	desc := classfile.MethodDescriptor(paramTypes, ret)
	m := &bound.Method{
		Sym:      symbol.MethodSymbol{Owner: owner, Name: n.Name, Descriptor: desc},
		Name:     n.Name,
		Return:   ret,
		Params:   params,
		Thrown:   thrown,
		TyParams: tyParams,
		Flags:    methodFlagsOf(n.Mods),
	}
	if n.Variadic {
		m.Flags |= bound.MethodVarargs
	}
	if n.DefaultValue != nil {
		m.DefaultValue = n.DefaultValue
	}
	if len(n.Annos) > 0 {
		mb.idx.methodAnnos[m] = n.Annos
	}
	var paramAnnos [][]tree.Anno
	anyParamAnnos := false
	for _, p := range n.Params {
		paramAnnos = append(paramAnnos, p.Annos)
		if len(p.Annos) > 0 {
			anyParamAnnos = true
		}
	}
	if anyParamAnnos {
		mb.idx.paramAnnos[m] = paramAnnos
	}
	return m
}

// methodOwnerStringer gives a method-scoped type variable a distinct owner
// identity from its declaring class, since TyVarSymbol.Owner only needs to
// implement fmt.Stringer for diagnostic purposes.
type methodOwnerStringer struct {
	class  symbol.ClassSymbol
	method string
}

func (m methodOwnerStringer) String() string {
	return m.class.String() + "#" + m.method
}

// rebuildScopeWithTyParams constructs a fresh scope for a generic method:
// identical to the declaring class's scope except phase 1 (type
// parameters) also includes the method's own.
func (idx *indexer) rebuildScopeWithTyParams(owner symbol.ClassSymbol, tyParams scope.TypeParamScope) *scope.CompoundScope {
	return idx.buildScope(owner, tyParams)
}
