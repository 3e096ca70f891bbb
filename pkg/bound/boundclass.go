package bound

import (
	"github.com/stackb/headerc/pkg/symbol"
	"github.com/stackb/headerc/pkg/types"
)

// Stage tracks how far a TypeBoundClass has progressed through the three
// monotonic binding stages.
type Stage int

const (
	HeaderBound Stage = iota
	MemberBound
	ConstBound
)

// TyParam is one declared type parameter: its symbol and the intersection
// of its bounds.
type TyParam struct {
	Sym    symbol.TyVarSymbol
	Bounds types.IntersectionTy
}

// Param is one method parameter.
type Param struct {
	Name  string
	Type  types.Type
	Flags FieldFlag // param flags reuse the field bit space (final/synthetic)
}

// Field is a bound field declaration. ConstExpr is attached, not evaluated,
// until the constant evaluator runs; ConstValue is populated once it has.
type Field struct {
	Sym       symbol.FieldSymbol
	Name      string
	Type      types.Type
	Flags     FieldFlag
	ConstExpr interface{} // tree.Expr; interface{} here to avoid an import cycle with pkg/tree
	ConstValue *Const
	Annos     []*AnnoInfo
}

// Method is a bound method declaration.
type Method struct {
	Sym          symbol.MethodSymbol
	Name         string
	Return       types.Type
	Params       []Param
	Thrown       []types.Type
	TyParams     []TyParam
	Flags        MethodFlag
	DefaultValue interface{} // tree.Expr for an annotation element's default, if any
	DefaultConst *Const
	Annos        []*AnnoInfo
	ParamAnnos   [][]*AnnoInfo // parallel to Params
}

// TypeBoundClass is the fully resolved symbolic description of one declared
// type, progressing through Stage as binding advances.
type TypeBoundClass struct {
	Sym   symbol.ClassSymbol
	Kind  Kind
	Flags ClassFlag
	Stage Stage

	Superclass *types.ClassTy
	Interfaces []types.ClassTy

	TyParams []TyParam

	Fields  []*Field
	Methods []*Method

	Nested []symbol.ClassSymbol
	Owner  *symbol.ClassSymbol

	Annos []*AnnoInfo

	// PermittedSubclasses supports sealed-class hierarchies; empty unless
	// the declaration is sealed.
	PermittedSubclasses []symbol.ClassSymbol
}

// AllSupertypes returns the superclass (if any) followed by interfaces, the
// order the hierarchy binder resolves and the member binder walks for
// inherited-name lookup.
func (c *TypeBoundClass) AllSupertypes() []types.ClassTy {
	var out []types.ClassTy
	if c.Superclass != nil {
		out = append(out, *c.Superclass)
	}
	out = append(out, c.Interfaces...)
	return out
}
