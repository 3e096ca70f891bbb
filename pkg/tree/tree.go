// Package tree defines the input representation the binder consumes from
// the parser: compilation units, declarations, type references,
// annotations, expressions, and module directives. Parsing itself is an
// external collaborator; this package only describes the shape the parser
// is assumed to produce.
package tree

// Pos is a 1-based source position, reported in diagnostics.
type Pos struct {
	Line, Col int
}

// CompUnit is one parsed source file.
type CompUnit struct {
	Source    string // file path, for diagnostics
	Package   []string
	Imports   []Import
	Decls     []*TypeDecl
	Module    *ModuleDecl // non-nil for a module-info unit
}

// Import is a single import declaration.
type Import struct {
	Pos      Pos
	Name     []string
	OnDemand bool // "import a.b.*;"
	Static   bool
}

// DeclKind enumerates the declared-type kinds the parser can produce.
type DeclKind int

const (
	DeclClass DeclKind = iota
	DeclInterface
	DeclEnum
	DeclAnnotation
	DeclRecord
)

// Modifier enumerates source-level modifiers; the binder maps these onto
// the bound.ClassFlag/MethodFlag/FieldFlag bit sets.
type Modifier int

const (
	ModPublic Modifier = iota
	ModPrivate
	ModProtected
	ModStatic
	ModFinal
	ModAbstract
	ModNative
	ModSynchronized
	ModTransient
	ModVolatile
	ModStrictfp
	ModDefault
	ModSealed
	ModNonSealed
)

// TypeDecl is a class/interface/enum/annotation/record declaration,
// possibly nested inside another TypeDecl.
type TypeDecl struct {
	Pos        Pos
	Kind       DeclKind
	Name       string
	Mods       []Modifier
	TyParams   []TyParamDecl
	Superclass *TypeRef // nil unless explicit
	Interfaces []TypeRef
	Permits    [][]string // sealed `permits` clause, simple-name paths
	Members    []Member
	Nested     []*TypeDecl
	Annos      []Anno
}

// TyParamDecl is one declared type parameter, e.g. `<T extends Comparable<T>>`.
type TyParamDecl struct {
	Pos    Pos
	Name   string
	Bounds []TypeRef
}

// Member is implemented by FieldDecl and MethodDecl.
type Member interface {
	memberNode()
}

// FieldDecl is a field declaration.
type FieldDecl struct {
	Pos     Pos
	Name    string
	Type    TypeRef
	Mods    []Modifier
	Init    Expr // nil unless an initializer is present
	Annos   []Anno
}

func (*FieldDecl) memberNode() {}

// ParamDecl is a method parameter.
type ParamDecl struct {
	Pos   Pos
	Name  string
	Type  TypeRef
	Mods  []Modifier
	Annos []Anno
}

// MethodDecl is a method, constructor, or annotation-element declaration.
type MethodDecl struct {
	Pos          Pos
	Name         string
	Return       TypeRef // VoidRef for void methods and constructors
	Params       []ParamDecl
	Variadic     bool
	Thrown       []TypeRef
	TyParams     []TyParamDecl
	Mods         []Modifier
	DefaultValue Expr // non-nil only for annotation-element methods with a default
	Annos        []Anno
}

func (*MethodDecl) memberNode() {}

// TypeRefKind enumerates the shapes a source type reference can take.
type TypeRefKind int

const (
	RefSimple TypeRefKind = iota
	RefQualified
	RefParameterized
	RefWildcard
	RefArray
	RefPrimitive
	RefVoid
)

// PrimName enumerates the source spelling of a primitive reference.
type PrimName int

const (
	PrimBoolean PrimName = iota
	PrimByte
	PrimShort
	PrimChar
	PrimInt
	PrimLong
	PrimFloat
	PrimDouble
)

// WildKind enumerates the wildcard shapes a RefWildcard can take.
type WildKind int

const (
	WildNone WildKind = iota // "?"
	WildExtends
	WildSuper
)

// TypeRef is a source-level type reference.
type TypeRef struct {
	Pos Pos
	Kind TypeRefKind

	// RefSimple / RefQualified / RefParameterized
	Names  []string
	TyArgs []TypeRef

	// RefWildcard
	Wild  WildKind
	Bound *TypeRef

	// RefArray
	Elem *TypeRef

	// RefPrimitive
	Prim PrimName

	Annos []Anno
}

// VoidRef is the canonical void type reference.
var VoidRef = TypeRef{Kind: RefVoid}

// Anno is a source annotation: its type name and element-value pairs.
type Anno struct {
	Pos    Pos
	Name   []string
	Values []AnnoElement
}

// AnnoElement is one `name = value` pair; Name is "value" for a positional
// single-element annotation.
type AnnoElement struct {
	Name  string
	Value Expr
}

// ModuleDecl is a parsed `module-info` unit.
type ModuleDecl struct {
	Pos        Pos
	Name       string
	Open       bool
	Annos      []Anno
	Directives []ModDirective
}

// ModDirectiveKind enumerates the five module directive kinds.
type ModDirectiveKind int

const (
	DirRequires ModDirectiveKind = iota
	DirExports
	DirOpens
	DirUses
	DirProvides
)

// ModDirective is implemented by each of the five directive node types.
type ModDirective interface {
	directiveKind() ModDirectiveKind
}

type ModRequires struct {
	Pos         Pos
	ModuleName  string
	Transitive  bool
	Static      bool
}

func (*ModRequires) directiveKind() ModDirectiveKind { return DirRequires }

type ModExports struct {
	Pos     Pos
	Package string
	To      []string
}

func (*ModExports) directiveKind() ModDirectiveKind { return DirExports }

type ModOpens struct {
	Pos     Pos
	Package string
	To      []string
}

func (*ModOpens) directiveKind() ModDirectiveKind { return DirOpens }

type ModUses struct {
	Pos      Pos
	TypeName []string
}

func (*ModUses) directiveKind() ModDirectiveKind { return DirUses }

type ModProvides struct {
	Pos       Pos
	TypeName  []string
	ImplNames [][]string
}

func (*ModProvides) directiveKind() ModDirectiveKind { return DirProvides }
