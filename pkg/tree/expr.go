package tree

// ExprKind enumerates the closed set of expression node shapes the constant
// evaluator understands.
type ExprKind int

const (
	ExprLiteral ExprKind = iota
	ExprUnary
	ExprBinary
	ExprConditional
	ExprConcat // string concatenation via '+'
	ExprCast
	ExprParen
	ExprFieldRef   // reference to a (possibly qualified) static final field
	ExprEnumRef    // reference to an enum constant
	ExprClassLit   // "Foo.class" / "Foo[].class"
	ExprArrayInit  // "{1, 2, 3}"
	ExprAnnoLit    // nested annotation literal as an argument value
)

// Expr is implemented by every expression node kind.
type Expr interface {
	ExprKind() ExprKind
	Position() Pos
}

// LitKind enumerates literal payload shapes.
type LitKind int

const (
	LitBool LitKind = iota
	LitChar
	LitInt
	LitLong
	LitFloat
	LitDouble
	LitString
	LitNull
)

type Literal struct {
	Pos  Pos
	Kind LitKind

	Bool   bool
	Char   uint16
	Int    int32
	Long   int64
	Float  float32
	Double float64
	Str    string
}

func (l *Literal) ExprKind() ExprKind { return ExprLiteral }
func (l *Literal) Position() Pos      { return l.Pos }

// UnaryOp enumerates the supported unary operators.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpPos
	OpNot     // logical !
	OpBitNot  // bitwise ~
)

type Unary struct {
	Pos Pos
	Op  UnaryOp
	X   Expr
}

func (u *Unary) ExprKind() ExprKind { return ExprUnary }
func (u *Unary) Position() Pos      { return u.Pos }

// BinaryOp enumerates the supported binary operators: arithmetic, bitwise,
// shift, relational, and logical.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpAnd // bitwise &
	OpOr  // bitwise |
	OpXor
	OpShl
	OpShr  // signed >>
	OpUshr // unsigned >>>
	OpLt
	OpLe
	OpGt
	OpGe
	OpEq
	OpNe
	OpLogAnd // &&
	OpLogOr  // ||
)

type Binary struct {
	Pos   Pos
	Op    BinaryOp
	X, Y  Expr
}

func (b *Binary) ExprKind() ExprKind { return ExprBinary }
func (b *Binary) Position() Pos      { return b.Pos }

// Conditional is the ternary `cond ? t : f` operator.
type Conditional struct {
	Pos        Pos
	Cond, T, F Expr
}

func (c *Conditional) ExprKind() ExprKind { return ExprConditional }
func (c *Conditional) Position() Pos      { return c.Pos }

// Concat is left-folded string concatenation: a chain of '+' where at least
// one operand is a string, per the language's primitive-to-string widening
// rule.
type Concat struct {
	Pos      Pos
	Operands []Expr
}

func (c *Concat) ExprKind() ExprKind { return ExprConcat }
func (c *Concat) Position() Pos      { return c.Pos }

// Cast applies a primitive or string target type to X.
type Cast struct {
	Pos    Pos
	Target TypeRef
	X      Expr
}

func (c *Cast) ExprKind() ExprKind { return ExprCast }
func (c *Cast) Position() Pos      { return c.Pos }

// Paren is a parenthesized expression, kept distinct so diagnostics can
// point at the inner expression's true position if needed.
type Paren struct {
	Pos Pos
	X   Expr
}

func (p *Paren) ExprKind() ExprKind { return ExprParen }
func (p *Paren) Position() Pos      { return p.Pos }

// FieldRef references a (possibly qualified) field, resolved and evaluated
// recursively by the constant evaluator.
type FieldRef struct {
	Pos  Pos
	Path []string
}

func (f *FieldRef) ExprKind() ExprKind { return ExprFieldRef }
func (f *FieldRef) Position() Pos      { return f.Pos }

// EnumRef references an enum constant; opaque to the evaluator.
type EnumRef struct {
	Pos  Pos
	Path []string
}

func (e *EnumRef) ExprKind() ExprKind { return ExprEnumRef }
func (e *EnumRef) Position() Pos      { return e.Pos }

// ClassLit is a class-literal expression, e.g. "Foo.class".
type ClassLit struct {
	Pos  Pos
	Type TypeRef
}

func (c *ClassLit) ExprKind() ExprKind { return ExprClassLit }
func (c *ClassLit) Position() Pos      { return c.Pos }

// ArrayInit is an array-initializer expression, e.g. "{1, 2, 3}".
type ArrayInit struct {
	Pos      Pos
	Elements []Expr
}

func (a *ArrayInit) ExprKind() ExprKind { return ExprArrayInit }
func (a *ArrayInit) Position() Pos      { return a.Pos }

// AnnoLit is a nested annotation literal used as an annotation argument.
type AnnoLit struct {
	Pos  Pos
	Anno Anno
}

func (a *AnnoLit) ExprKind() ExprKind { return ExprAnnoLit }
func (a *AnnoLit) Position() Pos      { return a.Pos }
