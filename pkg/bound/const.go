package bound

import (
	"github.com/stackb/headerc/pkg/symbol"
	"github.com/stackb/headerc/pkg/types"
)

// ConstKind discriminates the closed set of compile-time constant shapes
// produced by the constant evaluator and consumed by annotation argument
// coercion and ConstantValue attribute emission.
type ConstKind int

const (
	BoolConst ConstKind = iota
	ByteConst
	CharConst
	ShortConst
	IntConst
	LongConst
	FloatConst
	DoubleConst
	StringConst
	EnumConst
	ClassConst
	ArrayConst
	AnnoConst
)

// Const is a tagged compile-time value: a boxed primitive, a string, an
// opaque enum-constant or class-literal reference, an array of Const, or a
// nested annotation literal.
type Const struct {
	Kind ConstKind

	// Primitive/string payloads. Exactly one is meaningful per Kind.
	Bool   bool
	Byte   int8
	Char   uint16
	Short  int16
	Int    int32
	Long   int64
	Float  float32
	Double float64
	Str    string

	// EnumConst: the enum class and the constant's field name.
	EnumSym  symbol.ClassSymbol
	EnumName string

	// ClassConst: the referenced type, opaque (not evaluated further).
	ClassRef types.Type

	// ArrayConst: element values in source order.
	Elements []Const

	// AnnoConst: a nested annotation literal.
	Anno *AnnoInfo
}

// Zero returns the zero-valued Const for kind, used when evaluation fails
// and the pipeline must continue rather than abort the whole compilation.
func Zero(kind ConstKind) Const {
	switch kind {
	case StringConst:
		return Const{Kind: StringConst, Str: ""}
	case ArrayConst:
		return Const{Kind: ArrayConst, Elements: nil}
	default:
		return Const{Kind: kind}
	}
}

// AnnoInfo is a resolved annotation: the annotation's class symbol and a map
// from declared element name to its coerced Const value. Element order is
// not semantically significant but SourceOrder preserves it for diagnostics.
type AnnoInfo struct {
	Sym         symbol.ClassSymbol
	Values      map[string]Const
	SourceOrder []string
}

// Get returns the value bound to name, if any.
func (a *AnnoInfo) Get(name string) (Const, bool) {
	v, ok := a.Values[name]
	return v, ok
}
