// Package constant implements the compile-time constant evaluator:
// literals, the standard operators with the language's widening and
// two's-complement wrap-around rules, conditional and concatenation
// expressions, casts, field references (resolved and evaluated recursively
// with a cycle detector), and the opaque enum/class-literal/array/nested-
// annotation forms.
package constant

import (
	"fmt"
	"math"

	"github.com/stackb/headerc/pkg/bound"
	"github.com/stackb/headerc/pkg/diag"
	"github.com/stackb/headerc/pkg/tree"
)

// FieldLookup resolves a field reference (possibly qualified) to the field
// declaration that must be evaluated to satisfy it, or ok=false if it does
// not name a static final primitive-or-string field. This is supplied by
// the member binder's scope, not implemented here, since it needs full
// name-resolution machinery already built for types.
type FieldLookup func(path []string) (*bound.Field, bool)

// Evaluator evaluates expression trees into Const values. Evaluation is
// pure and deterministic for a given (tree, scope) pair; results are
// memoized per field symbol so cross-field references are O(n) overall
// rather than re-walking shared dependencies for every referencing field.
type Evaluator struct {
	sink     diag.Sink
	resolve  FieldLookup
	memo     map[*bound.Field]bound.Const
	visiting map[*bound.Field]bool
}

// NewEvaluator constructs an Evaluator reporting failures to sink and
// resolving field references via resolve.
func NewEvaluator(sink diag.Sink, resolve FieldLookup) *Evaluator {
	return &Evaluator{
		sink:     sink,
		resolve:  resolve,
		memo:     make(map[*bound.Field]bound.Const),
		visiting: make(map[*bound.Field]bool),
	}
}

// EvaluateField evaluates f's initializer if not already memoized,
// returning a zero-valued Const and recording a diagnostic on a cycle or
// an evaluation failure, so a single bad constant does not abort the rest
// of the batch.
func (e *Evaluator) EvaluateField(f *bound.Field) bound.Const {
	if v, ok := e.memo[f]; ok {
		return v
	}
	if e.visiting[f] {
		e.report(f, diag.BadConstantExpression, "cyclic constant reference through "+f.Sym.String())
		return kindFor(f)
	}
	if f.ConstExpr == nil {
		return kindFor(f)
	}
	expr, ok := f.ConstExpr.(tree.Expr)
	if !ok {
		return kindFor(f)
	}
	e.visiting[f] = true
	v, err := e.Evaluate(expr)
	delete(e.visiting, f)
	if err != nil {
		e.report(f, diag.BadConstantExpression, err.Error())
		v = kindFor(f)
	}
	e.memo[f] = v
	return v
}

func kindFor(f *bound.Field) bound.Const {
	// A best-effort zero value; the caller already has f.Type available to
	// pick a more specific kind if it cares, but IntConst's zero value
	// (0) is a safe default for "evaluation failed" bookkeeping.
	return bound.Zero(bound.IntConst)
}

func (e *Evaluator) report(f *bound.Field, kind diag.Kind, msg string) {
	if e.sink == nil {
		return
	}
	e.sink.Report(diag.Diagnostic{Kind: kind, Args: []interface{}{f.Sym.String(), msg}})
}

// Evaluate evaluates a single expression tree to a Const.
func (e *Evaluator) Evaluate(expr tree.Expr) (bound.Const, error) {
	switch n := expr.(type) {
	case *tree.Literal:
		return evalLiteral(n), nil
	case *tree.Paren:
		return e.Evaluate(n.X)
	case *tree.Unary:
		x, err := e.Evaluate(n.X)
		if err != nil {
			return bound.Const{}, err
		}
		return evalUnary(n.Op, x)
	case *tree.Binary:
		x, err := e.Evaluate(n.X)
		if err != nil {
			return bound.Const{}, err
		}
		y, err := e.Evaluate(n.Y)
		if err != nil {
			return bound.Const{}, err
		}
		return evalBinary(n.Op, x, y)
	case *tree.Conditional:
		c, err := e.Evaluate(n.Cond)
		if err != nil {
			return bound.Const{}, err
		}
		if c.Kind != bound.BoolConst {
			return bound.Const{}, fmt.Errorf("conditional guard is not boolean")
		}
		if c.Bool {
			return e.Evaluate(n.T)
		}
		return e.Evaluate(n.F)
	case *tree.Concat:
		return e.evalConcat(n)
	case *tree.Cast:
		x, err := e.Evaluate(n.X)
		if err != nil {
			return bound.Const{}, err
		}
		return evalCast(n.Target, x)
	case *tree.FieldRef:
		return e.evalFieldRef(n)
	case *tree.EnumRef:
		// Opaque: the enum class is resolved by the caller (which has
		// scope access); here only the constant name (the path's last
		// segment) is kept and EnumSym is left empty.
		return bound.Const{Kind: bound.EnumConst, EnumName: n.Path[len(n.Path)-1]}, nil
	case *tree.ClassLit:
		return bound.Const{Kind: bound.ClassConst}, nil
	case *tree.ArrayInit:
		elems := make([]bound.Const, 0, len(n.Elements))
		for _, el := range n.Elements {
			v, err := e.Evaluate(el)
			if err != nil {
				return bound.Const{}, err
			}
			elems = append(elems, v)
		}
		return bound.Const{Kind: bound.ArrayConst, Elements: elems}, nil
	case *tree.AnnoLit:
		return bound.Const{Kind: bound.AnnoConst}, nil
	default:
		return bound.Const{}, fmt.Errorf("unsupported constant expression node")
	}
}

func (e *Evaluator) evalConcat(n *tree.Concat) (bound.Const, error) {
	var buf []byte
	for _, op := range n.Operands {
		v, err := e.Evaluate(op)
		if err != nil {
			return bound.Const{}, err
		}
		buf = append(buf, stringOf(v)...)
	}
	return bound.Const{Kind: bound.StringConst, Str: string(buf)}, nil
}

func (e *Evaluator) evalFieldRef(n *tree.FieldRef) (bound.Const, error) {
	if e.resolve == nil {
		return bound.Const{}, fmt.Errorf("field reference %v: no resolver configured", n.Path)
	}
	f, ok := e.resolve(n.Path)
	if !ok {
		return bound.Const{}, fmt.Errorf("cannot resolve field reference %v", n.Path)
	}
	return e.EvaluateField(f), nil
}

func evalLiteral(l *tree.Literal) bound.Const {
	switch l.Kind {
	case tree.LitBool:
		return bound.Const{Kind: bound.BoolConst, Bool: l.Bool}
	case tree.LitChar:
		return bound.Const{Kind: bound.CharConst, Char: l.Char}
	case tree.LitInt:
		return bound.Const{Kind: bound.IntConst, Int: l.Int}
	case tree.LitLong:
		return bound.Const{Kind: bound.LongConst, Long: l.Long}
	case tree.LitFloat:
		return bound.Const{Kind: bound.FloatConst, Float: l.Float}
	case tree.LitDouble:
		return bound.Const{Kind: bound.DoubleConst, Double: l.Double}
	case tree.LitString:
		return bound.Const{Kind: bound.StringConst, Str: l.Str}
	default:
		return bound.Const{}
	}
}

func evalUnary(op tree.UnaryOp, x bound.Const) (bound.Const, error) {
	switch op {
	case tree.OpNot:
		if x.Kind != bound.BoolConst {
			return bound.Const{}, fmt.Errorf("'!' requires boolean operand")
		}
		return bound.Const{Kind: bound.BoolConst, Bool: !x.Bool}, nil
	case tree.OpNeg:
		return arithUnary(x, func(i int64) int64 { return -i }, func(f float64) float64 { return -f })
	case tree.OpPos:
		return promoteUnary(x)
	case tree.OpBitNot:
		return arithUnary(x, func(i int64) int64 { return ^i }, nil)
	default:
		return bound.Const{}, fmt.Errorf("unsupported unary operator")
	}
}

// promoteUnary applies Java's unary numeric promotion (byte/short/char -> int)
// without changing the value.
func promoteUnary(x bound.Const) (bound.Const, error) {
	switch x.Kind {
	case bound.ByteConst:
		return bound.Const{Kind: bound.IntConst, Int: int32(x.Byte)}, nil
	case bound.ShortConst:
		return bound.Const{Kind: bound.IntConst, Int: int32(x.Short)}, nil
	case bound.CharConst:
		return bound.Const{Kind: bound.IntConst, Int: int32(x.Char)}, nil
	default:
		return x, nil
	}
}

func arithUnary(x bound.Const, intOp func(int64) int64, floatOp func(float64) float64) (bound.Const, error) {
	x, _ = promoteUnary(x)
	switch x.Kind {
	case bound.IntConst:
		return bound.Const{Kind: bound.IntConst, Int: int32(intOp(int64(x.Int)))}, nil
	case bound.LongConst:
		return bound.Const{Kind: bound.LongConst, Long: intOp(x.Long)}, nil
	case bound.FloatConst:
		if floatOp == nil {
			return bound.Const{}, fmt.Errorf("bitwise operator requires an integral operand")
		}
		return bound.Const{Kind: bound.FloatConst, Float: float32(floatOp(float64(x.Float)))}, nil
	case bound.DoubleConst:
		if floatOp == nil {
			return bound.Const{}, fmt.Errorf("bitwise operator requires an integral operand")
		}
		return bound.Const{Kind: bound.DoubleConst, Double: floatOp(x.Double)}, nil
	default:
		return bound.Const{}, fmt.Errorf("unsupported operand kind for unary operator")
	}
}

// numericRank orders the promotion ladder int < long < float < double.
func numericRank(k bound.ConstKind) int {
	switch k {
	case bound.IntConst, bound.ByteConst, bound.ShortConst, bound.CharConst:
		return 0
	case bound.LongConst:
		return 1
	case bound.FloatConst:
		return 2
	case bound.DoubleConst:
		return 3
	default:
		return -1
	}
}

func evalBinary(op tree.BinaryOp, x, y bound.Const) (bound.Const, error) {
	switch op {
	case tree.OpLogAnd, tree.OpLogOr:
		if x.Kind != bound.BoolConst || y.Kind != bound.BoolConst {
			return bound.Const{}, fmt.Errorf("logical operator requires boolean operands")
		}
		if op == tree.OpLogAnd {
			return bound.Const{Kind: bound.BoolConst, Bool: x.Bool && y.Bool}, nil
		}
		return bound.Const{Kind: bound.BoolConst, Bool: x.Bool || y.Bool}, nil
	case tree.OpEq, tree.OpNe:
		return evalEquality(op, x, y)
	case tree.OpLt, tree.OpLe, tree.OpGt, tree.OpGe:
		return evalRelational(op, x, y)
	case tree.OpShl, tree.OpShr, tree.OpUshr:
		return evalShift(op, x, y)
	default:
		return evalArith(op, x, y)
	}
}

func evalEquality(op tree.BinaryOp, x, y bound.Const) (bound.Const, error) {
	if x.Kind == bound.BoolConst && y.Kind == bound.BoolConst {
		eq := x.Bool == y.Bool
		if op == tree.OpNe {
			eq = !eq
		}
		return bound.Const{Kind: bound.BoolConst, Bool: eq}, nil
	}
	xf, yf, rank, err := promoteNumeric(x, y)
	if err != nil {
		return bound.Const{}, err
	}
	var eq bool
	if rank <= 1 {
		eq = int64(xf) == int64(yf)
	} else {
		eq = xf == yf
	}
	if op == tree.OpNe {
		eq = !eq
	}
	return bound.Const{Kind: bound.BoolConst, Bool: eq}, nil
}

func evalRelational(op tree.BinaryOp, x, y bound.Const) (bound.Const, error) {
	xf, yf, _, err := promoteNumeric(x, y)
	if err != nil {
		return bound.Const{}, err
	}
	var r bool
	switch op {
	case tree.OpLt:
		r = xf < yf
	case tree.OpLe:
		r = xf <= yf
	case tree.OpGt:
		r = xf > yf
	case tree.OpGe:
		r = xf >= yf
	}
	return bound.Const{Kind: bound.BoolConst, Bool: r}, nil
}

// promoteNumeric widens x and y to a common rank (int/long/float/double) and
// returns both as float64 alongside the winning rank, sufficient for
// comparisons; arithmetic that must preserve integer wrap-around uses
// evalArith's int64 path instead.
func promoteNumeric(x, y bound.Const) (xf, yf float64, rank int, err error) {
	xr, yr := numericRank(x.Kind), numericRank(y.Kind)
	if xr < 0 || yr < 0 {
		return 0, 0, 0, fmt.Errorf("non-numeric operand")
	}
	rank = xr
	if yr > rank {
		rank = yr
	}
	return asFloat64(x), asFloat64(y), rank, nil
}

func asFloat64(c bound.Const) float64 {
	switch c.Kind {
	case bound.IntConst:
		return float64(c.Int)
	case bound.ByteConst:
		return float64(c.Byte)
	case bound.ShortConst:
		return float64(c.Short)
	case bound.CharConst:
		return float64(c.Char)
	case bound.LongConst:
		return float64(c.Long)
	case bound.FloatConst:
		return float64(c.Float)
	case bound.DoubleConst:
		return c.Double
	default:
		return 0
	}
}

func asInt64(c bound.Const) int64 {
	switch c.Kind {
	case bound.IntConst:
		return int64(c.Int)
	case bound.ByteConst:
		return int64(c.Byte)
	case bound.ShortConst:
		return int64(c.Short)
	case bound.CharConst:
		return int64(c.Char)
	case bound.LongConst:
		return c.Long
	default:
		return 0
	}
}

func evalShift(op tree.BinaryOp, x, y bound.Const) (bound.Const, error) {
	x, _ = promoteUnary(x)
	shift := asInt64(y)
	switch x.Kind {
	case bound.IntConst:
		s := uint(shift) & 31
		v := x.Int
		switch op {
		case tree.OpShl:
			v = v << s
		case tree.OpShr:
			v = v >> s
		case tree.OpUshr:
			v = int32(uint32(v) >> s)
		}
		return bound.Const{Kind: bound.IntConst, Int: v}, nil
	case bound.LongConst:
		s := uint(shift) & 63
		v := x.Long
		switch op {
		case tree.OpShl:
			v = v << s
		case tree.OpShr:
			v = v >> s
		case tree.OpUshr:
			v = int64(uint64(v) >> s)
		}
		return bound.Const{Kind: bound.LongConst, Long: v}, nil
	default:
		return bound.Const{}, fmt.Errorf("shift requires an integral left operand")
	}
}

// evalArith implements +,-,*,/,%,&,|,^ with Java's binary numeric promotion
// and two's-complement wrap-around for the integral cases.
func evalArith(op tree.BinaryOp, x, y bound.Const) (bound.Const, error) {
	xr, yr := numericRank(x.Kind), numericRank(y.Kind)
	if xr < 0 || yr < 0 {
		return bound.Const{}, fmt.Errorf("non-numeric operand")
	}
	rank := xr
	if yr > rank {
		rank = yr
	}
	switch rank {
	case 0: // int
		return arithInt32(op, int32(asInt64(x)), int32(asInt64(y)))
	case 1: // long
		return arithInt64(op, asInt64(x), asInt64(y))
	case 2: // float
		return arithFloat32(op, float32(asFloat64(x)), float32(asFloat64(y)))
	default: // double
		return arithFloat64(op, asFloat64(x), asFloat64(y))
	}
}

func arithInt32(op tree.BinaryOp, x, y int32) (bound.Const, error) {
	var v int32
	switch op {
	case tree.OpAdd:
		v = x + y
	case tree.OpSub:
		v = x - y
	case tree.OpMul:
		v = x * y
	case tree.OpDiv:
		if y == 0 {
			return bound.Const{}, fmt.Errorf("division by zero")
		}
		v = x / y
	case tree.OpMod:
		if y == 0 {
			return bound.Const{}, fmt.Errorf("division by zero")
		}
		v = x % y
	case tree.OpAnd:
		v = x & y
	case tree.OpOr:
		v = x | y
	case tree.OpXor:
		v = x ^ y
	default:
		return bound.Const{}, fmt.Errorf("unsupported integer operator")
	}
	return bound.Const{Kind: bound.IntConst, Int: v}, nil
}

func arithInt64(op tree.BinaryOp, x, y int64) (bound.Const, error) {
	var v int64
	switch op {
	case tree.OpAdd:
		v = x + y
	case tree.OpSub:
		v = x - y
	case tree.OpMul:
		v = x * y
	case tree.OpDiv:
		if y == 0 {
			return bound.Const{}, fmt.Errorf("division by zero")
		}
		v = x / y
	case tree.OpMod:
		if y == 0 {
			return bound.Const{}, fmt.Errorf("division by zero")
		}
		v = x % y
	case tree.OpAnd:
		v = x & y
	case tree.OpOr:
		v = x | y
	case tree.OpXor:
		v = x ^ y
	default:
		return bound.Const{}, fmt.Errorf("unsupported long operator")
	}
	return bound.Const{Kind: bound.LongConst, Long: v}, nil
}

func arithFloat32(op tree.BinaryOp, x, y float32) (bound.Const, error) {
	var v float32
	switch op {
	case tree.OpAdd:
		v = x + y
	case tree.OpSub:
		v = x - y
	case tree.OpMul:
		v = x * y
	case tree.OpDiv:
		v = x / y
	case tree.OpMod:
		v = float32(math.Mod(float64(x), float64(y)))
	default:
		return bound.Const{}, fmt.Errorf("unsupported float operator")
	}
	return bound.Const{Kind: bound.FloatConst, Float: v}, nil
}

func arithFloat64(op tree.BinaryOp, x, y float64) (bound.Const, error) {
	var v float64
	switch op {
	case tree.OpAdd:
		v = x + y
	case tree.OpSub:
		v = x - y
	case tree.OpMul:
		v = x * y
	case tree.OpDiv:
		v = x / y
	case tree.OpMod:
		v = math.Mod(x, y)
	default:
		return bound.Const{}, fmt.Errorf("unsupported double operator")
	}
	return bound.Const{Kind: bound.DoubleConst, Double: v}, nil
}

func evalCast(target tree.TypeRef, x bound.Const) (bound.Const, error) {
	if target.Kind != tree.RefPrimitive {
		if target.Kind == tree.RefSimple && len(target.Names) == 1 && target.Names[0] == "String" {
			if x.Kind == bound.StringConst {
				return x, nil
			}
		}
		return bound.Const{}, fmt.Errorf("unsupported cast target")
	}
	switch target.Prim {
	case tree.PrimBoolean:
		if x.Kind != bound.BoolConst {
			return bound.Const{}, fmt.Errorf("cannot cast to boolean")
		}
		return x, nil
	case tree.PrimByte:
		return bound.Const{Kind: bound.ByteConst, Byte: int8(asInt64(x))}, nil
	case tree.PrimShort:
		return bound.Const{Kind: bound.ShortConst, Short: int16(asInt64(x))}, nil
	case tree.PrimChar:
		return bound.Const{Kind: bound.CharConst, Char: uint16(asInt64(x))}, nil
	case tree.PrimInt:
		return bound.Const{Kind: bound.IntConst, Int: int32(asInt64(x))}, nil
	case tree.PrimLong:
		return bound.Const{Kind: bound.LongConst, Long: asInt64(x)}, nil
	case tree.PrimFloat:
		return bound.Const{Kind: bound.FloatConst, Float: float32(asFloat64(x))}, nil
	case tree.PrimDouble:
		return bound.Const{Kind: bound.DoubleConst, Double: asFloat64(x)}, nil
	default:
		return bound.Const{}, fmt.Errorf("unsupported primitive cast")
	}
}

// stringOf applies the language's primitive-to-string widening rule for
// concatenation operands.
func stringOf(c bound.Const) string {
	switch c.Kind {
	case bound.StringConst:
		return c.Str
	case bound.BoolConst:
		return fmt.Sprintf("%t", c.Bool)
	case bound.CharConst:
		return string(rune(c.Char))
	case bound.ByteConst:
		return fmt.Sprintf("%d", c.Byte)
	case bound.ShortConst:
		return fmt.Sprintf("%d", c.Short)
	case bound.IntConst:
		return fmt.Sprintf("%d", c.Int)
	case bound.LongConst:
		return fmt.Sprintf("%d", c.Long)
	case bound.FloatConst:
		return fmt.Sprintf("%v", c.Float)
	case bound.DoubleConst:
		return fmt.Sprintf("%v", c.Double)
	default:
		return ""
	}
}
