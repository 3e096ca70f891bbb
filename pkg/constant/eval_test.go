package constant

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/stackb/headerc/pkg/bound"
	"github.com/stackb/headerc/pkg/tree"
)

func lit(v bound.Const) tree.Expr {
	switch v.Kind {
	case bound.IntConst:
		return &tree.Literal{Kind: tree.LitInt, Int: v.Int}
	case bound.LongConst:
		return &tree.Literal{Kind: tree.LitLong, Long: v.Long}
	case bound.DoubleConst:
		return &tree.Literal{Kind: tree.LitDouble, Double: v.Double}
	case bound.StringConst:
		return &tree.Literal{Kind: tree.LitString, Str: v.Str}
	case bound.BoolConst:
		return &tree.Literal{Kind: tree.LitBool, Bool: v.Bool}
	default:
		panic("unsupported literal kind in test helper")
	}
}

func TestEvaluateArithmetic(t *testing.T) {
	tests := map[string]struct {
		expr    tree.Expr
		want    bound.Const
		wantErr bool
	}{
		"int addition": {
			expr: &tree.Binary{Op: tree.OpAdd, X: lit(bound.Const{Kind: bound.IntConst, Int: 2}), Y: lit(bound.Const{Kind: bound.IntConst, Int: 3})},
			want: bound.Const{Kind: bound.IntConst, Int: 5},
		},
		"int overflow wraps": {
			expr: &tree.Binary{Op: tree.OpAdd,
				X: lit(bound.Const{Kind: bound.IntConst, Int: 2147483647}),
				Y: lit(bound.Const{Kind: bound.IntConst, Int: 1}),
			},
			want: bound.Const{Kind: bound.IntConst, Int: -2147483648},
		},
		"int promotes to long": {
			expr: &tree.Binary{Op: tree.OpAdd,
				X: lit(bound.Const{Kind: bound.IntConst, Int: 1}),
				Y: lit(bound.Const{Kind: bound.LongConst, Long: 2}),
			},
			want: bound.Const{Kind: bound.LongConst, Long: 3},
		},
		"division by zero is an error": {
			expr: &tree.Binary{Op: tree.OpDiv,
				X: lit(bound.Const{Kind: bound.IntConst, Int: 1}),
				Y: lit(bound.Const{Kind: bound.IntConst, Int: 0}),
			},
			wantErr: true,
		},
		"string concatenation with int": {
			expr: &tree.Concat{Operands: []tree.Expr{
				lit(bound.Const{Kind: bound.StringConst, Str: "n="}),
				lit(bound.Const{Kind: bound.IntConst, Int: 7}),
			}},
			want: bound.Const{Kind: bound.StringConst, Str: "n=7"},
		},
		"conditional picks true branch": {
			expr: &tree.Conditional{
				Cond: lit(bound.Const{Kind: bound.BoolConst, Bool: true}),
				T:    lit(bound.Const{Kind: bound.IntConst, Int: 1}),
				F:    lit(bound.Const{Kind: bound.IntConst, Int: 2}),
			},
			want: bound.Const{Kind: bound.IntConst, Int: 1},
		},
		"left shift wraps at 32 bits": {
			expr: &tree.Binary{Op: tree.OpShl,
				X: lit(bound.Const{Kind: bound.IntConst, Int: 1}),
				Y: lit(bound.Const{Kind: bound.IntConst, Int: 33}),
			},
			want: bound.Const{Kind: bound.IntConst, Int: 2},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			e := NewEvaluator(nil, nil)
			got, err := e.Evaluate(tc.expr)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected an error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Evaluate() mismatch:\n%s", diff)
			}
		})
	}
}

func TestEvaluateFieldCycle(t *testing.T) {
	a := &bound.Field{Name: "A"}
	b := &bound.Field{Name: "B"}
	a.ConstExpr = &tree.FieldRef{Path: []string{"B"}}
	b.ConstExpr = &tree.FieldRef{Path: []string{"A"}}

	lookup := func(path []string) (*bound.Field, bool) {
		switch path[len(path)-1] {
		case "A":
			return a, true
		case "B":
			return b, true
		}
		return nil, false
	}

	e := NewEvaluator(nil, lookup)
	got := e.EvaluateField(a)
	if got.Kind != bound.IntConst {
		t.Fatalf("expected a zero-valued fallback Const, got %+v", got)
	}
}

func TestEvaluateFieldMemoizesAcrossReferences(t *testing.T) {
	shared := &bound.Field{Name: "SHARED", ConstExpr: lit(bound.Const{Kind: bound.IntConst, Int: 42})}
	calls := 0
	lookup := func(path []string) (*bound.Field, bool) {
		calls++
		return shared, true
	}
	e := NewEvaluator(nil, lookup)

	refA := &tree.FieldRef{Path: []string{"SHARED"}}
	refB := &tree.FieldRef{Path: []string{"SHARED"}}

	v1, err := e.Evaluate(refA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v2, err := e.Evaluate(refB)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(v1, v2); diff != "" {
		t.Errorf("expected identical memoized results:\n%s", diff)
	}
	if len(e.memo) != 1 {
		t.Errorf("expected exactly one memo entry, got %d", len(e.memo))
	}
}
