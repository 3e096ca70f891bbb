package sig

import (
	"testing"

	"github.com/stackb/headerc/pkg/bound"
	"github.com/stackb/headerc/pkg/symbol"
	"github.com/stackb/headerc/pkg/types"
)

func cls(binary string) types.ClassTy {
	return types.ClassOf(symbol.NewClassSymbol(binary))
}

func tv(name string) types.TyVar {
	return types.TyVar{Sym: symbol.TyVarSymbol{Name: name}}
}

func TestWriteFieldSignature(t *testing.T) {
	tests := map[string]struct {
		ty   types.Type
		want string
	}{
		"plain type variable": {
			ty:   tv("T"),
			want: "TT;",
		},
		"parameterized list of string": {
			ty: types.ClassTy{Parts: []types.SimpleClassTy{{
				Sym:    symbol.NewClassSymbol("java/util/List"),
				TyArgs: []types.Type{cls("java/lang/String")},
			}}},
			want: "Ljava/util/List<Ljava/lang/String;>;",
		},
		"array of type variable": {
			ty:   types.ArrayTy{Elem: tv("T")},
			want: "[TT;",
		},
		"unbounded wildcard": {
			ty:   types.ClassTy{Parts: []types.SimpleClassTy{{Sym: symbol.NewClassSymbol("java/util/List"), TyArgs: []types.Type{types.WildTy{Bound: types.Unbounded}}}}},
			want: "Ljava/util/List<*>;",
		},
		"upper bounded wildcard": {
			ty: types.ClassTy{Parts: []types.SimpleClassTy{{
				Sym:    symbol.NewClassSymbol("java/util/List"),
				TyArgs: []types.Type{types.WildTy{Bound: types.UpperBounded, Inner: cls("java/lang/Number")}},
			}}},
			want: "Ljava/util/List<+Ljava/lang/Number;>;",
		},
		"nested parameterized class": {
			ty: types.ClassTy{Parts: []types.SimpleClassTy{
				{Sym: symbol.NewClassSymbol("test/Outer"), TyArgs: []types.Type{cls("java/lang/Object")}},
				{Sym: symbol.NewClassSymbol("test/Outer$Inner"), TyArgs: []types.Type{cls("java/lang/Object")}},
			}},
			want: "Ltest/Outer<Ljava/lang/Object;>.Inner<Ljava/lang/Object;>;",
		},
		"nested non-generic class collapses to flat form": {
			ty: types.ClassTy{Parts: []types.SimpleClassTy{
				{Sym: symbol.NewClassSymbol("test/Outer")},
				{Sym: symbol.NewClassSymbol("test/Outer$Inner")},
			}},
			want: "Ltest/Outer$Inner;",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := WriteFieldSignature(tc.ty)
			if got != tc.want {
				t.Errorf("WriteFieldSignature() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestWriteClassSignature(t *testing.T) {
	tyParams := []bound.TyParam{
		{Sym: symbol.TyVarSymbol{Name: "T"}, Bounds: types.IntersectionTy{Bounds: []types.ClassTy{cls("java/lang/Object")}}},
	}
	super := cls("java/lang/Object")
	ifaces := []types.ClassTy{
		{Parts: []types.SimpleClassTy{{Sym: symbol.NewClassSymbol("java/util/List"), TyArgs: []types.Type{tv("T")}}}},
	}
	got := WriteClassSignature(tyParams, &super, ifaces)
	want := "<T:Ljava/lang/Object;>Ljava/lang/Object;Ljava/util/List<TT;>;"
	if got != want {
		t.Errorf("WriteClassSignature() = %q, want %q", got, want)
	}
}

func TestWriteMethodSignature(t *testing.T) {
	tests := map[string]struct {
		tyParams []bound.TyParam
		params   []types.Type
		ret      types.Type
		thrown   []types.Type
		want     string
	}{
		"generic identity method": {
			tyParams: []bound.TyParam{
				{Sym: symbol.TyVarSymbol{Name: "T"}, Bounds: types.IntersectionTy{Bounds: []types.ClassTy{cls("java/lang/Object")}}},
			},
			params: []types.Type{tv("T")},
			ret:    tv("T"),
			want:   "<T:Ljava/lang/Object;>(TT;)TT;",
		},
		"void method with checked throw": {
			params: []types.Type{cls("java/lang/String")},
			ret:    types.Void,
			thrown: []types.Type{cls("java/io/IOException")},
			want:   "(Ljava/lang/String;)V^Ljava/io/IOException;",
		},
		"plain no-arg no-generics": {
			ret:  types.Void,
			want: "()V",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := WriteMethodSignature(tc.tyParams, tc.params, tc.ret, tc.thrown)
			if got != tc.want {
				t.Errorf("WriteMethodSignature() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestNeedsSignature(t *testing.T) {
	if NeedsSignature(cls("java/lang/String")) {
		t.Error("plain class type should not need a signature")
	}
	if !NeedsSignature(tv("T")) {
		t.Error("a type variable always needs a signature")
	}
	if !NeedsSignature(types.ArrayTy{Elem: tv("T")}) {
		t.Error("an array of a type variable needs a signature")
	}
	parameterized := types.ClassTy{Parts: []types.SimpleClassTy{{
		Sym: symbol.NewClassSymbol("java/util/List"), TyArgs: []types.Type{cls("java/lang/String")},
	}}}
	if !NeedsSignature(parameterized) {
		t.Error("a parameterized class type needs a signature")
	}
}
