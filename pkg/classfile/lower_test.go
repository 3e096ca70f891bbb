package classfile

import (
	"encoding/binary"
	"testing"

	"github.com/stackb/headerc/pkg/bound"
	"github.com/stackb/headerc/pkg/symbol"
	"github.com/stackb/headerc/pkg/types"
)

func TestLowerClassHeaderBytes(t *testing.T) {
	sym := symbol.NewClassSymbol("test/Foo")
	super := types.ClassOf(types.RootObject)
	tbc := &bound.TypeBoundClass{
		Sym:        sym,
		Kind:       bound.KindClass,
		Flags:      bound.ClassPublic | bound.ClassSuper,
		Superclass: &super,
	}

	lookup := func(s symbol.ClassSymbol) (*bound.TypeBoundClass, bool) {
		if s == sym {
			return tbc, true
		}
		return nil, false
	}

	out := LowerClass(tbc, lookup, DefaultOptions)
	if len(out) < 10 {
		t.Fatalf("output too short: %d bytes", len(out))
	}
	if magic := binary.BigEndian.Uint32(out[0:4]); magic != classMagic {
		t.Errorf("magic = %#x, want %#x", magic, classMagic)
	}
	minor := binary.BigEndian.Uint16(out[4:6])
	major := binary.BigEndian.Uint16(out[6:8])
	if minor != DefaultOptions.MinorVersion || major != DefaultOptions.MajorVersion {
		t.Errorf("version = %d.%d, want %d.%d", major, minor, DefaultOptions.MajorVersion, DefaultOptions.MinorVersion)
	}
}

func TestLowerFieldEmitsConstantValue(t *testing.T) {
	pool := NewConstantPool()
	cv := bound.Const{Kind: bound.IntConst, Int: 7}
	f := &bound.Field{
		Name:       "X",
		Type:       types.PrimTy{PKind: types.Int},
		Flags:      bound.FieldStatic | bound.FieldFinal,
		ConstValue: &cv,
	}
	body := lowerFields(pool, []*bound.Field{f})
	fieldCount := binary.BigEndian.Uint16(body[0:2])
	if fieldCount != 1 {
		t.Fatalf("field count = %d, want 1", fieldCount)
	}
	before := pool.Len()
	idx := pool.Utf8("ConstantValue")
	after := pool.Len()
	if idx == 0 || after != before {
		t.Error("expected \"ConstantValue\" to already be interned in the pool by lowerFields")
	}
}

func TestDescriptorErasesGenerics(t *testing.T) {
	arr := types.ArrayTy{Elem: types.ClassOf(symbol.NewClassSymbol("java/lang/String"))}
	if got, want := Descriptor(arr), "[Ljava/lang/String;"; got != want {
		t.Errorf("Descriptor() = %q, want %q", got, want)
	}
	if got, want := Descriptor(types.PrimTy{PKind: types.Int}), "I"; got != want {
		t.Errorf("Descriptor() = %q, want %q", got, want)
	}
	if got, want := Descriptor(types.Void), "V"; got != want {
		t.Errorf("Descriptor() = %q, want %q", got, want)
	}
}

func TestInnerClassClosureWalksOwnerAndNested(t *testing.T) {
	outerSym := symbol.NewClassSymbol("test/Outer")
	innerSym := symbol.NewClassSymbol("test/Outer$Inner")

	outer := &bound.TypeBoundClass{Sym: outerSym, Nested: []symbol.ClassSymbol{innerSym}}
	inner := &bound.TypeBoundClass{Sym: innerSym, Owner: &outerSym}

	lookup := func(s symbol.ClassSymbol) (*bound.TypeBoundClass, bool) {
		switch s {
		case outerSym:
			return outer, true
		case innerSym:
			return inner, true
		}
		return nil, false
	}

	entries := innerClassClosure(inner, lookup)
	if len(entries) != 1 {
		t.Fatalf("expected exactly one InnerClasses entry, got %d", len(entries))
	}
	if entries[0].InnerBinaryName != "test/Outer$Inner" || entries[0].OuterBinaryName != "test/Outer" {
		t.Errorf("unexpected entry: %+v", entries[0])
	}
}
