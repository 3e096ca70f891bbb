package binder

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/stackb/headerc/pkg/bound"
	"github.com/stackb/headerc/pkg/diag"
	"github.com/stackb/headerc/pkg/env"
	"github.com/stackb/headerc/pkg/symbol"
	"github.com/stackb/headerc/pkg/tree"
	"github.com/stackb/headerc/pkg/types"
)

func newTestBinder() *Binder {
	return NewBinder(nil, nil, nil, nil, diag.NewSink())
}

func TestBindSimpleClassDefaultsToRootSuperclass(t *testing.T) {
	unit := &tree.CompUnit{
		Source:  "Widget.java",
		Package: []string{"test"},
		Decls: []*tree.TypeDecl{
			{Name: "Widget", Kind: tree.DeclClass, Mods: []tree.Modifier{tree.ModPublic}},
		},
	}

	b := newTestBinder()
	result := b.Bind([]*tree.CompUnit{unit})

	sym := symbol.NewClassSymbol("test/Widget")
	tbc, ok := result.Classes.Get(sym)
	if !ok {
		t.Fatalf("expected test/Widget to be bound")
	}
	if tbc.Stage != bound.ConstBound {
		t.Errorf("Stage = %v, want ConstBound", tbc.Stage)
	}
	if tbc.Superclass == nil || tbc.Superclass.Sym() != types.RootObject {
		t.Errorf("Superclass = %v, want java/lang/Object", tbc.Superclass)
	}
	if b.Sink.HasErrors() {
		t.Errorf("unexpected diagnostics: %v", b.Sink.Diagnostics())
	}
}

func TestBindInterfaceSuperclassIsRootObject(t *testing.T) {
	unit := &tree.CompUnit{
		Source:  "Marker.java",
		Package: []string{"test"},
		Decls: []*tree.TypeDecl{
			{Name: "Marker", Kind: tree.DeclInterface},
		},
	}

	b := newTestBinder()
	result := b.Bind([]*tree.CompUnit{unit})

	tbc, ok := result.Classes.Get(symbol.NewClassSymbol("test/Marker"))
	if !ok {
		t.Fatal("expected test/Marker to be bound")
	}
	if tbc.Superclass == nil || tbc.Superclass.Sym() != types.RootObject {
		t.Errorf("interface Superclass = %v, want java/lang/Object", tbc.Superclass)
	}
	if tbc.Flags&bound.ClassInterface == 0 {
		t.Errorf("expected ClassInterface flag to be set")
	}
}

func TestBindResolvesExplicitSuperclassAndFieldType(t *testing.T) {
	units := []*tree.CompUnit{
		{
			Source:  "Base.java",
			Package: []string{"test"},
			Decls: []*tree.TypeDecl{
				{Name: "Base", Kind: tree.DeclClass},
			},
		},
		{
			Source:  "Derived.java",
			Package: []string{"test"},
			Decls: []*tree.TypeDecl{
				{
					Name:       "Derived",
					Kind:       tree.DeclClass,
					Superclass: &tree.TypeRef{Kind: tree.RefSimple, Names: []string{"Base"}},
					Members: []tree.Member{
						&tree.FieldDecl{
							Name: "count",
							Type: tree.TypeRef{Kind: tree.RefPrimitive, Prim: tree.PrimInt},
							Mods: []tree.Modifier{tree.ModPrivate, tree.ModFinal},
						},
					},
				},
			},
		},
	}

	b := newTestBinder()
	result := b.Bind(units)

	tbc, ok := result.Classes.Get(symbol.NewClassSymbol("test/Derived"))
	if !ok {
		t.Fatal("expected test/Derived to be bound")
	}
	wantSuper := symbol.NewClassSymbol("test/Base")
	if tbc.Superclass == nil || tbc.Superclass.Sym() != wantSuper {
		t.Errorf("Superclass = %v, want %v", tbc.Superclass, wantSuper)
	}
	if len(tbc.Fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(tbc.Fields))
	}
	if tbc.Fields[0].Type.Kind() != types.TagPrim {
		t.Errorf("field type = %v, want a primitive type", tbc.Fields[0].Type)
	}
}

func TestBindEvaluatesStaticFinalConstant(t *testing.T) {
	unit := &tree.CompUnit{
		Source:  "Consts.java",
		Package: []string{"test"},
		Decls: []*tree.TypeDecl{
			{
				Name: "Consts",
				Kind: tree.DeclClass,
				Members: []tree.Member{
					&tree.FieldDecl{
						Name: "MAX",
						Type: tree.TypeRef{Kind: tree.RefPrimitive, Prim: tree.PrimInt},
						Mods: []tree.Modifier{tree.ModStatic, tree.ModFinal},
						Init: &tree.Literal{Kind: tree.LitInt, Int: 42},
					},
				},
			},
		},
	}

	b := newTestBinder()
	result := b.Bind([]*tree.CompUnit{unit})

	tbc, ok := result.Classes.Get(symbol.NewClassSymbol("test/Consts"))
	if !ok {
		t.Fatal("expected test/Consts to be bound")
	}
	if len(tbc.Fields) != 1 || tbc.Fields[0].ConstValue == nil {
		t.Fatalf("expected MAX to have a resolved ConstValue, got %+v", tbc.Fields)
	}
	want := bound.Const{Kind: bound.IntConst, Int: 42}
	if diff := cmp.Diff(want, *tbc.Fields[0].ConstValue); diff != "" {
		t.Errorf("ConstValue mismatch (-want +got):\n%s", diff)
	}
}

func TestBindUnresolvedSuperclassReportsSymbolNotFound(t *testing.T) {
	unit := &tree.CompUnit{
		Source:  "Broken.java",
		Package: []string{"test"},
		Decls: []*tree.TypeDecl{
			{
				Name:       "Broken",
				Kind:       tree.DeclClass,
				Superclass: &tree.TypeRef{Kind: tree.RefSimple, Names: []string{"DoesNotExist"}},
			},
		},
	}

	b := newTestBinder()
	b.Bind([]*tree.CompUnit{unit})

	if !b.Sink.HasErrors() {
		t.Fatal("expected a diagnostic for an unresolved superclass reference")
	}
	found := false
	for _, d := range b.Sink.Diagnostics() {
		if d.Kind == diag.SymbolNotFound {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a SymbolNotFound diagnostic, got %v", b.Sink.Diagnostics())
	}
}

func TestBindNestedClassResolvesThroughEnclosingScope(t *testing.T) {
	unit := &tree.CompUnit{
		Source:  "Outer.java",
		Package: []string{"test"},
		Decls: []*tree.TypeDecl{
			{
				Name: "Outer",
				Kind: tree.DeclClass,
				Nested: []*tree.TypeDecl{
					{Name: "Inner", Kind: tree.DeclClass},
				},
				Members: []tree.Member{
					&tree.FieldDecl{
						Name: "inner",
						Type: tree.TypeRef{Kind: tree.RefSimple, Names: []string{"Inner"}},
					},
				},
			},
		},
	}

	b := newTestBinder()
	result := b.Bind([]*tree.CompUnit{unit})

	tbc, ok := result.Classes.Get(symbol.NewClassSymbol("test/Outer"))
	if !ok {
		t.Fatal("expected test/Outer to be bound")
	}
	if len(tbc.Fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(tbc.Fields))
	}
	ct, ok := tbc.Fields[0].Type.(types.ClassTy)
	if !ok {
		t.Fatalf("field type = %T, want types.ClassTy", tbc.Fields[0].Type)
	}
	want := symbol.NewClassSymbol("test/Outer$Inner")
	if ct.Sym() != want {
		t.Errorf("field type sym = %v, want %v", ct.Sym(), want)
	}
}

func TestBindQualifiedNestedReferenceProducesMultiPartClassTy(t *testing.T) {
	units := []*tree.CompUnit{
		{
			Source:  "Outer.java",
			Package: []string{"test"},
			Decls: []*tree.TypeDecl{
				{
					Name: "Outer",
					Kind: tree.DeclClass,
					Nested: []*tree.TypeDecl{
						{Name: "Inner", Kind: tree.DeclClass},
					},
				},
			},
		},
		{
			Source:  "Holder.java",
			Package: []string{"test"},
			Decls: []*tree.TypeDecl{
				{
					Name: "Holder",
					Kind: tree.DeclClass,
					Members: []tree.Member{
						&tree.FieldDecl{
							Name: "inner",
							Type: tree.TypeRef{Kind: tree.RefQualified, Names: []string{"Outer", "Inner"}},
						},
					},
				},
			},
		},
	}

	b := newTestBinder()
	result := b.Bind(units)

	tbc, ok := result.Classes.Get(symbol.NewClassSymbol("test/Holder"))
	if !ok {
		t.Fatal("expected test/Holder to be bound")
	}
	if len(tbc.Fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(tbc.Fields))
	}
	ct, ok := tbc.Fields[0].Type.(types.ClassTy)
	if !ok {
		t.Fatalf("field type = %T, want types.ClassTy", tbc.Fields[0].Type)
	}
	if len(ct.Parts) != 2 {
		t.Fatalf("expected a 2-part ClassTy for a qualified nested reference, got %d parts: %+v", len(ct.Parts), ct.Parts)
	}
	if ct.Parts[0].Sym != symbol.NewClassSymbol("test/Outer") {
		t.Errorf("Parts[0].Sym = %v, want test/Outer", ct.Parts[0].Sym)
	}
	if ct.Parts[1].Sym != symbol.NewClassSymbol("test/Outer$Inner") {
		t.Errorf("Parts[1].Sym = %v, want test/Outer$Inner", ct.Parts[1].Sym)
	}
}

func TestBindModuleSynthesizesRequiresJavaBase(t *testing.T) {
	unit := &tree.CompUnit{
		Source: "module-info.java",
		Module: &tree.ModuleDecl{Name: "test.mod"},
	}

	b := newTestBinder()
	result := b.Bind([]*tree.CompUnit{unit})

	if len(result.Modules) != 1 {
		t.Fatalf("expected 1 module, got %d", len(result.Modules))
	}
	mod := result.Modules[0]
	found := false
	for _, req := range mod.Requires {
		if req.ModuleName == symbol.JavaBase.Name {
			found = true
			if req.Flags&bound.ModuleMandated == 0 {
				t.Errorf("expected synthesized java.base requires to carry ModuleMandated")
			}
		}
	}
	if !found {
		t.Error("expected a synthesized requires java.base directive")
	}
}

func TestBindModuleSynthesizedRequiresJavaBaseCarriesClasspathVersion(t *testing.T) {
	unit := &tree.CompUnit{
		Source: "module-info.java",
		Module: &tree.ModuleDecl{Name: "test.mod"},
	}

	version := "17"
	moduleClasspath := env.NewSimpleModuleEnv(map[symbol.ModuleSymbol]*bound.ModuleInfo{
		symbol.JavaBase: {Name: symbol.JavaBase.Name, Version: &version},
	})
	b := NewBinder(nil, nil, nil, moduleClasspath, diag.NewSink())
	result := b.Bind([]*tree.CompUnit{unit})

	mod := result.Modules[0]
	var req *bound.RequireInfo
	for i := range mod.Requires {
		if mod.Requires[i].ModuleName == symbol.JavaBase.Name {
			req = &mod.Requires[i]
		}
	}
	if req == nil {
		t.Fatal("expected a synthesized requires java.base directive")
	}
	if req.Version == nil || *req.Version != version {
		t.Errorf("synthesized java.base requires Version = %v, want %q", req.Version, version)
	}
}

func TestBindModulePreservesExplicitRequiresJavaBase(t *testing.T) {
	unit := &tree.CompUnit{
		Source: "module-info.java",
		Module: &tree.ModuleDecl{
			Name: "test.mod",
			Directives: []tree.ModDirective{
				&tree.ModRequires{ModuleName: "java.base", Transitive: true},
			},
		},
	}

	b := newTestBinder()
	result := b.Bind([]*tree.CompUnit{unit})

	mod := result.Modules[0]
	if len(mod.Requires) != 1 {
		t.Fatalf("expected exactly 1 requires entry, got %d", len(mod.Requires))
	}
	if mod.Requires[0].Flags&bound.ModuleMandated != 0 {
		t.Error("explicit requires java.base should not be marked mandated")
	}
	if mod.Requires[0].Flags&bound.ModuleTransitive == 0 {
		t.Error("expected the explicit transitive flag to survive binding")
	}
}
