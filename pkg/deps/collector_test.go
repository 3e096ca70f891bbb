package deps

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/stackb/headerc/pkg/bound"
	"github.com/stackb/headerc/pkg/symbol"
	"github.com/stackb/headerc/pkg/types"
)

type fakeEntry struct {
	name string
	data map[string][]byte
}

func (f *fakeEntry) String() string { return f.name }

func (f *fakeEntry) ReadClass(internalName string) ([]byte, error) {
	if data, ok := f.data[internalName]; ok {
		return data, nil
	}
	return nil, errNotFound(internalName)
}

type errNotFound string

func (e errNotFound) Error() string { return "not found: " + string(e) }

func newTestClassPath(entries ...ClassPathEntry) *ClassPath {
	return &ClassPath{entries: entries}
}

func TestCollectorVisitCollectsSupertypeAndFieldAndAnnoSymbols(t *testing.T) {
	list := symbol.NewClassSymbol("java/util/List")
	serializable := symbol.NewClassSymbol("java/io/Serializable")
	override := symbol.NewClassSymbol("java/lang/Override")
	thisClass := symbol.NewClassSymbol("test/Widget")

	jar := &fakeEntry{
		name: "libs.jar",
		data: map[string][]byte{
			"java/util/List":        []byte("list-bytes"),
			"java/io/Serializable":  []byte("serializable-bytes"),
			"java/lang/Override":    []byte("override-bytes"),
		},
	}
	cp := newTestClassPath(jar)

	tbc := &bound.TypeBoundClass{
		Sym:        thisClass,
		Superclass: nil,
		Interfaces: []types.ClassTy{types.ClassOf(serializable)},
		Fields: []*bound.Field{
			{Name: "items", Type: types.ClassOf(list)},
		},
		Annos: []*bound.AnnoInfo{
			{Sym: override, Values: map[string]bound.Const{}},
		},
	}

	isSource := func(sym symbol.ClassSymbol) bool { return sym == thisClass }
	c := NewCollector(cp, isSource)
	c.Visit(tbc)

	got := c.TransitiveClasses()
	want := map[string][]byte{
		"java/util/List":       []byte("list-bytes"),
		"java/io/Serializable": []byte("serializable-bytes"),
		"java/lang/Override":   []byte("override-bytes"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TransitiveClasses() mismatch (-want +got):\n%s", diff)
	}

	rec := c.Record()
	if len(rec.Jars) != 1 {
		t.Fatalf("expected one jar entry, got %d", len(rec.Jars))
	}
	if rec.Jars[0].Jar != "libs.jar" {
		t.Errorf("expected jar libs.jar, got %s", rec.Jars[0].Jar)
	}
	wantSyms := []string{"java/io/Serializable", "java/lang/Override", "java/util/List"}
	if diff := cmp.Diff(wantSyms, rec.Jars[0].Symbols); diff != "" {
		t.Errorf("Record() symbols mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectorSkipsSourceSymbols(t *testing.T) {
	thisClass := symbol.NewClassSymbol("test/Widget")
	otherSource := symbol.NewClassSymbol("test/Helper")

	cp := newTestClassPath(&fakeEntry{name: "empty.jar"})
	isSource := func(sym symbol.ClassSymbol) bool {
		return sym == thisClass || sym == otherSource
	}
	c := NewCollector(cp, isSource)
	c.Visit(&bound.TypeBoundClass{
		Sym:        thisClass,
		Superclass: classTyPtr(types.ClassOf(otherSource)),
	})

	if len(c.TransitiveClasses()) != 0 {
		t.Errorf("expected no collected classes for source-only references, got %v", c.TransitiveClasses())
	}
}

func classTyPtr(ct types.ClassTy) *types.ClassTy { return &ct }
