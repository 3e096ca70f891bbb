package pipeline

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/stackb/headerc/pkg/binder"
	"github.com/stackb/headerc/pkg/classfile"
	"github.com/stackb/headerc/pkg/diag"
	"github.com/stackb/headerc/pkg/tree"
)

// mockLog is a testify mock of logging.Log, used to assert which
// operational log lines a run actually emits without wiring up a real
// zerolog writer and scraping its output.
type mockLog struct {
	mock.Mock
}

func (m *mockLog) Printf(format string, v ...any) {
	m.Called(format, v)
}

func (m *mockLog) Debugf(format string, v ...any) {
	m.Called(format, v)
}

func widgetUnit() *tree.CompUnit {
	return &tree.CompUnit{
		Source:  "Widget.java",
		Package: []string{"test"},
		Decls: []*tree.TypeDecl{
			{
				Name: "Widget",
				Kind: tree.DeclClass,
				Mods: []tree.Modifier{tree.ModPublic},
				Members: []tree.Member{
					&tree.FieldDecl{
						Name: "count",
						Type: tree.TypeRef{Kind: tree.RefPrimitive, Prim: tree.PrimInt},
						Mods: []tree.Modifier{tree.ModPublic},
					},
				},
			},
		},
	}
}

func newBinder() *binder.Binder {
	return binder.NewBinder(nil, nil, nil, nil, diag.NewSink())
}

func TestPipelineRunLowersOnCleanBind(t *testing.T) {
	b := newBinder()
	p := New(b, nil, Options{ClassFile: classfile.DefaultOptions}, nil)

	out := p.Run([]*tree.CompUnit{widgetUnit()})

	if len(out.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", out.Diagnostics)
	}
	data, ok := out.Classes["test/Widget"]
	if !ok {
		t.Fatal("expected test/Widget in output classes")
	}
	if magic := binary.BigEndian.Uint32(data[0:4]); magic != 0xCAFEBABE {
		t.Errorf("magic = %#x, want 0xCAFEBABE", magic)
	}
}

func TestPipelineRunSkipsLoweringOnDiagnostics(t *testing.T) {
	unit := &tree.CompUnit{
		Source:  "Bad.java",
		Package: []string{"test"},
		Decls: []*tree.TypeDecl{
			{
				Name: "Bad",
				Kind: tree.DeclClass,
				Superclass: &tree.TypeRef{
					Kind:  tree.RefSimple,
					Names: []string{"NoSuchClass"},
				},
			},
		},
	}

	b := newBinder()
	p := New(b, nil, Options{ClassFile: classfile.DefaultOptions}, nil)
	out := p.Run([]*tree.CompUnit{unit})

	if out.Classes != nil {
		t.Errorf("expected no classes to be lowered when diagnostics were recorded, got %v", out.Classes)
	}
	if len(out.Diagnostics) == 0 {
		t.Fatal("expected an unresolved superclass reference to record a diagnostic")
	}
}

func TestPipelineRunLogsBindAndLowerPhases(t *testing.T) {
	b := newBinder()
	log := &mockLog{}
	log.On("Printf", mock.AnythingOfType("string"), mock.Anything).Return()

	p := New(b, nil, Options{ClassFile: classfile.DefaultOptions}, log)
	p.Run([]*tree.CompUnit{widgetUnit()})

	log.AssertCalled(t, "Printf", "binding %d compilation unit(s)", []any{1})
	log.AssertCalled(t, "Printf", "lowering %d class(es)", []any{1})
}
