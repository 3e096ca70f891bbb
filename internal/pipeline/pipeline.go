// Package pipeline orchestrates one compilation end to end: bind every
// compilation unit, then lower to class-file bytes only if binding recorded
// no diagnostics, matching the hard gate the driver enforces ("output jar
// is not written when any diagnostic is recorded").
package pipeline

import (
	"strings"

	"github.com/stackb/headerc/pkg/binder"
	"github.com/stackb/headerc/pkg/bound"
	"github.com/stackb/headerc/pkg/classfile"
	"github.com/stackb/headerc/pkg/deps"
	"github.com/stackb/headerc/pkg/diag"
	"github.com/stackb/headerc/pkg/logging"
	"github.com/stackb/headerc/pkg/symbol"
	"github.com/stackb/headerc/pkg/tree"
)

// Options configures one pipeline run.
type Options struct {
	ClassFile classfile.Options
	// MainClass, if non-empty, is written as the module-info's
	// ModuleMainClass attribute.
	MainClass string
	// ModuleVersion, if non-empty, is recorded on every bound module-info
	// in this compilation. Source module-info syntax carries no version
	// of its own; like javac's --module-version, it is supplied
	// externally by the driver.
	ModuleVersion string
}

// Pipeline binds and lowers a set of compilation units against a classpath.
type Pipeline struct {
	Binder    *binder.Binder
	ClassPath *deps.ClassPath // nil disables transitive collection
	Options   Options
	Log       logging.Log
}

// New constructs a Pipeline. log may be nil, in which case logging.Discard
// is used.
func New(b *binder.Binder, cp *deps.ClassPath, opts Options, log logging.Log) *Pipeline {
	if log == nil {
		log = logging.Discard
	}
	return &Pipeline{Binder: b, ClassPath: cp, Options: opts, Log: log}
}

// Output is everything a downstream jar writer needs.
type Output struct {
	// Classes maps internal name to this compilation's own emitted
	// class-file bytes.
	Classes map[string][]byte
	// Transitive maps internal name to a verbatim-copied classpath
	// class's bytes, to be written under deps.TransitivePrefix.
	Transitive map[string][]byte
	// Record is the dependency record; its Jars list is empty when
	// nothing was collected.
	Record *deps.Record
	// Diagnostics is every diagnostic recorded during binding. A
	// non-empty slice means Classes and Transitive are both nil: the
	// hard gate in Run never lowers a failed compilation.
	Diagnostics []diag.Diagnostic
}

// Run binds units, then lowers to class-file bytes only if binding recorded
// zero diagnostics.
func (p *Pipeline) Run(units []*tree.CompUnit) *Output {
	p.Log.Printf("binding %d compilation unit(s)", len(units))
	result := p.Binder.Bind(units)

	diags := p.Binder.Sink.Diagnostics()
	if len(diags) > 0 {
		p.Log.Printf("binding recorded %d diagnostic(s); skipping lowering", len(diags))
		return &Output{Diagnostics: diags}
	}

	p.Log.Printf("lowering %d class(es)", len(result.Order))
	classes := make(map[string][]byte, len(result.Order))
	lookup := classfile.ClassLookup(func(sym symbol.ClassSymbol) (*bound.TypeBoundClass, bool) {
		return result.Classes.Get(sym)
	})
	for _, sym := range result.Order {
		tbc, ok := result.Classes.Get(sym)
		if !ok {
			continue
		}
		classes[sym.Binary] = classfile.LowerClass(tbc, lookup, p.Options.ClassFile)
	}

	for _, mod := range result.Modules {
		if p.Options.ModuleVersion != "" {
			v := p.Options.ModuleVersion
			mod.Version = &v
		}
		packages := modulePackages(result.Order, result.Classes)
		classes["module-info"] = classfile.LowerModule(mod, p.Options.MainClass, packages, p.Options.ClassFile)
	}

	out := &Output{Classes: classes}

	if p.ClassPath != nil {
		isSource := func(sym symbol.ClassSymbol) bool {
			_, ok := result.Classes.Get(sym)
			return ok
		}
		collector := deps.NewCollector(p.ClassPath, isSource)
		for _, sym := range result.Order {
			if tbc, ok := result.Classes.Get(sym); ok {
				collector.Visit(tbc)
			}
		}
		out.Transitive = collector.TransitiveClasses()
		out.Record = collector.Record()
		p.Log.Printf("collected %d transitive classpath class(es)", len(out.Transitive))
	}

	return out
}

func modulePackages(order []symbol.ClassSymbol, classes interface {
	Get(symbol.ClassSymbol) (*bound.TypeBoundClass, bool)
}) []string {
	seen := make(map[string]bool)
	var packages []string
	for _, sym := range order {
		pkg := sym.PackageName()
		dotted := strings.ReplaceAll(pkg, "/", ".")
		if dotted == "" || seen[dotted] {
			continue
		}
		seen[dotted] = true
		packages = append(packages, dotted)
	}
	return packages
}
