package deps

import (
	"sort"

	"github.com/stackb/headerc/pkg/bound"
	"github.com/stackb/headerc/pkg/symbol"
	"github.com/stackb/headerc/pkg/types"
)

// TransitivePrefix is the reserved path prefix collected classpath class
// bytes are written under in the output, keeping them distinct from the
// classes this compilation itself produced.
const TransitivePrefix = "META-INF/transitive/"

// IsSource reports whether sym was declared in the current compilation,
// distinguishing a reference that needs no copying from one that must be
// collected from the classpath.
type IsSource func(sym symbol.ClassSymbol) bool

// Collector gathers the classpath classes referenced, directly or through
// type arguments and annotations, by a set of fully bound classes, and
// copies their original bytes from cp.
type Collector struct {
	cp       *ClassPath
	isSource IsSource

	seen     map[symbol.ClassSymbol]bool
	bytes    map[string][]byte          // internal name -> verbatim bytes
	symbols  map[string]map[string]bool // jar -> set of internal names read from it
}

// NewCollector constructs a Collector reading classpath bytes from cp,
// treating any symbol isSource reports true for as already present in the
// output and therefore not collected.
func NewCollector(cp *ClassPath, isSource IsSource) *Collector {
	return &Collector{
		cp:       cp,
		isSource: isSource,
		seen:     make(map[symbol.ClassSymbol]bool),
		bytes:    make(map[string][]byte),
		symbols:  make(map[string]map[string]bool),
	}
}

// Visit walks every symbol referenced from tbc's header, members, and
// annotations, collecting each classpath-origin symbol's bytes exactly
// once.
func (c *Collector) Visit(tbc *bound.TypeBoundClass) {
	for _, st := range tbc.AllSupertypes() {
		c.visitClassTy(st)
	}
	for _, tp := range tbc.TyParams {
		c.visitIntersection(tp.Bounds)
	}
	for _, f := range tbc.Fields {
		c.visitType(f.Type)
		c.visitAnnos(f.Annos)
	}
	for _, m := range tbc.Methods {
		c.visitType(m.Return)
		for _, p := range m.Params {
			c.visitType(p.Type)
		}
		for _, t := range m.Thrown {
			c.visitType(t)
		}
		for _, tp := range m.TyParams {
			c.visitIntersection(tp.Bounds)
		}
		c.visitAnnos(m.Annos)
		for _, pa := range m.ParamAnnos {
			c.visitAnnos(pa)
		}
	}
	c.visitAnnos(tbc.Annos)
	for _, p := range tbc.PermittedSubclasses {
		c.visitSymbol(p)
	}
}

func (c *Collector) visitType(t types.Type) {
	switch v := t.(type) {
	case types.ClassTy:
		c.visitClassTy(v)
	case types.ArrayTy:
		c.visitType(v.Elem)
	case types.WildTy:
		if v.Inner != nil {
			c.visitType(v.Inner)
		}
	}
}

func (c *Collector) visitClassTy(ct types.ClassTy) {
	for _, part := range ct.Parts {
		c.visitSymbol(part.Sym)
		for _, arg := range part.TyArgs {
			c.visitType(arg)
		}
	}
}

func (c *Collector) visitIntersection(it types.IntersectionTy) {
	for _, b := range it.Bounds {
		c.visitClassTy(b)
	}
}

func (c *Collector) visitAnnos(annos []*bound.AnnoInfo) {
	for _, a := range annos {
		if a == nil {
			continue
		}
		c.visitSymbol(a.Sym)
		for _, v := range a.Values {
			c.visitConst(v)
		}
	}
}

func (c *Collector) visitConst(v bound.Const) {
	switch v.Kind {
	case bound.EnumConst:
		c.visitSymbol(v.EnumSym)
	case bound.ClassConst:
		c.visitType(v.ClassRef)
	case bound.ArrayConst:
		for _, e := range v.Elements {
			c.visitConst(e)
		}
	case bound.AnnoConst:
		if v.Anno != nil {
			c.visitSymbol(v.Anno.Sym)
			for _, ev := range v.Anno.Values {
				c.visitConst(ev)
			}
		}
	}
}

func (c *Collector) visitSymbol(sym symbol.ClassSymbol) {
	if sym.Binary == "" || c.seen[sym] {
		return
	}
	c.seen[sym] = true
	if c.isSource(sym) {
		return
	}
	data, jar, err := c.cp.ReadClass(sym.Binary)
	if err != nil {
		return
	}
	c.bytes[sym.Binary] = data
	if c.symbols[jar] == nil {
		c.symbols[jar] = make(map[string]bool)
	}
	c.symbols[jar][sym.Binary] = true
}

// TransitiveClasses returns the collected internal-name-to-bytes map,
// verbatim copies ready to be written under TransitivePrefix.
func (c *Collector) TransitiveClasses() map[string][]byte {
	return c.bytes
}

// Record builds the dependency record listing, for each jar that
// contributed at least one collected class, the symbols consumed from it.
// Jars and symbols are sorted so the emitted JSON is reproducible across
// runs regardless of map iteration order.
func (c *Collector) Record() *Record {
	rec := &Record{}
	for jar, syms := range c.symbols {
		entry := JarUsage{Jar: jar}
		for s := range syms {
			entry.Symbols = append(entry.Symbols, s)
		}
		sort.Strings(entry.Symbols)
		rec.Jars = append(rec.Jars, entry)
	}
	sort.Slice(rec.Jars, func(i, j int) bool { return rec.Jars[i].Jar < rec.Jars[j].Jar })
	return rec
}
