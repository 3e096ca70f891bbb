package classfile

import (
	"bytes"

	"github.com/stackb/headerc/pkg/bound"
	"github.com/stackb/headerc/pkg/collections"
	"github.com/stackb/headerc/pkg/sig"
	"github.com/stackb/headerc/pkg/symbol"
	"github.com/stackb/headerc/pkg/types"
)

// ClassLookup resolves a class symbol to its bound representation, used to
// walk the inner-class closure and to find the nest host and nest members.
type ClassLookup func(sym symbol.ClassSymbol) (*bound.TypeBoundClass, bool)

// Options configures the emitted class-file version.
type Options struct {
	MajorVersion uint16
	MinorVersion uint16
}

// DefaultOptions targets Java 17 class files (major version 61), the
// newest version this lowerer has sealed-class and record support for.
var DefaultOptions = Options{MajorVersion: 61, MinorVersion: 0}

const classMagic = 0xCAFEBABE

// LowerClass renders a fully const-bound class into byte-exact class-file
// output.
func LowerClass(tbc *bound.TypeBoundClass, lookup ClassLookup, opts Options) []byte {
	pool := NewConstantPool()

	thisIdx := pool.ClassInfo(tbc.Sym.Binary)
	var superIdx uint16
	if tbc.Superclass != nil {
		superIdx = pool.ClassInfo(tbc.Superclass.Sym().Binary)
	}

	var ifaceIdx []uint16
	for _, iface := range tbc.Interfaces {
		ifaceIdx = append(ifaceIdx, pool.ClassInfo(iface.Sym().Binary))
	}

	fieldsBody := lowerFields(pool, tbc.Fields)
	methodsBody := lowerMethods(pool, tbc.Methods, lookup)
	classAttrs := lowerClassAttributes(pool, tbc, lookup)

	var body buffer
	body.u16(uint16(tbc.Flags))
	body.u16(thisIdx)
	body.u16(superIdx)
	body.u16(uint16(len(ifaceIdx)))
	for _, idx := range ifaceIdx {
		body.u16(idx)
	}
	body.bytesRaw(fieldsBody)
	body.bytesRaw(methodsBody)
	writeAttributes(&body, pool, classAttrs)

	var out bytes.Buffer
	var header buffer
	header.u32(classMagic)
	header.u16(opts.MinorVersion)
	header.u16(opts.MajorVersion)
	header.u16(uint16(pool.Len()))
	out.Write(header.Bytes())
	_ = pool.WriteTo(&out)
	out.Write(body.Bytes())
	return out.Bytes()
}

func lowerFields(pool *ConstantPool, fields []*bound.Field) []byte {
	var b buffer
	b.u16(uint16(len(fields)))
	for _, f := range fields {
		desc := Descriptor(f.Type)
		b.u16(uint16(f.Flags))
		b.u16(pool.Utf8(f.Name))
		b.u16(pool.Utf8(desc))

		var attrs []attrEntry
		if f.ConstValue != nil && f.Flags&bound.FieldStatic != 0 {
			attrs = append(attrs, constantValueAttr(pool, *f.ConstValue))
		}
		if sig.NeedsSignature(f.Type) {
			attrs = append(attrs, signatureAttr(pool, sig.WriteFieldSignature(f.Type)))
		}
		if len(f.Annos) > 0 {
			attrs = append(attrs, runtimeAnnotationsAttr(pool, f.Annos, true))
		}
		writeAttributes(&b, pool, attrs)
	}
	return b.Bytes()
}

func lowerMethods(pool *ConstantPool, methods []*bound.Method, lookup ClassLookup) []byte {
	var b buffer
	b.u16(uint16(len(methods)))
	for _, m := range methods {
		paramTypes := make([]types.Type, len(m.Params))
		for i, p := range m.Params {
			paramTypes[i] = p.Type
		}
		desc := MethodDescriptor(paramTypes, m.Return)

		b.u16(uint16(m.Flags))
		b.u16(pool.Utf8(m.Name))
		b.u16(pool.Utf8(desc))

		var attrs []attrEntry
		needsSig := sig.NeedsSignature(m.Return) || len(m.TyParams) > 0
		for _, p := range paramTypes {
			needsSig = needsSig || sig.NeedsSignature(p)
		}
		if needsSig {
			attrs = append(attrs, signatureAttr(pool, sig.WriteMethodSignature(m.TyParams, paramTypes, m.Return, m.Thrown)))
		}
		if len(m.Thrown) > 0 {
			names := make([]string, len(m.Thrown))
			for i, t := range m.Thrown {
				if ct, ok := t.(types.ClassTy); ok {
					names[i] = ct.Sym().Binary
				}
			}
			attrs = append(attrs, exceptionsAttr(pool, names))
		}
		if m.DefaultConst != nil {
			attrs = append(attrs, annotationDefaultAttr(pool, *m.DefaultConst))
		}
		if len(m.Annos) > 0 {
			attrs = append(attrs, runtimeAnnotationsAttr(pool, m.Annos, true))
		}
		if len(m.ParamAnnos) > 0 {
			attrs = append(attrs, runtimeParamAnnotationsAttr(pool, m.ParamAnnos, true))
		}
		writeAttributes(&b, pool, attrs)
	}
	return b.Bytes()
}

func lowerClassAttributes(pool *ConstantPool, tbc *bound.TypeBoundClass, lookup ClassLookup) []attrEntry {
	var attrs []attrEntry

	needsSig := len(tbc.TyParams) > 0
	for _, iface := range tbc.Interfaces {
		needsSig = needsSig || sig.NeedsSignature(iface)
	}
	if tbc.Superclass != nil && sig.NeedsSignature(*tbc.Superclass) {
		needsSig = true
	}
	if needsSig {
		attrs = append(attrs, signatureAttr(pool, sig.WriteClassSignature(tbc.TyParams, tbc.Superclass, tbc.Interfaces)))
	}

	if inner := innerClassClosure(tbc, lookup); len(inner) > 0 {
		attrs = append(attrs, innerClassesAttr(pool, inner))
	}

	if tbc.Owner != nil {
		if top := nestHost(tbc, lookup); top != tbc.Sym {
			attrs = append(attrs, nestHostAttr(pool, top.Binary))
		}
	} else if members := nestMembers(tbc, lookup); len(members) > 0 {
		names := make([]string, len(members))
		for i, m := range members {
			names[i] = m.Binary
		}
		attrs = append(attrs, nestMembersAttr(pool, names))
	}

	if len(tbc.PermittedSubclasses) > 0 {
		names := make([]string, len(tbc.PermittedSubclasses))
		for i, s := range tbc.PermittedSubclasses {
			names[i] = s.Binary
		}
		attrs = append(attrs, permittedSubclassesAttr(pool, names))
	}

	if len(tbc.Annos) > 0 {
		attrs = append(attrs, runtimeAnnotationsAttr(pool, tbc.Annos, true))
	}

	if tbc.Kind == bound.KindRecord {
		var components []RecordComponent
		for _, f := range tbc.Fields {
			if f.Flags&bound.FieldStatic != 0 {
				continue
			}
			comp := RecordComponent{Name: f.Name, Descriptor: Descriptor(f.Type)}
			if sig.NeedsSignature(f.Type) {
				comp.Signature = sig.WriteFieldSignature(f.Type)
			}
			components = append(components, comp)
		}
		attrs = append(attrs, recordAttr(pool, components))
	}

	return attrs
}

// innerClassClosure computes the transitive set of classes that must be
// named in tbc's InnerClasses attribute: tbc's own nested classes and,
// walking outward, every enclosing class up to the top level, each with
// its own nested siblings. A roaring-bitmap-backed SymbolSet tracks the
// visited set so a deeply nested class's attribute stays linear in the
// number of distinct classes involved rather than the number of edges
// walked to find them.
func innerClassClosure(tbc *bound.TypeBoundClass, lookup ClassLookup) []InnerClassEntry {
	table := collections.NewSymbolTable()
	visited := collections.NewSymbolSet(table)
	var entries []InnerClassEntry

	var visit func(sym symbol.ClassSymbol)
	visit = func(sym symbol.ClassSymbol) {
		if visited.Contains(sym) {
			return
		}
		visited.Add(sym)
		cur, ok := lookup(sym)
		if !ok {
			return
		}
		if cur.Owner != nil {
			var outer string
			if o, ok := lookup(*cur.Owner); ok {
				outer = o.Sym.Binary
			}
			entries = append(entries, InnerClassEntry{
				InnerBinaryName: cur.Sym.Binary,
				OuterBinaryName: outer,
				InnerSimpleName: cur.Sym.SimpleName(),
				InnerFlags:      cur.Flags,
			})
			visit(*cur.Owner)
		}
		for _, nested := range cur.Nested {
			visit(nested)
		}
	}
	visit(tbc.Sym)
	return entries
}

// nestHost walks the Owner chain to the top-level enclosing class.
func nestHost(tbc *bound.TypeBoundClass, lookup ClassLookup) symbol.ClassSymbol {
	cur := tbc
	for cur.Owner != nil {
		next, ok := lookup(*cur.Owner)
		if !ok {
			break
		}
		cur = next
	}
	return cur.Sym
}

// nestMembers returns every class nested (transitively) inside a top-level
// class tbc, which is itself its own nest host.
func nestMembers(tbc *bound.TypeBoundClass, lookup ClassLookup) []symbol.ClassSymbol {
	table := collections.NewSymbolTable()
	visited := collections.NewSymbolSet(table)
	var members []symbol.ClassSymbol

	var visit func(sym symbol.ClassSymbol)
	visit = func(sym symbol.ClassSymbol) {
		if visited.Contains(sym) {
			return
		}
		visited.Add(sym)
		cur, ok := lookup(sym)
		if !ok {
			return
		}
		for _, nested := range cur.Nested {
			members = append(members, nested)
			visit(nested)
		}
	}
	visit(tbc.Sym)
	return members
}
