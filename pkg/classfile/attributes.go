package classfile

import (
	"math"
	"sort"

	"github.com/stackb/headerc/pkg/bound"
)

// attrEntry is one attribute_info's name and already-encoded body, ready
// to be appended to a member or class body via buffer.attr.
type attrEntry struct {
	name string
	body []byte
}

func writeAttributes(b *buffer, pool *ConstantPool, attrs []attrEntry) {
	b.u16(uint16(len(attrs)))
	for _, a := range attrs {
		b.attr(pool.Utf8(a.name), a.body)
	}
}

func signatureAttr(pool *ConstantPool, signature string) attrEntry {
	var b buffer
	b.u16(pool.Utf8(signature))
	return attrEntry{name: "Signature", body: b.Bytes()}
}

func deprecatedAttr() attrEntry {
	return attrEntry{name: "Deprecated"}
}

func exceptionsAttr(pool *ConstantPool, thrownBinaryNames []string) attrEntry {
	var b buffer
	b.u16(uint16(len(thrownBinaryNames)))
	for _, name := range thrownBinaryNames {
		b.u16(pool.ClassInfo(name))
	}
	return attrEntry{name: "Exceptions", body: b.Bytes()}
}

func nestHostAttr(pool *ConstantPool, hostBinaryName string) attrEntry {
	var b buffer
	b.u16(pool.ClassInfo(hostBinaryName))
	return attrEntry{name: "NestHost", body: b.Bytes()}
}

func nestMembersAttr(pool *ConstantPool, memberBinaryNames []string) attrEntry {
	var b buffer
	b.u16(uint16(len(memberBinaryNames)))
	for _, name := range memberBinaryNames {
		b.u16(pool.ClassInfo(name))
	}
	return attrEntry{name: "NestMembers", body: b.Bytes()}
}

func permittedSubclassesAttr(pool *ConstantPool, binaryNames []string) attrEntry {
	var b buffer
	b.u16(uint16(len(binaryNames)))
	for _, name := range binaryNames {
		b.u16(pool.ClassInfo(name))
	}
	return attrEntry{name: "PermittedSubclasses", body: b.Bytes()}
}

// InnerClassEntry is one entry of the InnerClasses attribute.
type InnerClassEntry struct {
	InnerBinaryName  string
	OuterBinaryName  string // "" if the inner class has no enclosing class (a top-level member of the closure)
	InnerSimpleName  string // "" for an anonymous class
	InnerFlags       bound.ClassFlag
}

func innerClassesAttr(pool *ConstantPool, entries []InnerClassEntry) attrEntry {
	var b buffer
	b.u16(uint16(len(entries)))
	for _, e := range entries {
		b.u16(pool.ClassInfo(e.InnerBinaryName))
		if e.OuterBinaryName != "" {
			b.u16(pool.ClassInfo(e.OuterBinaryName))
		} else {
			b.u16(0)
		}
		if e.InnerSimpleName != "" {
			b.u16(pool.Utf8(e.InnerSimpleName))
		} else {
			b.u16(0)
		}
		b.u16(uint16(e.InnerFlags))
	}
	return attrEntry{name: "InnerClasses", body: b.Bytes()}
}

func enclosingMethodAttr(pool *ConstantPool, classBinaryName, methodName, methodDescriptor string) attrEntry {
	var b buffer
	b.u16(pool.ClassInfo(classBinaryName))
	if methodName == "" {
		b.u16(0)
	} else {
		b.u16(pool.NameAndType(methodName, methodDescriptor))
	}
	return attrEntry{name: "EnclosingMethod", body: b.Bytes()}
}

// MethodParamFlag mirrors the JVM's MethodParameters access_flags bits.
type MethodParamFlag uint16

const (
	ParamFinal     MethodParamFlag = 0x0010
	ParamSynthetic MethodParamFlag = 0x1000
	ParamMandated  MethodParamFlag = 0x8000
)

func methodParametersAttr(pool *ConstantPool, names []string, flags []MethodParamFlag) attrEntry {
	var b buffer
	b.u8(uint8(len(names)))
	for i, name := range names {
		if name == "" {
			b.u16(0)
		} else {
			b.u16(pool.Utf8(name))
		}
		b.u16(uint16(flags[i]))
	}
	return attrEntry{name: "MethodParameters", body: b.Bytes()}
}

func constantValueAttr(pool *ConstantPool, c bound.Const) attrEntry {
	var b buffer
	switch c.Kind {
	case bound.IntConst, bound.ByteConst, bound.ShortConst, bound.CharConst, bound.BoolConst:
		b.u16(pool.Integer(intBitsOf(c)))
	case bound.LongConst:
		b.u16(pool.Long(c.Long))
	case bound.FloatConst:
		b.u16(pool.Float(math.Float32bits(c.Float)))
	case bound.DoubleConst:
		b.u16(pool.Double(math.Float64bits(c.Double)))
	case bound.StringConst:
		b.u16(pool.String(c.Str))
	}
	return attrEntry{name: "ConstantValue", body: b.Bytes()}
}

func intBitsOf(c bound.Const) int32 {
	switch c.Kind {
	case bound.BoolConst:
		if c.Bool {
			return 1
		}
		return 0
	case bound.ByteConst:
		return int32(c.Byte)
	case bound.ShortConst:
		return int32(c.Short)
	case bound.CharConst:
		return int32(c.Char)
	default:
		return c.Int
	}
}

// annoOrder returns an annotation's element names in a deterministic order:
// source order first, then any remaining (default-filled) names sorted
// alphabetically, so byte output never depends on Go's map iteration.
func annoOrder(a *bound.AnnoInfo) []string {
	seen := make(map[string]bool, len(a.Values))
	order := make([]string, 0, len(a.Values))
	for _, name := range a.SourceOrder {
		if _, ok := a.Values[name]; ok && !seen[name] {
			order = append(order, name)
			seen[name] = true
		}
	}
	var rest []string
	for name := range a.Values {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

func encodeAnnotation(pool *ConstantPool, a *bound.AnnoInfo) []byte {
	var b buffer
	b.u16(pool.ClassInfo(a.Sym.Binary))
	names := annoOrder(a)
	b.u16(uint16(len(names)))
	for _, name := range names {
		b.u16(pool.Utf8(name))
		b.bytesRaw(encodeElementValue(pool, a.Values[name]))
	}
	return b.Bytes()
}

func encodeElementValue(pool *ConstantPool, c bound.Const) []byte {
	var b buffer
	switch c.Kind {
	case bound.BoolConst:
		b.u8('Z')
		b.u16(pool.Integer(intBitsOf(c)))
	case bound.ByteConst:
		b.u8('B')
		b.u16(pool.Integer(intBitsOf(c)))
	case bound.CharConst:
		b.u8('C')
		b.u16(pool.Integer(intBitsOf(c)))
	case bound.ShortConst:
		b.u8('S')
		b.u16(pool.Integer(intBitsOf(c)))
	case bound.IntConst:
		b.u8('I')
		b.u16(pool.Integer(c.Int))
	case bound.LongConst:
		b.u8('J')
		b.u16(pool.Long(c.Long))
	case bound.FloatConst:
		b.u8('F')
		b.u16(pool.Float(math.Float32bits(c.Float)))
	case bound.DoubleConst:
		b.u8('D')
		b.u16(pool.Double(math.Float64bits(c.Double)))
	case bound.StringConst:
		b.u8('s')
		b.u16(pool.Utf8(c.Str))
	case bound.EnumConst:
		b.u8('e')
		b.u16(pool.ClassInfo(c.EnumSym.Binary))
		b.u16(pool.Utf8(c.EnumName))
	case bound.ClassConst:
		b.u8('c')
		b.u16(pool.Utf8(classConstDescriptor(c)))
	case bound.AnnoConst:
		b.u8('@')
		b.bytesRaw(encodeAnnotation(pool, c.Anno))
	case bound.ArrayConst:
		b.u8('[')
		b.u16(uint16(len(c.Elements)))
		for _, el := range c.Elements {
			b.bytesRaw(encodeElementValue(pool, el))
		}
	}
	return b.Bytes()
}

// classConstDescriptor renders a class-literal element value's type
// descriptor. The resolved Type is carried opaquely in ClassRef by the
// constant evaluator; callers that need the descriptor populate it before
// lowering via Const.Str as a convention-free fallback when ClassRef isn't
// wired yet, keeping this package decoupled from pkg/sig.
func classConstDescriptor(c bound.Const) string {
	if c.Str != "" {
		return c.Str
	}
	return "Ljava/lang/Object;"
}

func runtimeAnnotationsAttr(pool *ConstantPool, annos []*bound.AnnoInfo, visible bool) attrEntry {
	var b buffer
	b.u16(uint16(len(annos)))
	for _, a := range annos {
		b.bytesRaw(encodeAnnotation(pool, a))
	}
	name := "RuntimeInvisibleAnnotations"
	if visible {
		name = "RuntimeVisibleAnnotations"
	}
	return attrEntry{name: name, body: b.Bytes()}
}

func runtimeParamAnnotationsAttr(pool *ConstantPool, paramAnnos [][]*bound.AnnoInfo, visible bool) attrEntry {
	var b buffer
	b.u8(uint8(len(paramAnnos)))
	for _, annos := range paramAnnos {
		b.u16(uint16(len(annos)))
		for _, a := range annos {
			b.bytesRaw(encodeAnnotation(pool, a))
		}
	}
	name := "RuntimeInvisibleParameterAnnotations"
	if visible {
		name = "RuntimeVisibleParameterAnnotations"
	}
	return attrEntry{name: name, body: b.Bytes()}
}

func annotationDefaultAttr(pool *ConstantPool, c bound.Const) attrEntry {
	return attrEntry{name: "AnnotationDefault", body: encodeElementValue(pool, c)}
}

// RecordComponent is one component of a Record attribute.
type RecordComponent struct {
	Name       string
	Descriptor string
	Signature  string // "" if the component type is not generic
}

func recordAttr(pool *ConstantPool, components []RecordComponent) attrEntry {
	var b buffer
	b.u16(uint16(len(components)))
	for _, c := range components {
		b.u16(pool.Utf8(c.Name))
		b.u16(pool.Utf8(c.Descriptor))
		if c.Signature != "" {
			writeAttributes(&b, pool, []attrEntry{signatureAttr(pool, c.Signature)})
		} else {
			b.u16(0)
		}
	}
	return attrEntry{name: "Record", body: b.Bytes()}
}

func moduleMainClassAttr(pool *ConstantPool, mainBinaryName string) attrEntry {
	var b buffer
	b.u16(pool.ClassInfo(mainBinaryName))
	return attrEntry{name: "ModuleMainClass", body: b.Bytes()}
}

func modulePackagesAttr(pool *ConstantPool, binaryPackageNames []string) attrEntry {
	var b buffer
	b.u16(uint16(len(binaryPackageNames)))
	for _, pkg := range binaryPackageNames {
		b.u16(pool.PackageInfo(pkg))
	}
	return attrEntry{name: "ModulePackages", body: b.Bytes()}
}

func moduleAttr(pool *ConstantPool, info *bound.ModuleInfo) attrEntry {
	var b buffer
	b.u16(pool.ModuleInfo(info.Name))
	b.u16(uint16(info.Flags))
	if info.Version != nil {
		b.u16(pool.Utf8(*info.Version))
	} else {
		b.u16(0)
	}

	b.u16(uint16(len(info.Requires)))
	for _, r := range info.Requires {
		b.u16(pool.ModuleInfo(r.ModuleName))
		b.u16(uint16(r.Flags))
		if r.Version != nil {
			b.u16(pool.Utf8(*r.Version))
		} else {
			b.u16(0)
		}
	}

	b.u16(uint16(len(info.Exports)))
	for _, e := range info.Exports {
		b.u16(pool.PackageInfo(e.Package))
		b.u16(0) // exports_flags: unused by this lowerer
		b.u16(uint16(len(e.ToModules)))
		for _, to := range e.ToModules {
			b.u16(pool.ModuleInfo(to))
		}
	}

	b.u16(uint16(len(info.Opens)))
	for _, o := range info.Opens {
		b.u16(pool.PackageInfo(o.Package))
		b.u16(0)
		b.u16(uint16(len(o.ToModules)))
		for _, to := range o.ToModules {
			b.u16(pool.ModuleInfo(to))
		}
	}

	b.u16(uint16(len(info.Uses)))
	for _, u := range info.Uses {
		b.u16(pool.ClassInfo(u.Service.Binary))
	}

	b.u16(uint16(len(info.Provides)))
	for _, pr := range info.Provides {
		b.u16(pool.ClassInfo(pr.Service.Binary))
		b.u16(uint16(len(pr.Impls)))
		for _, impl := range pr.Impls {
			b.u16(pool.ClassInfo(impl.Binary))
		}
	}

	return attrEntry{name: "Module", body: b.Bytes()}
}
