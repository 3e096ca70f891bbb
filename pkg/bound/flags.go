package bound

// ClassFlag, MethodFlag, FieldFlag, and ModuleFlag are distinct bit-set
// enumerations over access/modifier flags, kept separate rather than one
// shared int so a value from one space can never be mistaken for another.
// Values match the JVM class-file access_flags bit positions so the
// lowerer can write them out directly.
type ClassFlag uint16

const (
	ClassPublic     ClassFlag = 0x0001
	ClassFinal      ClassFlag = 0x0010
	ClassSuper      ClassFlag = 0x0020
	ClassInterface  ClassFlag = 0x0200
	ClassAbstract   ClassFlag = 0x0400
	ClassSynthetic  ClassFlag = 0x1000
	ClassAnnotation ClassFlag = 0x2000
	ClassEnum       ClassFlag = 0x4000
	ClassModule     ClassFlag = 0x8000
)

type MethodFlag uint16

const (
	MethodPublic       MethodFlag = 0x0001
	MethodPrivate      MethodFlag = 0x0002
	MethodProtected    MethodFlag = 0x0004
	MethodStatic       MethodFlag = 0x0008
	MethodFinal        MethodFlag = 0x0010
	MethodSynchronized MethodFlag = 0x0020
	MethodBridge       MethodFlag = 0x0040
	MethodVarargs      MethodFlag = 0x0080
	MethodNative       MethodFlag = 0x0100
	MethodAbstract     MethodFlag = 0x0400
	MethodStrict       MethodFlag = 0x0800
	MethodSynthetic    MethodFlag = 0x1000
)

type FieldFlag uint16

const (
	FieldPublic    FieldFlag = 0x0001
	FieldPrivate   FieldFlag = 0x0002
	FieldProtected FieldFlag = 0x0004
	FieldStatic    FieldFlag = 0x0008
	FieldFinal     FieldFlag = 0x0010
	FieldVolatile  FieldFlag = 0x0040
	FieldTransient FieldFlag = 0x0080
	FieldSynthetic FieldFlag = 0x1000
	FieldEnum      FieldFlag = 0x4000
)

// ModuleFlag enumerates both ModuleInfo-level bits (Open, Mandated) and
// requires-directive bits (Transitive, StaticPhase). ModuleOpen applies
// only to a ModuleInfo's own Flags and ModuleTransitive/ModuleStaticPhase
// only to a RequireInfo's Flags, so the two groups never combine in the
// same value despite ModuleOpen and ModuleTransitive sharing bit 0x0020 in
// the class-file format. Mandated marks a module relationship implied even
// when source omits it, such as a synthesized "requires java.base".
type ModuleFlag uint16

const (
	ModuleOpen        ModuleFlag = 0x0020
	ModuleMandated    ModuleFlag = 0x8000
	ModuleTransitive  ModuleFlag = 0x0020
	ModuleStaticPhase ModuleFlag = 0x0040
)

// Kind enumerates the declared-type kinds a TypeBoundClass can describe.
type Kind int

const (
	KindClass Kind = iota
	KindInterface
	KindEnum
	KindAnnotation
	KindRecord
)
