package classfile

import (
	"strings"

	"github.com/stackb/headerc/pkg/types"
)

// Descriptor erases t to its JVM field/parameter descriptor, discarding
// generics and wildcards entirely (that information lives in the Signature
// attribute instead). A type variable erases to its first bound's
// descriptor; callers that already track bounds should resolve that
// themselves and pass the erased Type in, since Descriptor only has t to
// go on and defaults an unresolved type variable to java/lang/Object.
func Descriptor(t types.Type) string {
	var b strings.Builder
	writeDescriptor(&b, t)
	return b.String()
}

func writeDescriptor(b *strings.Builder, t types.Type) {
	switch v := t.(type) {
	case types.ClassTy:
		b.WriteByte('L')
		b.WriteString(v.Sym().Binary)
		b.WriteByte(';')
	case types.ArrayTy:
		b.WriteByte('[')
		writeDescriptor(b, v.Elem)
	case types.PrimTy:
		b.WriteString(primDescriptor(v.PKind))
	case types.TyVar:
		b.WriteString("Ljava/lang/Object;")
	case types.VoidTy:
		b.WriteByte('V')
	case types.ErrorTy:
		b.WriteString("Ljava/lang/Object;")
	default:
		b.WriteString("Ljava/lang/Object;")
	}
}

// MethodDescriptor erases a method's parameter and return types to the
// combined "(...)..." descriptor.
func MethodDescriptor(params []types.Type, ret types.Type) string {
	var b strings.Builder
	b.WriteByte('(')
	for _, p := range params {
		writeDescriptor(&b, p)
	}
	b.WriteByte(')')
	writeDescriptor(&b, ret)
	return b.String()
}

func primDescriptor(k types.PrimKind) string {
	switch k {
	case types.Boolean:
		return "Z"
	case types.Byte:
		return "B"
	case types.Short:
		return "S"
	case types.Char:
		return "C"
	case types.Int:
		return "I"
	case types.Long:
		return "J"
	case types.Float:
		return "F"
	case types.Double:
		return "D"
	default:
		return "I"
	}
}
