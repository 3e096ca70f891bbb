package classfile

import (
	"bytes"

	"github.com/stackb/headerc/pkg/bound"
)

// LowerModule renders a fully bound module-info.class. The class body
// itself is minimal (ACC_MODULE, no superclass, no members); everything
// module-specific lives in the Module, ModulePackages, and
// ModuleMainClass attributes.
func LowerModule(info *bound.ModuleInfo, mainClassBinaryName string, packages []string, opts Options) []byte {
	pool := NewConstantPool()
	thisIdx := pool.ClassInfo("module-info")

	var attrs []attrEntry
	attrs = append(attrs, moduleAttr(pool, info))
	if len(packages) > 0 {
		attrs = append(attrs, modulePackagesAttr(pool, packages))
	}
	if mainClassBinaryName != "" {
		attrs = append(attrs, moduleMainClassAttr(pool, mainClassBinaryName))
	}

	var body buffer
	body.u16(uint16(bound.ClassModule))
	body.u16(thisIdx)
	body.u16(0) // no superclass
	body.u16(0) // no interfaces
	body.u16(0) // no fields
	body.u16(0) // no methods
	writeAttributes(&body, pool, attrs)

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
