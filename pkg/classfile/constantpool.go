// Package classfile lowers a fully bound class or module into byte-exact
// JVM class-file output: constant pool construction with structural
// deduplication, the fixed class-file header and body layout, and the
// attribute set the binder's resolved information maps onto.
package classfile

import (
	"encoding/binary"
	"io"
)

// tag values from the class-file constant pool, JVM spec table 4.4-A.
const (
	tagUtf8              = 1
	tagInteger           = 3
	tagFloat             = 4
	tagLong              = 5
	tagDouble            = 6
	tagClass             = 7
	tagString            = 8
	tagFieldref          = 9
	tagMethodref          = 10
	tagInterfaceMethodref = 11
	tagNameAndType        = 12
	tagModule             = 19
	tagPackage            = 20
)

type poolKey struct {
	tag  byte
	a, b string
	n    int64
}

// ConstantPool accumulates entries, deduplicating by (tag, payload) so two
// requests for the same logical constant return the same index. Indices
// are 1-based per the class-file format; entries occupying two slots
// (Long, Double) reserve the following index as unusable, matching the
// JVM's historical quirk.
type ConstantPool struct {
	entries []entry
	byKey   map[poolKey]uint16
}

type entry struct {
	tag  byte
	data []byte
	wide bool
}

// NewConstantPool constructs an empty pool. Index 0 is never used, so the
// first real entry added lands at index 1.
func NewConstantPool() *ConstantPool {
	return &ConstantPool{byKey: make(map[poolKey]uint16)}
}

func (p *ConstantPool) intern(key poolKey, tag byte, data []byte, wide bool) uint16 {
	if idx, ok := p.byKey[key]; ok {
		return idx
	}
	idx := uint16(len(p.entries) + 1)
	p.entries = append(p.entries, entry{tag: tag, data: data, wide: wide})
	if wide {
		p.entries = append(p.entries, entry{}) // unusable filler slot
	}
	p.byKey[key] = idx
	return idx
}

// Utf8 interns a UTF-8 constant, used both directly and as the backing
// entry for class/string/name-and-type constants.
func (p *ConstantPool) Utf8(s string) uint16 {
	key := poolKey{tag: tagUtf8, a: s}
	return p.intern(key, tagUtf8, append(u16(uint16(len(s))), s...), false)
}

// ClassInfo interns a CONSTANT_Class_info naming the class with the given
// binary internal name (e.g. "java/lang/Object").
func (p *ConstantPool) ClassInfo(binaryName string) uint16 {
	key := poolKey{tag: tagClass, a: binaryName}
	if idx, ok := p.byKey[key]; ok {
		return idx
	}
	nameIdx := p.Utf8(binaryName)
	return p.intern(key, tagClass, u16(nameIdx), false)
}

// PackageInfo interns a CONSTANT_Package_info naming a package by its
// binary (slash-separated) form.
func (p *ConstantPool) PackageInfo(binaryName string) uint16 {
	key := poolKey{tag: tagPackage, a: binaryName}
	if idx, ok := p.byKey[key]; ok {
		return idx
	}
	nameIdx := p.Utf8(binaryName)
	return p.intern(key, tagPackage, u16(nameIdx), false)
}

// ModuleInfo interns a CONSTANT_Module_info naming a module by its dotted
// name.
func (p *ConstantPool) ModuleInfo(name string) uint16 {
	key := poolKey{tag: tagModule, a: name}
	if idx, ok := p.byKey[key]; ok {
		return idx
	}
	nameIdx := p.Utf8(name)
	return p.intern(key, tagModule, u16(nameIdx), false)
}

// NameAndType interns a CONSTANT_NameAndType_info pairing a member name
// with its erased descriptor.
func (p *ConstantPool) NameAndType(name, descriptor string) uint16 {
	key := poolKey{tag: tagNameAndType, a: name, b: descriptor}
	if idx, ok := p.byKey[key]; ok {
		return idx
	}
	nameIdx := p.Utf8(name)
	descIdx := p.Utf8(descriptor)
	return p.intern(key, tagNameAndType, append(u16(nameIdx), u16(descIdx)...), false)
}

// Fieldref interns a CONSTANT_Fieldref_info.
func (p *ConstantPool) Fieldref(owner, name, descriptor string) uint16 {
	return p.memberRef(tagFieldref, owner, name, descriptor)
}

// Methodref interns a CONSTANT_Methodref_info.
func (p *ConstantPool) Methodref(owner, name, descriptor string) uint16 {
	return p.memberRef(tagMethodref, owner, name, descriptor)
}

// InterfaceMethodref interns a CONSTANT_InterfaceMethodref_info.
func (p *ConstantPool) InterfaceMethodref(owner, name, descriptor string) uint16 {
	return p.memberRef(tagInterfaceMethodref, owner, name, descriptor)
}

func (p *ConstantPool) memberRef(tag byte, owner, name, descriptor string) uint16 {
	key := poolKey{tag: tag, a: owner, b: name + "\x00" + descriptor}
	if idx, ok := p.byKey[key]; ok {
		return idx
	}
	classIdx := p.ClassInfo(owner)
	ntIdx := p.NameAndType(name, descriptor)
	return p.intern(key, tag, append(u16(classIdx), u16(ntIdx)...), false)
}

// Integer interns a CONSTANT_Integer_info.
func (p *ConstantPool) Integer(v int32) uint16 {
	key := poolKey{tag: tagInteger, n: int64(v)}
	return p.intern(key, tagInteger, u32(uint32(v)), false)
}

// Float interns a CONSTANT_Float_info, keyed by the bit pattern so that
// +0.0 and -0.0, and distinct NaN payloads, remain distinct constants.
func (p *ConstantPool) Float(bits uint32) uint16 {
	key := poolKey{tag: tagFloat, n: int64(bits)}
	return p.intern(key, tagFloat, u32(bits), false)
}

// Long interns a CONSTANT_Long_info, a wide entry occupying two pool slots.
func (p *ConstantPool) Long(v int64) uint16 {
	key := poolKey{tag: tagLong, n: v}
	return p.intern(key, tagLong, u64(uint64(v)), true)
}

// Double interns a CONSTANT_Double_info, keyed by bit pattern for the same
// reason as Float.
func (p *ConstantPool) Double(bits uint64) uint16 {
	key := poolKey{tag: tagDouble, n: int64(bits)}
	return p.intern(key, tagDouble, u64(bits), true)
}

// String interns a CONSTANT_String_info referencing a Utf8 entry.
func (p *ConstantPool) String(s string) uint16 {
	key := poolKey{tag: tagString, a: s}
	if idx, ok := p.byKey[key]; ok {
		return idx
	}
	utf8Idx := p.Utf8(s)
	return p.intern(key, tagString, u16(utf8Idx), false)
}

// Len returns the constant_pool_count field value: one more than the
// number of 1-based slots actually usable, including filler slots from
// wide entries.
func (p *ConstantPool) Len() int {
	return len(p.entries) + 1
}

// WriteTo writes the constant pool body (every entry, skipping emission
// for filler slots) to w.
func (p *ConstantPool) WriteTo(w io.Writer) error {
	for _, e := range p.entries {
		if e.data == nil && e.tag == 0 {
			continue // filler slot following a wide entry
		}
		if _, err := w.Write([]byte{e.tag}); err != nil {
			return err
		}
		if _, err := w.Write(e.data); err != nil {
			return err
		}
	}
	return nil
}

func u16(v uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	return b
}

func u32(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

func u64(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
