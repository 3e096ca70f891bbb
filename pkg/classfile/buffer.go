package classfile

import "bytes"

// buffer is a minimal big-endian byte builder used while assembling
// attribute bodies and member_info structures, where the literal byte
// counts of the class-file format matter more than decoding convenience.
type buffer struct {
	bytes.Buffer
}

func (b *buffer) u8(v uint8) {
	b.WriteByte(v)
}

func (b *buffer) u16(v uint16) {
	b.Write(u16(v))
}

func (b *buffer) u32(v uint32) {
	b.Write(u32(v))
}

func (b *buffer) u64(v uint64) {
	b.Write(u64(v))
}

func (b *buffer) bytesRaw(p []byte) {
	b.Write(p)
}

// attr appends one attribute_info structure: a name index, the body's
// length, then the body itself.
func (b *buffer) attr(nameIdx uint16, body []byte) {
	b.u16(nameIdx)
	b.u32(uint32(len(body)))
	b.bytesRaw(body)
}
