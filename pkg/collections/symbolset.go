package collections

import (
	"fmt"

	"github.com/RoaringBitmap/roaring"

	"github.com/stackb/headerc/pkg/symbol"
)

// SymbolTable interns class symbols to small integer ids and tracks
// visited/in-progress sets as roaring bitmaps. It backs two things: the
// hierarchy binder's per-stage "currently resolving" cycle-detection set,
// and the lowerer's inner-classes transitive-closure set.
type SymbolTable struct {
	syms []symbol.ClassSymbol
	ids  map[symbol.ClassSymbol]uint32
}

// NewSymbolTable constructs an empty SymbolTable.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		ids: make(map[symbol.ClassSymbol]uint32),
	}
}

// Add interns sym, returning its id. Adding the same symbol twice returns
// the same id.
func (t *SymbolTable) Add(sym symbol.ClassSymbol) uint32 {
	if id, ok := t.ids[sym]; ok {
		return id
	}
	id := uint32(len(t.syms))
	t.syms = append(t.syms, sym)
	t.ids[sym] = id
	return id
}

// ID returns sym's id without interning it, for callers that only want to
// test membership in a SymbolSet.
func (t *SymbolTable) ID(sym symbol.ClassSymbol) (uint32, bool) {
	id, ok := t.ids[sym]
	return id, ok
}

// Resolve returns the symbol interned at id.
func (t *SymbolTable) Resolve(id uint32) symbol.ClassSymbol {
	if int(id) >= len(t.syms) {
		panic(fmt.Sprintf("internal: symbol id out of bounds: %d >= %d", id, len(t.syms)))
	}
	return t.syms[id]
}

// SymbolSet is a compact, growable set of interned class symbols backed by
// a roaring bitmap.
type SymbolSet struct {
	table *SymbolTable
	bits  *roaring.Bitmap
}

// NewSymbolSet constructs an empty SymbolSet backed by table.
func NewSymbolSet(table *SymbolTable) *SymbolSet {
	return &SymbolSet{table: table, bits: roaring.New()}
}

// Add interns sym (if needed) and marks it present.
func (s *SymbolSet) Add(sym symbol.ClassSymbol) {
	s.bits.Add(s.table.Add(sym))
}

// Remove clears sym from the set, used by the hierarchy binder to pop a
// class off the in-progress set once its supertypes are fully resolved.
func (s *SymbolSet) Remove(sym symbol.ClassSymbol) {
	if id, ok := s.table.ID(sym); ok {
		s.bits.Remove(id)
	}
}

// Contains reports whether sym is currently present in the set.
func (s *SymbolSet) Contains(sym symbol.ClassSymbol) bool {
	id, ok := s.table.ID(sym)
	if !ok {
		return false
	}
	return s.bits.Contains(id)
}

// Len returns the number of symbols currently in the set.
func (s *SymbolSet) Len() int {
	return int(s.bits.GetCardinality())
}

// Symbols returns the set's members in ascending id order, which is
// insertion order for symbols that are never removed.
func (s *SymbolSet) Symbols() []symbol.ClassSymbol {
	out := make([]symbol.ClassSymbol, 0, s.Len())
	it := s.bits.Iterator()
	for it.HasNext() {
		out = append(out, s.table.Resolve(it.Next()))
	}
	return out
}
