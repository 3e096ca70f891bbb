package scope

import (
	"github.com/stackb/headerc/pkg/collections"
	"github.com/stackb/headerc/pkg/symbol"
)

// CycleDetector tracks which classes currently have their hierarchy being
// computed, so a supertype chain that loops back on itself is caught
// rather than recursing forever. One detector instance is scoped to a
// single binding stage; the hierarchy binder is its only user.
type CycleDetector struct {
	inProgress *collections.SymbolSet
	table      *collections.SymbolTable
}

// NewCycleDetector constructs an empty CycleDetector.
func NewCycleDetector() *CycleDetector {
	table := collections.NewSymbolTable()
	return &CycleDetector{
		inProgress: collections.NewSymbolSet(table),
		table:      table,
	}
}

// Enter records that sym's hierarchy is now being resolved, returning false
// if sym is already in progress (a cycle). Callers must call Exit when done,
// even on the error path, to keep the in-progress set accurate.
func (d *CycleDetector) Enter(sym symbol.ClassSymbol) bool {
	if d.inProgress.Contains(sym) {
		return false
	}
	d.inProgress.Add(sym)
	return true
}

// Exit marks sym's hierarchy resolution complete.
func (d *CycleDetector) Exit(sym symbol.ClassSymbol) {
	d.inProgress.Remove(sym)
}
