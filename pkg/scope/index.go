package scope

import (
	"strings"

	"github.com/dghubble/trie"

	"github.com/stackb/headerc/pkg/symbol"
)

// ClassIndex is a trie of every known dotted class name (source and
// classpath) to its ClassSymbol, supporting longest-prefix lookup of a
// fully-qualified reference whose tail may be nested-class simple names
// (e.g. "com.foo.Outer.Inner" resolves "com.foo.Outer" as the root, leaving
// "Inner" as the remaining tail).
type ClassIndex struct {
	t *trie.PathTrie
}

// NewClassIndex constructs an empty ClassIndex.
func NewClassIndex() *ClassIndex {
	return &ClassIndex{
		t: trie.NewPathTrieWithConfig(&trie.PathTrieConfig{
			Segmenter: dotSegmenter,
		}),
	}
}

// Put registers dotted (e.g. "java.util.List") as naming sym.
func (x *ClassIndex) Put(dotted string, sym symbol.ClassSymbol) {
	x.t.Put(dotted, sym)
}

// Lookup finds the longest registered prefix of dotted, returning the
// symbol it names and the unconsumed simple-name tail, or ok=false if no
// prefix of dotted is registered at all.
func (x *ClassIndex) Lookup(dotted string) (sym symbol.ClassSymbol, remaining []string, ok bool) {
	var lastValue interface{}
	var lastEnd int
	x.t.WalkPath(dotted, func(key string, value interface{}) error {
		lastValue = value
		lastEnd = len(key)
		return nil
	})
	if lastValue == nil {
		return symbol.ClassSymbol{}, nil, false
	}
	sym = lastValue.(symbol.ClassSymbol)
	tail := strings.TrimPrefix(dotted[lastEnd:], ".")
	if tail != "" {
		remaining = strings.Split(tail, ".")
	}
	return sym, remaining, true
}

// dotSegmenter segments a dotted path by '.' boundaries, so each trie level
// corresponds to one name component instead of one byte.
func dotSegmenter(path string, start int) (segment string, next int) {
	if len(path) == 0 || start < 0 || start > len(path)-1 {
		return "", -1
	}
	end := strings.IndexRune(path[start+1:], '.')
	if end == -1 {
		return path[start:], -1
	}
	return path[start : start+end+1], start + end + 1
}
