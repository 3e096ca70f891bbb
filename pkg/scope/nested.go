package scope

import (
	"fmt"

	"github.com/stackb/headerc/pkg/bound"
	"github.com/stackb/headerc/pkg/env"
	"github.com/stackb/headerc/pkg/symbol"
)

// ResolveNested walks remaining as a chain of nested-class simple names
// starting at root, using classes to look up each step's declared nested
// classes. It returns the innermost resolved symbol.
func ResolveNested(classes env.Env[*bound.TypeBoundClass], root symbol.ClassSymbol, remaining []string) (symbol.ClassSymbol, error) {
	chain, err := ResolveNestedChain(classes, root, remaining)
	if err != nil {
		return symbol.ClassSymbol{}, err
	}
	return chain[len(chain)-1], nil
}

// ResolveNestedChain is ResolveNested, but returns every symbol walked along
// the way, root first, so a caller building a qualified ClassTy can attach
// type arguments to each enclosing level instead of only the innermost.
func ResolveNestedChain(classes env.Env[*bound.TypeBoundClass], root symbol.ClassSymbol, remaining []string) ([]symbol.ClassSymbol, error) {
	chain := make([]symbol.ClassSymbol, 1, 1+len(remaining))
	chain[0] = root
	cur := root
	for _, name := range remaining {
		tbc, ok := classes.Get(cur)
		if !ok {
			return nil, fmt.Errorf("cannot resolve nested class %q: %s has no members bound", name, cur)
		}
		next, ok := findNested(tbc, name)
		if !ok {
			return nil, fmt.Errorf("cannot resolve nested class %q in %s", name, cur)
		}
		cur = next
		chain = append(chain, cur)
	}
	return chain, nil
}

func findNested(tbc *bound.TypeBoundClass, name string) (symbol.ClassSymbol, bool) {
	for _, n := range tbc.Nested {
		if n.SimpleName() == name {
			return n, true
		}
	}
	return symbol.ClassSymbol{}, false
}
