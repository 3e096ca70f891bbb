package scope

import (
	"github.com/stackb/headerc/pkg/bound"
	"github.com/stackb/headerc/pkg/env"
	"github.com/stackb/headerc/pkg/symbol"
)

// MemberScope is resolution phase 2: nested classes of the lexically
// enclosing class, walking the declared supertype chain transitively so a
// name declared by a closer ancestor shadows one declared further away. It
// only needs header-bound supertypes, so it is safe to use while the
// owner's own members are still being bound.
type MemberScope struct {
	owner symbol.ClassSymbol
	classes env.Env[*bound.TypeBoundClass]
}

// NewMemberScope constructs a MemberScope rooted at owner.
func NewMemberScope(owner symbol.ClassSymbol, classes env.Env[*bound.TypeBoundClass]) *MemberScope {
	return &MemberScope{owner: owner, classes: classes}
}

// Lookup implements Scope, walking own nested classes first, then
// supertypes breadth-first so a name declared by a closer ancestor shadows
// one declared further away.
func (s *MemberScope) Lookup(simpleName string) (*Result, error) {
	seen := map[symbol.ClassSymbol]bool{}
	queue := []symbol.ClassSymbol{s.owner}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if seen[cur] {
			continue
		}
		seen[cur] = true

		tbc, ok := s.classes.Get(cur)
		if !ok {
			continue
		}
		for _, nested := range tbc.Nested {
			if nested.SimpleName() == simpleName {
				return &Result{Kind: ResultClass, Sym: nested}, nil
			}
		}
		for _, super := range tbc.AllSupertypes() {
			queue = append(queue, super.Sym())
		}
	}
	return nil, nil
}
