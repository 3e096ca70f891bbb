package scope

import "fmt"

// CompoundScope implements the full seven-phase resolution order: type
// parameters, enclosing-class members, same-compilation-unit top-level
// types, single-type imports, same-package types, on-demand imports,
// implicit root imports — tried strictly in that order and returning the
// first hit. A phase may itself report AmbiguousName, which stops the
// chain rather than falling through: ties within one phase are errors,
// while ties across phases resolve to the earlier phase by construction.
type CompoundScope struct {
	phases []Scope
	// qualified is consulted only if every phase above misses on the first
	// simple name: a last-resort fully-qualified lookup against the entire
	// known-class universe (source + classpath), e.g. a source file that
	// spells out "java.util.List" without importing it.
	qualified *ClassIndex
}

// NewCompoundScope constructs a CompoundScope over phases, tried in order,
// with qualified as the fully-qualified fallback.
func NewCompoundScope(qualified *ClassIndex, phases ...Scope) *CompoundScope {
	return &CompoundScope{phases: phases, qualified: qualified}
}

// Lookup resolves key[0] through the phase chain and, failing that, tries
// the whole key against the qualified-name index.
func (c *CompoundScope) Lookup(key []string) (*Result, error) {
	if len(key) == 0 {
		return nil, fmt.Errorf("internal: empty lookup key")
	}
	for _, phase := range c.phases {
		r, err := phase.Lookup(key[0])
		if err != nil {
			return nil, err
		}
		if r != nil {
			if r.Kind == ResultClass && len(key) > 1 {
				r.Remaining = append(append([]string{}, r.Remaining...), key[1:]...)
			}
			return r, nil
		}
	}
	if c.qualified != nil {
		dotted := key[0]
		for _, seg := range key[1:] {
			dotted += "." + seg
		}
		if sym, remaining, ok := c.qualified.Lookup(dotted); ok {
			return &Result{Kind: ResultClass, Sym: sym, Remaining: remaining}, nil
		}
	}
	return nil, nil
}
