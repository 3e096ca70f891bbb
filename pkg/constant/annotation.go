package constant

import (
	"fmt"

	"github.com/stackb/headerc/pkg/bound"
	"github.com/stackb/headerc/pkg/symbol"
	"github.com/stackb/headerc/pkg/tree"
	"github.com/stackb/headerc/pkg/types"
)

// ClassLookup resolves a dotted type-name path to the class it names, used
// both for an annotation's own type and for the class part of an enum
// constant reference ("Color.RED" resolves "Color" through this).
type ClassLookup func(path []string) (symbol.ClassSymbol, bool)

// AnnoTypeLookup returns the bound representation of an annotation type, so
// its declared elements (default values, array-ness) are available during
// argument evaluation.
type AnnoTypeLookup func(sym symbol.ClassSymbol) (*bound.TypeBoundClass, bool)

// AnnotationEvaluator evaluates annotation literals into AnnoInfo, applying
// the scalar-to-single-element-array coercion for array-typed elements and
// falling back to each unspecified element's declared default.
type AnnotationEvaluator struct {
	eval        *Evaluator
	resolveType ClassLookup
	annoType    AnnoTypeLookup
}

// NewAnnotationEvaluator constructs an AnnotationEvaluator. eval evaluates
// the scalar/primitive/string subexpressions; resolveType and annoType
// supply the name-resolution and annotation-type metadata this package
// does not otherwise have access to.
func NewAnnotationEvaluator(eval *Evaluator, resolveType ClassLookup, annoType AnnoTypeLookup) *AnnotationEvaluator {
	return &AnnotationEvaluator{eval: eval, resolveType: resolveType, annoType: annoType}
}

// Evaluate evaluates a single annotation literal, including any nested
// annotation-typed elements, into its bound form.
func (a *AnnotationEvaluator) Evaluate(src tree.Anno) (*bound.AnnoInfo, error) {
	sym, ok := a.resolveType(src.Name)
	if !ok {
		return nil, fmt.Errorf("cannot resolve annotation type %v", src.Name)
	}
	decl, ok := a.annoType(sym)
	if !ok {
		return nil, fmt.Errorf("annotation type %v has no bound declaration", src.Name)
	}

	elements := make(map[string]*bound.Method, len(decl.Methods))
	for _, m := range decl.Methods {
		elements[m.Name] = m
	}

	info := &bound.AnnoInfo{
		Sym:    sym,
		Values: make(map[string]bound.Const, len(src.Values)),
	}
	seen := make(map[string]bool, len(src.Values))
	for _, ev := range src.Values {
		elem := elements[ev.Name]
		v, err := a.evaluateValue(ev.Value, elem)
		if err != nil {
			return nil, fmt.Errorf("element %q of %v: %w", ev.Name, src.Name, err)
		}
		v = coerce(v, elem)
		info.Values[ev.Name] = v
		info.SourceOrder = append(info.SourceOrder, ev.Name)
		seen[ev.Name] = true
	}

	for name, m := range elements {
		if seen[name] {
			continue
		}
		if m.DefaultValue == nil {
			continue
		}
		if m.DefaultConst != nil {
			info.Values[name] = *m.DefaultConst
			continue
		}
		expr, ok := m.DefaultValue.(tree.Expr)
		if !ok {
			continue
		}
		v, err := a.evaluateValue(expr, m)
		if err != nil {
			return nil, fmt.Errorf("default for element %q of %v: %w", name, src.Name, err)
		}
		info.Values[name] = coerce(v, m)
	}
	return info, nil
}

// coerce applies the single rule the rest of the evaluator leaves to the
// caller: a scalar value assigned to an array-typed element is wrapped as
// a one-element array.
func coerce(v bound.Const, elem *bound.Method) bound.Const {
	if elem == nil || v.Kind == bound.ArrayConst {
		return v
	}
	if !isArrayElementType(elem) {
		return v
	}
	return bound.Const{Kind: bound.ArrayConst, Elements: []bound.Const{v}}
}

func isArrayElementType(elem *bound.Method) bool {
	if elem.Return == nil {
		return false
	}
	return elem.Return.Kind() == types.TagArray
}

// evaluateValue evaluates one annotation-argument expression, recursing
// into nested annotation literals and array initializers and resolving an
// enum reference's class. The bare Evaluator leaves a nested annotation's
// contents and an enum constant's class unresolved, since those need the
// scope and annotation-type metadata this evaluator holds.
func (a *AnnotationEvaluator) evaluateValue(expr tree.Expr, elem *bound.Method) (bound.Const, error) {
	switch n := expr.(type) {
	case *tree.AnnoLit:
		nested, err := a.Evaluate(n.Anno)
		if err != nil {
			return bound.Const{}, err
		}
		return bound.Const{Kind: bound.AnnoConst, Anno: nested}, nil
	case *tree.ArrayInit:
		elems := make([]bound.Const, 0, len(n.Elements))
		for _, el := range n.Elements {
			v, err := a.evaluateValue(el, nil)
			if err != nil {
				return bound.Const{}, err
			}
			elems = append(elems, v)
		}
		return bound.Const{Kind: bound.ArrayConst, Elements: elems}, nil
	case *tree.EnumRef:
		if len(n.Path) < 2 {
			return bound.Const{}, fmt.Errorf("enum reference %v missing constant name", n.Path)
		}
		classSym, ok := a.resolveType(n.Path[:len(n.Path)-1])
		if !ok {
			return bound.Const{}, fmt.Errorf("cannot resolve enum type in %v", n.Path)
		}
		return bound.Const{Kind: bound.EnumConst, EnumSym: classSym, EnumName: n.Path[len(n.Path)-1]}, nil
	default:
		return a.eval.Evaluate(expr)
	}
}
