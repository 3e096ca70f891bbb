// Package symbol defines the stable identifiers that key every lookup in the
// binder: classes, type variables, fields, and methods. Symbols carry no
// resolved information of their own; they are keys into an env.Env.
package symbol

import (
	"fmt"
	"strings"
)

// ClassSymbol is the binary internal name of a class, e.g. "java/util/List"
// or "test/Outer$Inner" for a nested class.
type ClassSymbol struct {
	Binary string
}

// NewClassSymbol constructs a ClassSymbol from its binary internal name.
func NewClassSymbol(binary string) ClassSymbol {
	return ClassSymbol{Binary: binary}
}

// String implements fmt.Stringer.
func (c ClassSymbol) String() string {
	return c.Binary
}

// SimpleName returns the last '$'- or '/'-delimited segment of the binary
// name, e.g. "Inner" for "test/Outer$Inner".
func (c ClassSymbol) SimpleName() string {
	s := c.Binary
	if i := strings.LastIndexAny(s, "/$"); i >= 0 {
		s = s[i+1:]
	}
	return s
}

// PackageName returns the '/'-delimited package prefix, or "" for the
// unnamed package.
func (c ClassSymbol) PackageName() string {
	s := c.Binary
	if i := strings.LastIndex(s, "/"); i >= 0 {
		return s[:i]
	}
	return ""
}

// IsNested reports whether the binary name contains a '$' nesting separator.
func (c ClassSymbol) IsNested() bool {
	return strings.Contains(c.Binary, "$")
}

// TyVarSymbol identifies a type parameter declared by owner with the given
// simple name. Two TyVarSymbols with the same owner and name are the same
// type variable.
type TyVarSymbol struct {
	Owner fmt.Stringer
	Name  string
}

// String implements fmt.Stringer.
func (t TyVarSymbol) String() string {
	return fmt.Sprintf("%s#%s", t.Owner, t.Name)
}

// FieldSymbol identifies a field declared by Owner with the given Name.
type FieldSymbol struct {
	Owner ClassSymbol
	Name  string
}

// String implements fmt.Stringer.
func (f FieldSymbol) String() string {
	return fmt.Sprintf("%s#%s", f.Owner, f.Name)
}

// MethodSymbol identifies a method declared by Owner with the given Name and
// erased Descriptor (e.g. "(Ljava/lang/String;I)V"). Descriptor
// disambiguates overloads and must be stable under later substitution.
type MethodSymbol struct {
	Owner      ClassSymbol
	Name       string
	Descriptor string
}

// String implements fmt.Stringer.
func (m MethodSymbol) String() string {
	return fmt.Sprintf("%s#%s%s", m.Owner, m.Name, m.Descriptor)
}

// ModuleSymbol identifies a module by its declared name.
type ModuleSymbol struct {
	Name string
}

// JavaBase is the well-known module every other module implicitly requires.
var JavaBase = ModuleSymbol{Name: "java.base"}

// String implements fmt.Stringer.
func (m ModuleSymbol) String() string {
	return m.Name
}
