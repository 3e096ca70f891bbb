// Package diag implements the closed diagnostic taxonomy: recoverable
// binder/evaluator errors are recorded against a source position rather than
// thrown, so the pipeline can keep going and surface every problem from one
// compilation at once.
package diag

import "fmt"

// Kind is the closed error-kind enumeration.
type Kind int

const (
	SymbolNotFound Kind = iota
	AmbiguousName
	CyclicHierarchy
	InvalidAnnotationArgument
	TypeMismatch
	ModuleNotFound
	DuplicateDeclaration
	IllegalModifier
	BadConstantExpression
	CannotResolveToType
	InternalAssertion
)

var kindNames = map[Kind]string{
	SymbolNotFound:            "SymbolNotFound",
	AmbiguousName:             "AmbiguousName",
	CyclicHierarchy:           "CyclicHierarchy",
	InvalidAnnotationArgument: "InvalidAnnotationArgument",
	TypeMismatch:              "TypeMismatch",
	ModuleNotFound:            "ModuleNotFound",
	DuplicateDeclaration:      "DuplicateDeclaration",
	IllegalModifier:           "IllegalModifier",
	BadConstantExpression:     "BadConstantExpression",
	CannotResolveToType:       "CannotResolveToType",
	InternalAssertion:         "InternalAssertion",
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Pos is a 1-based source position.
type Pos struct {
	Line, Col int
}

// Diagnostic is one recorded problem: its kind, source file and position,
// and a human-readable argument list.
type Diagnostic struct {
	Source string
	Pos    Pos
	Kind   Kind
	Args   []interface{}
}

// Error implements the error interface so a Diagnostic can be returned
// directly from helpers that still need Go's error convention.
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s: %v", d.Source, d.Pos.Line, d.Pos.Col, d.Kind, d.Args)
}

// Sink accumulates diagnostics across one compilation. It is passed
// explicitly through the pipeline rather than held in a package-level
// global.
type Sink interface {
	Report(d Diagnostic)
	Diagnostics() []Diagnostic
	HasErrors() bool
}

// NewSink constructs an in-memory Sink.
func NewSink() Sink {
	return &sliceSink{}
}

type sliceSink struct {
	diags []Diagnostic
}

func (s *sliceSink) Report(d Diagnostic) {
	s.diags = append(s.diags, d)
}

func (s *sliceSink) Diagnostics() []Diagnostic {
	return s.diags
}

func (s *sliceSink) HasErrors() bool {
	return len(s.diags) > 0
}

// Fatal panics with an InternalAssertion diagnostic. It is reserved for
// structural invariants that must hold unconditionally, never for
// recoverable name-resolution or evaluation failures, which go through
// Sink.Report instead.
func Fatal(format string, args ...interface{}) {
	panic(Diagnostic{
		Kind: InternalAssertion,
		Args: []interface{}{fmt.Sprintf(format, args...)},
	})
}
