// Package debug provides ad-hoc structural dumps for diagnosing the binder,
// using github.com/davecgh/go-spew to inspect deeply nested structures
// during development and in failing test output.
package debug

import (
	"io"

	"github.com/davecgh/go-spew/spew"
)

// Dump writes a deeply-expanded representation of v to w, for use behind a
// -dump_env/-dump_bound_class style CLI flag rather than in normal output.
func Dump(w io.Writer, v interface{}) {
	spew.Fdump(w, v)
}

// Sdump returns the same representation as a string, for embedding in a
// diagnostic or test failure message.
func Sdump(v interface{}) string {
	return spew.Sdump(v)
}
