// Package assert holds the few assertions the tests of this module use
// most, as short forms of the testify require package.
package assert

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Nil fails the test unless value is nil. Errors are printed with %+v so
// that a stack trace is shown when there is one.
func Nil(t testing.TB, value interface{}) {
	t.Helper()
	require.Nil(t, value, "%+v", value)
}

// Equal fails the test unless both values are equal.
func Equal(t testing.TB, want, got interface{}) {
	t.Helper()
	require.Equal(t, want, got)
}

// Panics fails the test unless fn panics.
func Panics(t testing.TB, fn func()) {
	t.Helper()
	require.Panics(t, fn)
}

// IsErr fails the test unless got matches want. Errors that implement
// Is(error) bool are matched with it, any other error must be identical.
func IsErr(t testing.TB, want, got error) {
	t.Helper()
	if want == got {
		return
	}
	if w, ok := want.(interface{ Is(error) bool }); ok && w.Is(got) {
		return
	}
	t.Fatalf("want %q, got %+v", want, got)
}
