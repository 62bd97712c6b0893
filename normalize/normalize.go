// Package normalize coerces cell values into comparable strings.
//
// It is the leaf shared by the search and reconcile packages: null detection,
// string coercion, empty-value filtering and Unicode case folding.
// Case folding is opt-out. Every function that folds takes a caseSensitive
// flag, and folding happens only when it is false.
package normalize

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/cases"
)

// Entry is a value that survived filtering, tagged with its original position.
type Entry[T any] struct {
	Index int
	Value T
}

// IsNull reports whether v is a null marker (nil or NaN).
func IsNull(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(t)
	case float32:
		return math.IsNaN(float64(t))
	default:
		return false
	}
}

// IsEmpty reports whether v is null, the empty string or whitespace only.
func IsEmpty(v any) bool {
	if IsNull(v) {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// Stringify coerces v to its string form. Lists render in fmt's list form.
// It returns false for null markers.
func Stringify(v any) (string, bool) {
	if IsNull(v) {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case fmt.Stringer:
		return t.String(), true
	default:
		return fmt.Sprint(t), true
	}
}

// ToCanonicalString returns the comparable form of v: null becomes "",
// other values are stringified and, unless caseSensitive, case folded.
func ToCanonicalString(v any, caseSensitive bool) string {
	s, _ := Stringify(v)
	return Fold(s, caseSensitive)
}

// DropEmptyOrNull removes null, empty and whitespace-only values, keeping the
// original index of every survivor.
func DropEmptyOrNull(values []any) []Entry[any] {
	out := make([]Entry[any], 0, len(values))
	for i, v := range values {
		if IsEmpty(v) {
			continue
		}
		out = append(out, Entry[any]{Index: i, Value: v})
	}
	return out
}

// Strings drops empty values and canonicalizes the rest.
func Strings(values []any, caseSensitive bool) []Entry[string] {
	kept := DropEmptyOrNull(values)
	out := make([]Entry[string], len(kept))
	for i, e := range kept {
		s, _ := Stringify(e.Value)
		out[i] = Entry[string]{Index: e.Index, Value: Fold(s, caseSensitive)}
	}
	return out
}

// folder is stateless and safe for concurrent use.
var folder = cases.Fold()

// Fold returns the Unicode case folded form of s, or s unchanged when
// caseSensitive is true.
func Fold(s string, caseSensitive bool) string {
	if caseSensitive || s == "" {
		return s
	}
	return folder.String(s)
}
