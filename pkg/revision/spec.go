// Package revision turns human-entered revision expressions into the
// content they name.
//
// Resolution happens in three phases: Parse splits the expression into a
// base name and an uninterpreted modifier suffix, CandidatePath maps the
// base onto storage paths in each namespace, and Resolver.ResolveBase
// looks those paths up in precedence order. Modifiers such as "^", "~3" or
// "@{5}" are reported to the caller as-is; walking history is not done
// here.
package revision

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyBase is returned when an expression has no name before its
// first modifier marker.
var ErrEmptyBase = errors.New("revision has an empty base name")

// modifierMarkers are the characters that start a modifier suffix.
const modifierMarkers = "^~@"

// Spec is a parsed revision expression.
type Spec struct {
	// Base is the name or hash being looked up. Never empty.
	Base string
	// Modifier is the verbatim suffix starting at the first '^', '~' or
	// '@', or "" when there is none.
	Modifier string
}

// HasModifier reports whether the expression carried a modifier suffix.
func (s Spec) HasModifier() bool {
	return s.Modifier != ""
}

// String reassembles the expression.
func (s Spec) String() string {
	return s.Base + s.Modifier
}

// Parse splits text at the first modifier marker.
//
//	"HEAD"         -> {Base: "HEAD"}
//	"HEAD^"        -> {Base: "HEAD", Modifier: "^"}
//	"v0.1.0~3"     -> {Base: "v0.1.0", Modifier: "~3"}
//	"HEAD@{5}~2^"  -> {Base: "HEAD", Modifier: "@{5}~2^"}
func Parse(text string) (Spec, error) {
	i := strings.IndexAny(text, modifierMarkers)
	if i < 0 {
		i = len(text)
	}
	if i == 0 {
		return Spec{}, fmt.Errorf("parse revision %q: %w", text, ErrEmptyBase)
	}
	return Spec{Base: text[:i], Modifier: text[i:]}, nil
}
