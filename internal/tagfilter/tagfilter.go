// Package tagfilter compiles and evaluates the tag-predicate grammar of
// spec.md §4.1: term ("&" term)*, where a term is either a bare key
// (existence) or "key=value,value2,..." (existence plus one of a set of
// values).
package tagfilter

import (
	"strings"

	"github.com/cualbondi/osmptparser/internal/errs"
)

// term is one conjunct of a compiled Filter.
type term struct {
	key    string
	values []string // empty => existence-only
}

// Filter evaluates a compiled tag expression against a primitive's tags.
// The zero value (from compiling an empty expression) matches everything.
type Filter struct {
	terms []term
}

// Compile parses expr into a Filter. An empty expression matches all tag
// sets. Per spec.md, invalid syntax is not defined by the source; this
// implementation rejects empty keys, which is the one malformed shape the
// grammar can't otherwise represent.
func Compile(expr string) (*Filter, error) {
	if expr == "" {
		return &Filter{}, nil
	}

	var terms []term
	for _, rawTerm := range strings.Split(expr, "&") {
		if rawTerm == "" {
			return nil, errs.ConfigErrorf("tag filter %q has an empty term", expr)
		}

		key, rawValues, hasValues := strings.Cut(rawTerm, "=")
		if key == "" {
			return nil, errs.ConfigErrorf("tag filter %q has an empty key", expr)
		}

		t := term{key: key}
		if hasValues {
			t.values = strings.Split(rawValues, ",")
		}
		terms = append(terms, t)
	}

	return &Filter{terms: terms}, nil
}

// MustCompile is like Compile but panics on error; useful for the two
// fixed convenience profiles whose expressions are compile-time constants.
func MustCompile(expr string) *Filter {
	f, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return f
}

// Matches reports whether tags satisfies every term of f: conjunction
// across terms, disjunction across a single term's value list.
func (f *Filter) Matches(tags map[string]string) bool {
	if f == nil {
		return true
	}
	for _, t := range f.terms {
		value, ok := tags[t.key]
		if !ok {
			return false
		}
		if len(t.values) == 0 {
			continue // existence-only term satisfied
		}
		if !containsString(t.values, value) {
			return false
		}
	}
	return true
}

func containsString(haystack []string, needle string) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}
