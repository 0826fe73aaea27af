// Package template substitutes {{name}} placeholders in request text
// using environment-scoped variables. It operates on raw text before
// (and independently of) any JSON parsing, so it works on URLs, header
// values and non-JSON bodies alike.
package template

import (
	"regexp"
	"strings"
)

// placeholderPattern matches a well-formed placeholder: two braces
// around an identifier of letters, digits and underscores. Anything
// else (an unclosed "{{", spaces, punctuation) is not a placeholder
// and passes through untouched.
var placeholderPattern = regexp.MustCompile(`\{\{([A-Za-z0-9_]+)\}\}`)

// Vars is an insertion-ordered mapping of variable name to string
// value, one environment's worth of resolved variables. The resolver
// only reads it.
type Vars struct {
	names  []string
	values map[string]string
}

func NewVars() *Vars {
	return &Vars{values: make(map[string]string)}
}

// Set adds or updates a variable. A re-set name keeps its original
// position in the ordering.
func (v *Vars) Set(name, value string) {
	if _, ok := v.values[name]; !ok {
		v.names = append(v.names, name)
	}
	v.values[name] = value
}

func (v *Vars) Lookup(name string) (string, bool) {
	val, ok := v.values[name]
	return val, ok
}

func (v *Vars) Delete(name string) bool {
	if _, ok := v.values[name]; !ok {
		return false
	}
	delete(v.values, name)
	for i, n := range v.names {
		if n == name {
			v.names = append(v.names[:i], v.names[i+1:]...)
			break
		}
	}
	return true
}

func (v *Vars) Len() int {
	return len(v.names)
}

// Names returns variable names in insertion order.
func (v *Vars) Names() []string {
	out := make([]string, len(v.names))
	copy(out, v.names)
	return out
}

// Resolve substitutes every {{name}} placeholder found in text with the
// variable's value, in a single left-to-right pass. Replacement text is
// never re-scanned, so self-referential variables cannot loop. Unknown
// names stay literal: an unresolved {{name}} in the sent request is
// visible and debuggable rather than a hard failure.
func Resolve(text string, vars *Vars) string {
	if vars == nil || !strings.Contains(text, "{{") {
		return text
	}
	return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		name := match[2 : len(match)-2]
		if value, ok := vars.Lookup(name); ok {
			return value
		}
		return match
	})
}
