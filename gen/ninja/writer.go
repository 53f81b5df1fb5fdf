package ninja

import (
	"fmt"
	"sort"
	"strings"
)

// writer accumulates a ninja file's text with a plain strings.Builder.
type writer struct {
	b strings.Builder
}

func (w *writer) rule(name, command, description string) {
	fmt.Fprintf(&w.b, "rule %s\n  command = %s\n", name, command)
	if description != "" {
		fmt.Fprintf(&w.b, "  description = %s\n", description)
	}
	w.b.WriteString("\n")
}

// build emits one build edge. vars is written as "  key = value" lines
// sorted by key so output is deterministic independent of map iteration
// order.
func (w *writer) build(outputs []string, rule string, inputs []string, vars map[string]string) {
	fmt.Fprintf(&w.b, "build %s: %s %s\n", joinEscaped(outputs), rule, joinEscaped(inputs))
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&w.b, "  %s = %s\n", k, vars[k])
	}
	w.b.WriteString("\n")
}

func (w *writer) phony(alias string, targets []string) {
	fmt.Fprintf(&w.b, "build %s: phony %s\n\n", escape(alias), joinEscaped(targets))
}

func (w *writer) comment(s string) {
	fmt.Fprintf(&w.b, "# %s\n", s)
}

func (w *writer) String() string { return w.b.String() }

func joinEscaped(paths []string) string {
	escaped := make([]string, len(paths))
	for i, p := range paths {
		escaped[i] = escape(p)
	}
	return strings.Join(escaped, " ")
}
