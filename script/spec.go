// Package script embeds the Go+ interpreter (github.com/goplus/ixgo) as the
// build-script host: it registers the BuildScript classfile that every
// build.catapult file is parsed and run as, implements the five
// target-constructing host builtins, and exposes GLOBAL and per-dependency
// bindings to each freshly-evaluated script.
package script

// GopPackage marks this package as a Go+ source of classfile machinery.
const GopPackage = true

// TargetSpec is the keyword-argument struct every target-constructing
// builtin accepts. Script code fills it with a keyed composite literal,
// e.g. TargetSpec{Name: "mylib", Sources: []string{"a.cpp"}}, which is
// Go+'s keyword-argument-shaped call convention.
type TargetSpec struct {
	Name string

	Sources []string

	IncludeDirsPublic  []string
	IncludeDirsPrivate []string

	DefinesPublic  []string
	DefinesPrivate []string

	CompileFlagsPublic  []string
	CompileFlagsPrivate []string

	// LinkPublic, LinkPrivate, and Links (sugar for LinkPrivate) are
	// declared []any rather than []*target.Target so the host builtin's
	// "every element must be a Target, never a string" rule is a runtime
	// check against whatever the script actually passed, instead of a
	// static type constraint the language would enforce before the
	// builtin ever sees a bad value.
	LinkPublic  []any
	LinkPrivate []any
	Links       []any

	LinkFlagsPublic  []string
	LinkFlagsPrivate []string

	// ExportAllSymbols is reserved for Windows export-symbol generation;
	// no emitter currently reads it.
	ExportAllSymbols bool
}
