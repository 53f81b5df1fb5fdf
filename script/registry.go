package script

import "github.com/catapult-build/catapult/target"

// bindings stages the GLOBAL value and every declared dependency's
// DependencyHandle for the one script evaluation currently in flight. A
// build.catapult file can only reference names the loader injected into its
// compiled preamble (see host.go's preamble), and the preamble's generated
// accessor calls read from here.
//
// Execution is single-threaded and cooperative: the loader never evaluates
// two scripts concurrently, so a single staging slot is sufficient and
// keeps the host/script boundary simple, with no synchronization primitive
// needed for this single-threaded path.
var current *bindings

type bindings struct {
	global target.Global
	deps   map[string]*target.DependencyHandle
}

// stage installs b as the current bindings for the next script evaluation
// and returns a function that clears it, for use with defer.
func stage(b *bindings) func() {
	current = b
	return func() { current = nil }
}

// LookupGlobal returns the GLOBAL value for the in-flight script
// evaluation. The loader's generated preamble calls this to initialize the
// script-visible GLOBAL variable.
func LookupGlobal() target.Global {
	if current == nil {
		return target.Global{}
	}
	return current.global
}

// LookupDependency returns the DependencyHandle bound to name for the
// in-flight script evaluation. The loader's generated preamble calls this
// once per declared dependency.
func LookupDependency(name string) *target.DependencyHandle {
	if current == nil {
		return nil
	}
	return current.deps[name]
}
