package script

import (
	"path/filepath"
	"slices"

	"github.com/catapult-build/catapult/catapulterr"
	"github.com/catapult-build/catapult/graph"
	"github.com/catapult-build/catapult/target"
)

// fatal is the sentinel panic value a failed host-builtin call raises.
// Host.Load recovers it at the evaluation boundary and turns it back into a
// returned error, since the builtins' script-facing signature
// (func(TargetSpec) *target.Target) has no room for an error return.
type fatal struct{ err *catapulterr.Error }

func raise(kind catapulterr.Kind, format string, args ...any) {
	panic(fatal{err: catapulterr.Newf(kind, format, args...)})
}

// BuildScript is the classfile every build.catapult file is interpreted
// against: internal/ixgo registers the "build.catapult" file name to this
// class.
// Fields are unexported and populated by the host via reflection before
// Main runs, never by the script itself.
type BuildScript struct {
	graph      *graph.Graph
	projectDir string

	ownTargets []*target.Target
	names      map[string]bool
}

// Gopt_BuildScript_Main is the classfile's generated entry point, called by
// the host once the instance's fields have been staged.
func Gopt_BuildScript_Main(this interface{ MainEntry() }) {
	this.MainEntry()
}

func (b *BuildScript) init() {
	if b.names == nil {
		b.names = make(map[string]bool)
	}
}

// Add_static_library is script-visible as add_static_library(...) — Go+'s
// classfile method-name lowering exposes the Go identifier
// Add_static_library under its snake_case spelling without any extra
// registration step.
func (b *BuildScript) Add_static_library(spec TargetSpec) *target.Target {
	return b.addTarget(target.StaticLibrary, spec)
}

func (b *BuildScript) Add_shared_library(spec TargetSpec) *target.Target {
	return b.addTarget(target.SharedLibrary, spec)
}

func (b *BuildScript) Add_executable(spec TargetSpec) *target.Target {
	return b.addTarget(target.Executable, spec)
}

func (b *BuildScript) Add_interface_library(spec TargetSpec) *target.Target {
	if len(spec.Sources) > 0 {
		raise(catapulterr.HostContract, "add_interface_library(%q): interface libraries carry no sources", spec.Name)
	}
	return b.addTarget(target.InterfaceLibrary, spec)
}

func (b *BuildScript) Add_object_library(spec TargetSpec) *target.Target {
	return b.addTarget(target.ObjectLibrary, spec)
}

// addTarget implements the common validation, path normalization, and
// construction steps shared by every target-constructing builtin.
func (b *BuildScript) addTarget(kind target.Kind, spec TargetSpec) *target.Target {
	b.init()

	if spec.Name == "" {
		raise(catapulterr.HostContract, "target name is required")
	}
	if b.names[spec.Name] {
		raise(catapulterr.GraphInvariant, "duplicate target name %q in project %q", spec.Name, b.projectDir)
	}

	t := target.NewTarget(kind, spec.Name, b.projectDir)

	for _, src := range spec.Sources {
		abs := b.normalize(src)
		t.Sources = append(t.Sources, target.SourceFile{
			Path:    abs,
			RelPath: src,
			Lang:    target.ClassifyLang(src),
		})
	}

	t.IncludeDirsPublic = b.normalizeAll(spec.IncludeDirsPublic)
	t.IncludeDirsPrivate = b.normalizeAll(spec.IncludeDirsPrivate)
	t.DefinesPublic = slices.Clone(spec.DefinesPublic)
	t.DefinesPrivate = slices.Clone(spec.DefinesPrivate)
	t.CompileFlagsPublic = slices.Clone(spec.CompileFlagsPublic)
	t.CompileFlagsPrivate = slices.Clone(spec.CompileFlagsPrivate)
	t.LinkFlagsPublic = slices.Clone(spec.LinkFlagsPublic)
	t.LinkFlagsPrivate = slices.Clone(spec.LinkFlagsPrivate)
	t.ExportAllSymbols = spec.ExportAllSymbols

	t.LinkPublic = checkLinkList(spec.LinkPublic, "link_public")
	// links is sugar for link_private: both lists feed the same slot.
	private := checkLinkList(spec.LinkPrivate, "link_private")
	private = append(private, checkLinkList(spec.Links, "links")...)
	t.LinkPrivate = private

	if err := b.graph.Add(t); err != nil {
		panic(fatal{err: asCatapultErr(err)})
	}

	b.names[spec.Name] = true
	b.ownTargets = append(b.ownTargets, t)
	return t
}

// checkLinkList validates that every element of a link_* argument is
// already a constructed *target.Target, never a string or anything else,
// naming the offending position and the value's actual type on failure.
func checkLinkList(vs []any, argName string) []*target.Target {
	out := make([]*target.Target, 0, len(vs))
	for i, v := range vs {
		t, ok := v.(*target.Target)
		if !ok || t == nil {
			raise(catapulterr.HostContract, "%s[%d] is not a Target value (got %T)", argName, i, v)
		}
		out = append(out, t)
	}
	return out
}

// normalize resolves a script-declared path relative to the project
// directory and lexically cleans it. Paths that escape the project directory (e.g.
// "../foo.cpp") are permitted, normalized, and recorded as-is.
func (b *BuildScript) normalize(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Clean(filepath.Join(b.projectDir, p))
}

func (b *BuildScript) normalizeAll(ps []string) []string {
	if len(ps) == 0 {
		return nil
	}
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = b.normalize(p)
	}
	return out
}

func asCatapultErr(err error) *catapulterr.Error {
	if ce, ok := err.(*catapulterr.Error); ok {
		return ce
	}
	return catapulterr.Wrap(catapulterr.GraphInvariant, err, "graph rejected target")
}
