// Package graph implements the target graph: an append-only, acyclic
// collection of immutable targets with public/private transitive
// propagation semantics.
package graph

import (
	"fmt"

	"github.com/catapult-build/catapult/catapulterr"
	"github.com/catapult-build/catapult/target"
)

// Graph holds every target registered across every loaded project, in
// insertion order — the sole source of determinism for downstream
// emitters. It is append-only during loading and read-only during
// emission.
type Graph struct {
	order []*target.Target
	index map[target.ID]*target.Target
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{index: make(map[target.ID]*target.Target)}
}

// Targets returns every registered target in insertion order.
func (g *Graph) Targets() []*target.Target {
	return g.order
}

// Lookup finds a registered target by its (project_dir, name) identity.
func (g *Graph) Lookup(id target.ID) (*target.Target, bool) {
	t, ok := g.index[id]
	return t, ok
}

// Add interns a newly constructed target into the graph. It rejects a
// duplicate name within the same project_dir and defensively rejects a
// link edge whose target closure would already include t.
func (g *Graph) Add(t *target.Target) error {
	id := t.ID()
	if _, exists := g.index[id]; exists {
		return catapulterr.Newf(catapulterr.GraphInvariant,
			"duplicate target name %q in project %q", t.Name, t.ProjectDir)
	}
	for _, dep := range append(append([]*target.Target{}, t.LinkPublic...), t.LinkPrivate...) {
		if dep == nil {
			return catapulterr.Newf(catapulterr.HostContract,
				"target %q: link list contains a nil/non-Target element", t.Name)
		}
		if reaches(dep, id, make(map[target.ID]bool)) {
			return catapulterr.Newf(catapulterr.GraphInvariant,
				"target %q: link to %q would create a cycle", t.Name, dep.Name)
		}
	}
	g.index[id] = t
	g.order = append(g.order, t)
	return nil
}

// reaches reports whether walking from's transitive link closure reaches
// target id.
func reaches(from *target.Target, id target.ID, visited map[target.ID]bool) bool {
	if from == nil {
		return false
	}
	if from.ID() == id {
		return true
	}
	if visited[from.ID()] {
		return false
	}
	visited[from.ID()] = true
	for _, dep := range from.LinkPublic {
		if reaches(dep, id, visited) {
			return true
		}
	}
	for _, dep := range from.LinkPrivate {
		if reaches(dep, id, visited) {
			return true
		}
	}
	return false
}

// PublicInterface is the set of attributes that propagate to any consumer
// of a target, computed by a public-edges-only transitive walk.
type PublicInterface struct {
	IncludeDirs  []string
	Defines      []string
	CompileFlags []string
	LinkFlags    []string
	// LinkDeps is every target whose archive/objects a consumer must link
	// against, in post-order (dependency before dependent), deduplicated
	// by first occurrence.
	LinkDeps []*target.Target
}

// Public computes t's own public interface: t's public attributes plus,
// for each of t's public link targets, that target's public interface in
// turn (private attributes of t's public link targets never leak further,
// since each step only ever walks the *next* target's public edges).
func Public(t *target.Target) PublicInterface {
	var pi PublicInterface
	visited := make(map[target.ID]bool)
	collectPublic(t, &pi, visited)
	return pi
}

func collectPublic(t *target.Target, pi *PublicInterface, visited map[target.ID]bool) {
	if t == nil || visited[t.ID()] {
		return
	}
	visited[t.ID()] = true

	pi.IncludeDirs = appendUnique(pi.IncludeDirs, t.IncludeDirsPublic...)
	pi.Defines = appendUnique(pi.Defines, t.DefinesPublic...)
	pi.CompileFlags = appendUnique(pi.CompileFlags, t.CompileFlagsPublic...)
	pi.LinkFlags = appendUnique(pi.LinkFlags, t.LinkFlagsPublic...)

	for _, dep := range t.LinkPublic {
		collectPublic(dep, pi, visited)
		pi.LinkDeps = appendTargetUnique(pi.LinkDeps, dep)
	}
}

// CompileRequirements is everything a target needs to compile its own
// sources: its own private+public attributes plus the public interface of
// everything it links (publicly or privately) — the same propagation rule
// that gives a consumer linking T access to T's public include
// dirs/defines/flags, applied here to T itself compiling against its
// direct dependencies.
type CompileRequirements struct {
	IncludeDirs  []string
	Defines      []string
	CompileFlags []string
}

// Compile computes t's own compile requirements: own private+public
// attributes, plus the public interface of every target it links
// (public or private — linking privately still affects t's own
// compilation, just not t's consumers' compilation).
func Compile(t *target.Target) CompileRequirements {
	var cr CompileRequirements
	cr.IncludeDirs = append(cr.IncludeDirs, t.IncludeDirsPrivate...)
	cr.IncludeDirs = appendUnique(cr.IncludeDirs, t.IncludeDirsPublic...)
	cr.Defines = append(cr.Defines, t.DefinesPrivate...)
	cr.Defines = appendUnique(cr.Defines, t.DefinesPublic...)
	cr.CompileFlags = append(cr.CompileFlags, t.CompileFlagsPrivate...)
	cr.CompileFlags = appendUnique(cr.CompileFlags, t.CompileFlagsPublic...)

	for _, dep := range append(append([]*target.Target{}, t.LinkPublic...), t.LinkPrivate...) {
		pi := Public(dep)
		cr.IncludeDirs = appendUnique(cr.IncludeDirs, pi.IncludeDirs...)
		cr.Defines = appendUnique(cr.Defines, pi.Defines...)
		cr.CompileFlags = appendUnique(cr.CompileFlags, pi.CompileFlags...)
	}
	return cr
}

// LinkOrder performs a post-order walk of root's link DAG and returns every
// transitively-linked target (root's direct and indirect dependencies, not
// including root itself) in reverse-topological order — dependency before
// dependent — deduplicated by first occurrence. Object libraries are included in the walk like any other link
// target; callers decide how to render them (inline objects vs. archive).
func LinkOrder(root *target.Target) []*target.Target {
	var out []*target.Target
	visited := make(map[target.ID]bool)
	var visit func(t *target.Target)
	visit = func(t *target.Target) {
		if t == nil || visited[t.ID()] {
			return
		}
		visited[t.ID()] = true
		for _, dep := range t.LinkPublic {
			visit(dep)
		}
		for _, dep := range t.LinkPrivate {
			visit(dep)
		}
		out = append(out, t)
	}
	for _, dep := range root.LinkPublic {
		visit(dep)
	}
	for _, dep := range root.LinkPrivate {
		visit(dep)
	}
	return out
}

// Validate checks that every link_* reference resolves to a target already
// present in g.
func (g *Graph) Validate() error {
	for _, t := range g.order {
		for _, dep := range append(append([]*target.Target{}, t.LinkPublic...), t.LinkPrivate...) {
			if _, ok := g.index[dep.ID()]; !ok {
				return catapulterr.Newf(catapulterr.GraphInvariant,
					"target %q links %q which is not registered in the graph", t.Name, dep.Name)
			}
		}
	}
	return nil
}

func appendUnique(dst []string, items ...string) []string {
	for _, it := range items {
		found := false
		for _, d := range dst {
			if d == it {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, it)
		}
	}
	return dst
}

func appendTargetUnique(dst []*target.Target, t *target.Target) []*target.Target {
	for _, d := range dst {
		if d.Equal(t) {
			return dst
		}
	}
	return append(dst, t)
}

// String is a debug aid, not part of the script-visible Value Model.
func (g *Graph) String() string {
	return fmt.Sprintf("Graph(%d targets)", len(g.order))
}
