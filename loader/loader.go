// Package loader walks a project's dependency directories and evaluates
// each one's build.catapult exactly once into a single shared target.Graph,
// with the root project evaluated last. Dependency resolution and version
// selection happen upstream of this package; it only walks an already
// resolved {name: absolute dir} map, caching by directory so a diamond
// dependency is evaluated exactly once and a cycle is rejected outright.
package loader

import (
	"path/filepath"

	"github.com/catapult-build/catapult/catapulterr"
	"github.com/catapult-build/catapult/graph"
	"github.com/catapult-build/catapult/internal/config"
	"github.com/catapult-build/catapult/script"
	"github.com/catapult-build/catapult/target"
)

// Loader evaluates a root project and its transitive dependency projects
// into one target.Graph.
type Loader struct {
	host     *script.Host
	global   target.Global
	resolved map[string]string // dependency name -> absolute project dir

	graph    *graph.Graph
	cache    map[string]*target.Project // by absolute dir, for diamond dedup
	visiting map[string]bool            // cycle detection
}

// New returns a Loader that binds every script's GLOBAL to global and
// resolves declared dependency names through resolved, the upstream
// resolver's {name: absolute dir} output.
func New(global target.Global, resolved map[string]string) *Loader {
	return &Loader{
		host:     script.NewHost(),
		global:   global,
		resolved: resolved,
		graph:    graph.New(),
		cache:    make(map[string]*target.Project),
		visiting: make(map[string]bool),
	}
}

// Load evaluates rootDir and every project it transitively depends on,
// returning the root's target.Project and the shared graph containing every
// target from every loaded project. Dependencies are always evaluated
// before the projects that declare them; the root project is evaluated
// last.
func (l *Loader) Load(rootDir string) (*target.Project, *graph.Graph, error) {
	root, err := l.loadProject(rootDir)
	if err != nil {
		return nil, nil, err
	}
	if err := l.graph.Validate(); err != nil {
		return nil, nil, err
	}
	return root, l.graph, nil
}

// Projects returns every project Load has evaluated so far (the root plus
// every transitive dependency), keyed by absolute project directory. Build
// file emitters use this to resolve a target's owning project name from
// its ProjectDir.
func (l *Loader) Projects() map[string]*target.Project {
	return l.cache
}

func (l *Loader) loadProject(dir string) (*target.Project, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, catapulterr.Wrap(catapulterr.IOError, err, "resolve "+dir)
	}

	if p, ok := l.cache[absDir]; ok {
		return p, nil
	}
	if l.visiting[absDir] {
		return nil, catapulterr.Newf(catapulterr.GraphInvariant, "dependency cycle involving %q", absDir)
	}
	l.visiting[absDir] = true
	defer delete(l.visiting, absDir)

	manifest, err := config.LoadManifest(filepath.Join(absDir, "catapult.json"))
	if err != nil {
		return nil, err
	}

	deps := make(map[string]*target.DependencyHandle, len(manifest.Dependencies))
	for name := range manifest.Dependencies {
		depDir, ok := l.resolved[name]
		if !ok {
			return nil, catapulterr.Newf(catapulterr.IOError, "project %q declares dependency %q with no resolved directory", absDir, name)
		}
		depProject, err := l.loadProject(depDir)
		if err != nil {
			return nil, err
		}
		if depProject.Handle == nil {
			depProject.BuildHandle()
		}
		deps[name] = depProject.Handle
	}

	scriptPath := filepath.Join(absDir, script.ScriptFile)
	targets, err := l.host.Load(scriptPath, absDir, l.graph, l.global, deps)
	if err != nil {
		return nil, err
	}

	p := &target.Project{
		Name:     manifest.PackageName,
		RootDir:  absDir,
		Manifest: manifest,
		Targets:  targets,
	}
	l.cache[absDir] = p
	return p, nil
}
