package msvc

import (
	"path/filepath"

	"github.com/catapult-build/catapult/catapulterr"
	"github.com/catapult-build/catapult/graph"
	"github.com/catapult-build/catapult/internal/atomicfile"
	"github.com/catapult-build/catapult/target"
)

// Emit renders g's targets into <buildDir>/<rootProjectName>.sln plus one
// <buildDir>/<project_name>/<target_name>.vcxproj per target, one
// Configuration|Platform pair per toolchain profile. Unlike the Ninja
// backend, every profile the toolchain defines is emitted at once — MSVC
// selects a configuration inside the IDE/MSBuild invocation, not at
// generation time. projects maps each target's ProjectDir to its owning
// project's name.
func Emit(g *graph.Graph, tc *target.Toolchain, rootProjectName, buildDir string, projects map[string]string) error {
	if len(tc.Profiles) == 0 {
		return catapulterr.New(catapulterr.ToolchainMismatch, "toolchain defines no profiles for MSVC generation")
	}

	var emitted []*target.Target
	for _, t := range g.Targets() {
		projectName, ok := projects[t.ProjectDir]
		if !ok {
			return catapulterr.Newf(catapulterr.GraphInvariant, "target %q: no project registered for directory %q", t.Name, t.ProjectDir)
		}
		doc, err := renderVcxproj(t, projectName, tc, projects)
		if err != nil {
			return catapulterr.Wrap(catapulterr.IOError, err, "render "+t.Name+".vcxproj")
		}
		if err := atomicfile.Write(vcxprojPath(buildDir, projectName, t), doc, 0644); err != nil {
			return err
		}
		emitted = append(emitted, t)
	}

	sln := renderSln(emitted, projects, tc)
	return atomicfile.Write(filepath.Join(buildDir, rootProjectName+".sln"), sln, 0644)
}
