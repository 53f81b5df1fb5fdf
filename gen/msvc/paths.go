package msvc

import (
	"path/filepath"
	"strings"

	"github.com/catapult-build/catapult/target"
)

// targetSlug names a target's .vcxproj file on disk: its declared name,
// sanitized for filesystem safety. Every .vcxproj is nested under its own
// project's directory (see projectDir), which already keeps same-named
// targets in different projects from colliding on disk.
func targetSlug(t *target.Target) string {
	return sanitize(t.Name)
}

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// projectDir is the directory a project's .vcxproj files live in:
// <build_dir>/<project_name>.
func projectDir(buildDir, projectName string) string {
	return filepath.Join(buildDir, sanitize(projectName))
}

// vcxprojPath is where t's own .vcxproj is written.
func vcxprojPath(buildDir, projectName string, t *target.Target) string {
	return filepath.Join(projectDir(buildDir, projectName), targetSlug(t)+".vcxproj")
}

// vcxprojRef computes the path one .vcxproj uses to reference another's
// .vcxproj file, relative to the referencing project's own directory.
// Same-project references stay in the same directory; cross-project
// references step up to buildDir and back down into the other project's
// directory.
func vcxprojRef(ownProject, depProject string, dep *target.Target) string {
	file := targetSlug(dep) + ".vcxproj"
	if ownProject == depProject {
		return file
	}
	return filepath.Join("..", sanitize(depProject), file)
}
