package ninja

import (
	"path/filepath"
	"strings"

	"github.com/catapult-build/catapult/target"
)

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

// sourceStem is a source file's base name without its extension, e.g.
// "core.c" -> "core".
func sourceStem(src target.SourceFile) string {
	base := filepath.Base(src.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// targetDir is a target's own output subdirectory:
// <build_dir>/<project_name>/<target_name>.dir, nested by project so
// same-named targets in different projects (permitted) never collide on
// disk without needing any extra disambiguation.
func targetDir(buildDir, projectName string, t *target.Target) string {
	return filepath.Join(buildDir, sanitize(projectName), sanitize(t.Name)+".dir")
}

func objPath(buildDir, projectName string, t *target.Target, src target.SourceFile) string {
	return filepath.Join(targetDir(buildDir, projectName, t), sourceStem(src)+".o")
}

func libraryPath(buildDir, projectName string, t *target.Target) string {
	switch t.KindOf {
	case target.StaticLibrary:
		return filepath.Join(buildDir, sanitize(projectName), sanitize(t.Name)+".a")
	case target.SharedLibrary:
		return filepath.Join(buildDir, sanitize(projectName), sanitize(t.Name)+".so")
	default:
		return ""
	}
}

func executablePath(buildDir, projectName string, t *target.Target) string {
	return filepath.Join(buildDir, sanitize(projectName), sanitize(t.Name))
}

// artifactPath returns the on-disk output of t's own link/archive step, or
// "" for InterfaceLibrary and ObjectLibrary (neither produces a
// standalone linker input of its own — an object library's objects are
// pulled in by whatever links it).
func artifactPath(buildDir, projectName string, t *target.Target) string {
	switch t.KindOf {
	case target.StaticLibrary, target.SharedLibrary:
		return libraryPath(buildDir, projectName, t)
	case target.Executable:
		return executablePath(buildDir, projectName, t)
	default:
		return ""
	}
}
