// Package ninja lowers a target.Graph into a Ninja build file: rule
// blocks, per-source compile edges, per-target link edges, and phony
// aliases.
package ninja

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/catapult-build/catapult/catapulterr"
	"github.com/catapult-build/catapult/graph"
	"github.com/catapult-build/catapult/internal/atomicfile"
	"github.com/catapult-build/catapult/target"
)

const (
	ruleCC         = "cc"
	ruleCXX        = "cxx"
	ruleASM        = "asm"
	ruleArchive    = "ar"
	ruleLinkShared = "link_shared"
	ruleLinkExe    = "link_exe"
)

// Emit renders g's targets into build.ninja under buildDir and writes it
// atomically. profile selects the toolchain's flag set; it is required
// (the Ninja backend has no MSVC-style implicit per-configuration split).
// projects maps each target's ProjectDir to its owning project's name, so
// object and artifact paths can be nested per project.
func Emit(g *graph.Graph, tc *target.Toolchain, profileName, buildDir string, projects map[string]string) error {
	profile, ok := tc.Profile(profileName)
	if !ok {
		return catapulterr.Newf(catapulterr.ToolchainMismatch, "toolchain has no profile %q", profileName)
	}

	w := &writer{}
	w.comment("Generated by catapult. Do not edit.")
	w.b.WriteString("\n")
	writeRules(w, tc)

	for _, t := range g.Targets() {
		projectName, ok := projects[t.ProjectDir]
		if !ok {
			return catapulterr.Newf(catapulterr.GraphInvariant, "target %q: no project registered for directory %q", t.Name, t.ProjectDir)
		}
		if err := emitTarget(w, buildDir, projectName, t, tc, profile, projects); err != nil {
			return err
		}
		if a := artifactPath(buildDir, projectName, t); a != "" {
			w.phony(t.Name, []string{a})
		}
	}

	return atomicfile.Write(filepath.Join(buildDir, "build.ninja"), []byte(w.String()), 0644)
}

func writeRules(w *writer, tc *target.Toolchain) {
	w.rule(ruleCC, toolPath(tc.CCompiler, "cc")+" -c $in -o $out $flags", "CC $out")
	w.rule(ruleCXX, toolPath(tc.CxxCompiler, "c++")+" -c $in -o $out $flags", "CXX $out")
	w.rule(ruleASM, toolPath(tc.AsmCompiler, "as")+" -c $in -o $out $flags", "AS $out")
	w.rule(ruleArchive, toolPath(tc.Archiver, "ar")+" rcs $out $in", "AR $out")
	w.rule(ruleLinkShared, toolPath(tc.Linker, "cc")+" -shared -o $out $in $flags", "LINK $out")
	w.rule(ruleLinkExe, toolPath(tc.Linker, "cc")+" -o $out $in $flags", "LINK $out")
}

func toolPath(tool *target.CompilerTool, fallback string) string {
	if tool == nil || tool.Path == "" {
		return fallback
	}
	return tool.Path
}

// emitTarget emits every build edge a single target contributes: one
// compile edge per source, plus its own archive/link edge. An
// InterfaceLibrary contributes neither. projectName is t's own owning
// project's name; projects resolves the same for any other target
// (e.g. a link dependency) by its ProjectDir.
func emitTarget(w *writer, buildDir, projectName string, t *target.Target, tc *target.Toolchain, profile target.Profile, projects map[string]string) error {
	if t.KindOf == target.InterfaceLibrary {
		return nil
	}

	cr := graph.Compile(t)
	var objs []string
	for _, src := range t.Sources {
		obj := objPath(buildDir, projectName, t, src)
		objs = append(objs, obj)
		rule, flags, err := compileEdge(src, cr, profile)
		if err != nil {
			return catapulterr.Newf(catapulterr.GraphInvariant, "target %q: %v", t.Name, err)
		}
		w.build([]string{obj}, rule, []string{src.Path}, map[string]string{"flags": flags})
	}

	if t.KindOf == target.ObjectLibrary {
		return nil
	}

	switch t.KindOf {
	case target.StaticLibrary:
		w.build([]string{artifactPath(buildDir, projectName, t)}, ruleArchive, objs, nil)
	case target.SharedLibrary, target.Executable:
		inputs := append([]string{}, objs...)
		for _, dep := range graph.LinkOrder(t) {
			depProjectName := projects[dep.ProjectDir]
			if a := artifactPath(buildDir, depProjectName, dep); a != "" {
				inputs = append(inputs, a)
			} else if dep.KindOf == target.ObjectLibrary {
				for _, src := range dep.Sources {
					inputs = append(inputs, objPath(buildDir, depProjectName, dep, src))
				}
			}
		}
		rule := ruleLinkExe
		if t.KindOf == target.SharedLibrary {
			rule = ruleLinkShared
		}
		linkFlags := append(append([]string{}, profile.LinkFlags...), t.LinkFlagsPrivate...)
		linkFlags = append(linkFlags, t.LinkFlagsPublic...)
		w.build([]string{artifactPath(buildDir, projectName, t)}, rule, inputs, map[string]string{"flags": strings.Join(linkFlags, " ")})
	}
	return nil
}

func compileEdge(src target.SourceFile, cr graph.CompileRequirements, profile target.Profile) (rule, flags string, err error) {
	var langFlags []string
	switch src.Lang {
	case target.LangC:
		rule, langFlags = ruleCC, profile.CFlags
	case target.LangCXX:
		rule, langFlags = ruleCXX, profile.CXXFlags
	case target.LangASM:
		rule, langFlags = ruleASM, profile.ASMFlags
	default:
		return "", "", fmt.Errorf("source %q has no associated compiler (lang=%s)", src.RelPath, src.Lang)
	}

	var parts []string
	for _, d := range cr.IncludeDirs {
		parts = append(parts, "-I"+d)
	}
	for _, d := range cr.Defines {
		parts = append(parts, "-D"+d)
	}
	parts = append(parts, langFlags...)
	parts = append(parts, cr.CompileFlags...)
	return rule, strings.Join(parts, " "), nil
}
