package ninja

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/catapult-build/catapult/graph"
	"github.com/catapult-build/catapult/target"
)

func TestEscape(t *testing.T) {
	cases := map[string]string{
		"a b":      `a$ b`,
		"a:b":      `a$:b`,
		"a$b":      `a$$b`,
		"plain":    "plain",
		"a b:c$d ": `a$ b$:c$$d$ `,
	}
	for in, want := range cases {
		if got := escape(in); got != want {
			t.Errorf("escape(%q) = %q, want %q", in, got, want)
		}
	}
}

func mustAddT(t *testing.T, g *graph.Graph, tg *target.Target) {
	t.Helper()
	if err := g.Add(tg); err != nil {
		t.Fatalf("Add(%s): %v", tg.Name, err)
	}
}

func TestEmitProducesCompileAndLinkEdges(t *testing.T) {
	g := graph.New()

	lib := target.NewTarget(target.StaticLibrary, "core", "/proj")
	lib.Sources = []target.SourceFile{{Path: "/proj/core.c", RelPath: "core.c", Lang: target.LangC}}
	lib.IncludeDirsPublic = []string{"/proj/include"}
	mustAddT(t, g, lib)

	app := target.NewTarget(target.Executable, "app", "/proj")
	app.Sources = []target.SourceFile{{Path: "/proj/main.c", RelPath: "main.c", Lang: target.LangC}}
	app.LinkPrivate = []*target.Target{lib}
	mustAddT(t, g, app)

	tc := &target.Toolchain{
		CCompiler: &target.CompilerTool{Path: "/usr/bin/gcc"},
		Profiles: map[string]target.Profile{
			"Debug": {Name: "Debug", CFlags: []string{"-g", "-O0"}},
		},
	}

	projects := map[string]string{"/proj": "demo"}

	buildDir := t.TempDir()
	if err := Emit(g, tc, "Debug", buildDir, projects); err != nil {
		t.Fatalf("Emit: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(buildDir, "build.ninja"))
	if err != nil {
		t.Fatalf("read build.ninja: %v", err)
	}
	out := string(data)

	if !strings.Contains(out, "/usr/bin/gcc -c $in -o $out $flags") {
		t.Errorf("missing cc rule command:\n%s", out)
	}
	if !strings.Contains(out, "-I/proj/include") {
		t.Errorf("app's compile edge missing core's public include dir:\n%s", out)
	}
	if !strings.Contains(out, "rule "+ruleArchive) {
		t.Errorf("missing archive rule:\n%s", out)
	}
	if !strings.Contains(out, "build app: phony") {
		t.Errorf("missing phony alias for app:\n%s", out)
	}
	if !strings.Contains(out, filepath.Join(buildDir, "demo", "core.a")) {
		t.Errorf("expected core's archive nested under <build_dir>/demo:\n%s", out)
	}
	if !strings.Contains(out, filepath.Join(buildDir, "demo", "app.dir", "main.o")) {
		t.Errorf("expected main.c's object nested under <build_dir>/demo/app.dir:\n%s", out)
	}
	if !strings.Contains(out, filepath.Join(buildDir, "demo", "app")) {
		t.Errorf("expected app's executable nested under <build_dir>/demo:\n%s", out)
	}
}

func TestEmitUnknownProfileIsToolchainMismatch(t *testing.T) {
	g := graph.New()
	tc := &target.Toolchain{Profiles: map[string]target.Profile{}}
	if err := Emit(g, tc, "Debug", t.TempDir(), nil); err == nil {
		t.Fatal("expected error for unknown profile")
	}
}

func TestEmitRejectsTargetWithNoRegisteredProject(t *testing.T) {
	g := graph.New()
	mustAddT(t, g, target.NewTarget(target.Executable, "app", "/proj"))

	tc := &target.Toolchain{Profiles: map[string]target.Profile{"Debug": {Name: "Debug"}}}
	if err := Emit(g, tc, "Debug", t.TempDir(), map[string]string{}); err == nil {
		t.Fatal("expected error for a target whose ProjectDir has no entry in the projects map")
	}
}
