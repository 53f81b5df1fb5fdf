package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/catapult-build/catapult/target"

	_ "github.com/catapult-build/catapult/internal/ixgo"
)

func writeProject(t *testing.T, dir, manifestJSON, scriptContent string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "catapult.json"), []byte(manifestJSON), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "build.catapult"), []byte(scriptContent), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoaderDiamondDependencyEvaluatedOnce(t *testing.T) {
	root := t.TempDir()

	zDir := filepath.Join(root, "z")
	writeProject(t, zDir, `{"package": {"name": "z", "version": "1.0"}, "dependencies": {}}`, `
add_static_library(TargetSpec{Name: "z", Sources: []string{"z.c"}})
`)

	aDir := filepath.Join(root, "a")
	writeProject(t, aDir, `{"package": {"name": "a", "version": "1.0"}, "dependencies": {"z": {"version": "1.0"}}}`, `
lib, _ := z.Target("z")
add_static_library(TargetSpec{Name: "a", Sources: []string{"a.c"}, Links: []any{lib}})
`)

	bDir := filepath.Join(root, "b")
	writeProject(t, bDir, `{"package": {"name": "b", "version": "1.0"}, "dependencies": {"z": {"version": "1.0"}}}`, `
lib, _ := z.Target("z")
add_static_library(TargetSpec{Name: "b", Sources: []string{"b.c"}, Links: []any{lib}})
`)

	rootDir := filepath.Join(root, "app")
	writeProject(t, rootDir, `{"package": {"name": "app", "version": "1.0"}, "dependencies": {"a": {"version": "1.0"}, "b": {"version": "1.0"}}}`, `
la, _ := a.Target("a")
lb, _ := b.Target("b")
add_executable(TargetSpec{Name: "app", Sources: []string{"main.c"}, Links: []any{la, lb}})
`)

	resolved := map[string]string{"z": zDir, "a": aDir, "b": bDir}
	l := New(target.Global{}, resolved)

	root2, g, err := l.Load(rootDir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if root2.Name != "app" {
		t.Errorf("root name = %q, want app", root2.Name)
	}
	// z, a, b, app: exactly 4 targets total, z counted only once.
	if len(g.Targets()) != 4 {
		t.Errorf("graph has %d targets, want 4: %v", len(g.Targets()), names(g.Targets()))
	}
}

func TestLoaderCycleIsGraphInvariant(t *testing.T) {
	root := t.TempDir()

	aDir := filepath.Join(root, "a")
	bDir := filepath.Join(root, "b")
	writeProject(t, aDir, `{"package": {"name": "a", "version": "1.0"}, "dependencies": {"b": {"version": "1.0"}}}`, `
add_static_library(TargetSpec{Name: "a", Sources: []string{"a.c"}})
`)
	writeProject(t, bDir, `{"package": {"name": "b", "version": "1.0"}, "dependencies": {"a": {"version": "1.0"}}}`, `
add_static_library(TargetSpec{Name: "b", Sources: []string{"b.c"}})
`)

	resolved := map[string]string{"a": aDir, "b": bDir}
	l := New(target.Global{}, resolved)
	if _, _, err := l.Load(aDir); err == nil {
		t.Fatal("expected cycle error, got nil")
	}
}

func TestLoaderMissingResolvedDependency(t *testing.T) {
	root := t.TempDir()
	writeProject(t, root, `{"package": {"name": "app", "version": "1.0"}, "dependencies": {"missing": {"version": "1.0"}}}`, `
add_executable(TargetSpec{Name: "app", Sources: []string{"main.c"}})
`)

	l := New(target.Global{}, map[string]string{})
	if _, _, err := l.Load(root); err == nil {
		t.Fatal("expected error for unresolved dependency")
	}
}

func names(ts []*target.Target) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Name
	}
	return out
}
