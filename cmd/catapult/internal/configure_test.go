package internal

import (
	"os"
	"path/filepath"
	"testing"

	_ "github.com/catapult-build/catapult/internal/ixgo"
)

func writeFixtureProject(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	manifest := `{"package": {"name": "app", "version": "1.0"}, "dependencies": {}}`
	script := `add_executable(TargetSpec{Name: "app", Sources: []string{"main.c"}})`
	if err := os.WriteFile(filepath.Join(dir, "catapult.json"), []byte(manifest), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "build.catapult"), []byte(script), 0644); err != nil {
		t.Fatal(err)
	}
}

func writeFixtureToolchain(t *testing.T, path string) {
	t.Helper()
	doc := `{
		"c_compiler": {"path": "/usr/bin/gcc", "id": "gcc", "version": {"str": "13"}},
		"profiles": {"Debug": {"c_flags": ["-g"]}}
	}`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
}

func resetConfigureFlags() {
	sourceDir, buildDir, generatorName, toolchainPath, profileName = ".", "build", "Ninja", "toolchain.json", ""
}

func TestRunConfigureNinjaEndToEnd(t *testing.T) {
	resetConfigureFlags()
	root := t.TempDir()
	writeFixtureProject(t, root)

	toolchainFile := filepath.Join(root, "toolchain.json")
	writeFixtureToolchain(t, toolchainFile)

	resolvedFile := filepath.Join(root, "resolved_deps.json")
	if err := os.WriteFile(resolvedFile, []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}

	sourceDir = root
	buildDir = filepath.Join(root, "out")
	generatorName = "Ninja"
	toolchainPath = toolchainFile

	cmd := configureCmd
	cmd.Flags().Set("profile", "Debug")
	cmd.Flags().Set("resolved-deps", resolvedFile)

	if err := runConfigure(cmd, nil); err != nil {
		t.Fatalf("runConfigure: %v", err)
	}

	if _, err := os.Stat(filepath.Join(buildDir, "build.ninja")); err != nil {
		t.Errorf("expected build.ninja: %v", err)
	}
}

func TestRunConfigureRejectsProfileWithMSVC(t *testing.T) {
	resetConfigureFlags()
	root := t.TempDir()
	writeFixtureProject(t, root)

	toolchainFile := filepath.Join(root, "toolchain.json")
	writeFixtureToolchain(t, toolchainFile)
	resolvedFile := filepath.Join(root, "resolved_deps.json")
	os.WriteFile(resolvedFile, []byte(`{}`), 0644)

	sourceDir = root
	buildDir = filepath.Join(root, "out")
	generatorName = "MSVC"
	toolchainPath = toolchainFile

	cmd := configureCmd
	cmd.Flags().Set("profile", "Debug")
	cmd.Flags().Set("resolved-deps", resolvedFile)

	if err := runConfigure(cmd, nil); err == nil {
		t.Fatal("expected ToolchainMismatch for --profile with --generator MSVC")
	}
}

func TestRunConfigureUnknownGenerator(t *testing.T) {
	resetConfigureFlags()
	generatorName = "bogus"
	cmd := configureCmd
	if err := runConfigure(cmd, nil); err == nil {
		t.Fatal("expected error for unknown generator")
	}
}
