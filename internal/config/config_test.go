package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeJSON(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	path := writeJSON(t, "catapult.json", `{
		"package": {"name": "cjson", "version": "1.0.0"},
		"dependencies": {"zstd": {"version": "^1.5", "registry": "default", "channel": "stable"}}
	}`)

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.PackageName != "cjson" || m.PackageVersion != "1.0.0" {
		t.Errorf("unexpected package info: %+v", m)
	}
	dep, ok := m.Dependencies["zstd"]
	if !ok || dep.Version != "^1.5" {
		t.Errorf("unexpected dependency: %+v", m.Dependencies)
	}
}

func TestLoadToolchain(t *testing.T) {
	path := writeJSON(t, "toolchain.json", `{
		"c_compiler": {"path": "/usr/bin/gcc", "id": "gcc", "version": {"major": 13, "minor": 2, "patch": 0, "str": "13.2.0"}},
		"profiles": {
			"Debug": {"c_flags": ["-g", "-O0"], "cxx_flags": ["-g", "-O0"]},
			"Release": {"c_flags": ["-O2"], "cxx_flags": ["-O2"]}
		}
	}`)

	tc, err := LoadToolchain(path)
	if err != nil {
		t.Fatalf("LoadToolchain: %v", err)
	}
	if tc.CCompiler == nil || tc.CCompiler.Path != "/usr/bin/gcc" {
		t.Fatalf("unexpected c compiler: %+v", tc.CCompiler)
	}
	if tc.CxxCompiler != nil {
		t.Errorf("expected nil cxx compiler, got %+v", tc.CxxCompiler)
	}
	debug, ok := tc.Profile("Debug")
	if !ok || len(debug.CFlags) != 2 {
		t.Errorf("unexpected Debug profile: %+v", debug)
	}
}

func TestLoadResolvedDependencies(t *testing.T) {
	path := writeJSON(t, "deps.json", `{"zstd": "/deps/zstd", "cjson": "/deps/cjson"}`)

	m, err := LoadResolvedDependencies(path)
	if err != nil {
		t.Fatalf("LoadResolvedDependencies: %v", err)
	}
	if m["zstd"] != "/deps/zstd" {
		t.Errorf("unexpected map: %+v", m)
	}
}

func TestLoadManifestMissingFile(t *testing.T) {
	if _, err := LoadManifest(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
