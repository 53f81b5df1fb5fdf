// Package config decodes the JSON documents cmd/catapult reads in place of
// the real catapult.toml manifest and *.toml toolchain files into the exact
// record shapes the core already consumes.
package config

import (
	"encoding/json"
	"os"

	"github.com/catapult-build/catapult/catapulterr"
	"github.com/catapult-build/catapult/target"
)

type manifestDoc struct {
	Package struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	} `json:"package"`
	Dependencies map[string]struct {
		Version  string `json:"version"`
		Registry string `json:"registry"`
		Channel  string `json:"channel"`
	} `json:"dependencies"`
}

// LoadManifest decodes the JSON stand-in for a project's catapult.toml.
func LoadManifest(path string) (*target.Manifest, error) {
	var doc manifestDoc
	if err := decodeFile(path, &doc); err != nil {
		return nil, err
	}
	m := &target.Manifest{
		PackageName:    doc.Package.Name,
		PackageVersion: doc.Package.Version,
		Dependencies:   make(map[string]target.ManifestDependency, len(doc.Dependencies)),
	}
	for name, dep := range doc.Dependencies {
		m.Dependencies[name] = target.ManifestDependency{
			Version:  dep.Version,
			Registry: dep.Registry,
			Channel:  dep.Channel,
		}
	}
	return m, nil
}

type compilerToolDoc struct {
	Path    string `json:"path"`
	ID      string `json:"id"`
	Version struct {
		Major int    `json:"major"`
		Minor int    `json:"minor"`
		Patch int    `json:"patch"`
		Str   string `json:"str"`
	} `json:"version"`
}

func (d *compilerToolDoc) toTool() *target.CompilerTool {
	if d == nil || d.Path == "" {
		return nil
	}
	return &target.CompilerTool{
		Path: d.Path,
		ID:   target.CompilerID(d.ID),
		Version: &target.Version{
			Major: d.Version.Major,
			Minor: d.Version.Minor,
			Patch: d.Version.Patch,
			Str:   d.Version.Str,
		},
	}
}

type toolchainDoc struct {
	CCompiler   *compilerToolDoc `json:"c_compiler"`
	CxxCompiler *compilerToolDoc `json:"cxx_compiler"`
	AsmCompiler *compilerToolDoc `json:"asm_compiler"`
	Linker      *compilerToolDoc `json:"linker"`
	Archiver    *compilerToolDoc `json:"archiver"`
	Profiles    map[string]struct {
		CFlags    []string `json:"c_flags"`
		CXXFlags  []string `json:"cxx_flags"`
		ASMFlags  []string `json:"asm_flags"`
		LinkFlags []string `json:"link_flags"`
		MSVC      *struct {
			RuntimeLibrary string `json:"runtime_library"`
			Optimization   string `json:"optimization"`
			DebugInfo      string `json:"debug_info"`
		} `json:"msvc"`
	} `json:"profiles"`
}

// LoadToolchain decodes the JSON stand-in for a *.toml toolchain record.
func LoadToolchain(path string) (*target.Toolchain, error) {
	var doc toolchainDoc
	if err := decodeFile(path, &doc); err != nil {
		return nil, err
	}
	tc := &target.Toolchain{
		CCompiler:   doc.CCompiler.toTool(),
		CxxCompiler: doc.CxxCompiler.toTool(),
		AsmCompiler: doc.AsmCompiler.toTool(),
		Linker:      doc.Linker.toTool(),
		Archiver:    doc.Archiver.toTool(),
		Profiles:    make(map[string]target.Profile, len(doc.Profiles)),
	}
	for name, p := range doc.Profiles {
		profile := target.Profile{
			Name:      name,
			CFlags:    p.CFlags,
			CXXFlags:  p.CXXFlags,
			ASMFlags:  p.ASMFlags,
			LinkFlags: p.LinkFlags,
		}
		if p.MSVC != nil {
			profile.MSVC = &target.MSVCProfileExtra{
				RuntimeLibrary: p.MSVC.RuntimeLibrary,
				Optimization:   p.MSVC.Optimization,
				DebugInfo:      p.MSVC.DebugInfo,
			}
		}
		tc.Profiles[name] = profile
	}
	return tc, nil
}

// LoadResolvedDependencies decodes the {name: absolute-dir} map an upstream
// dependency resolver is assumed to have already produced.
func LoadResolvedDependencies(path string) (map[string]string, error) {
	var m map[string]string
	if err := decodeFile(path, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func decodeFile(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return catapulterr.Wrap(catapulterr.IOError, err, "open "+path)
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(v); err != nil {
		return catapulterr.Wrap(catapulterr.IOError, err, "decode "+path)
	}
	return nil
}
