package internal

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/catapult-build/catapult/catapulterr"
	"github.com/catapult-build/catapult/gen/msvc"
	"github.com/catapult-build/catapult/gen/ninja"
	"github.com/catapult-build/catapult/internal/config"
	"github.com/catapult-build/catapult/loader"
	"github.com/catapult-build/catapult/target"
	"github.com/spf13/cobra"
)

var (
	sourceDir     string
	buildDir      string
	generatorName string
	toolchainPath string
	profileName   string
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Evaluate a project and emit Ninja or MSVC build files",
	Long:  `Configure loads a project's build.catapult script and its dependencies, then lowers the resulting target graph into a Ninja build.ninja or an MSVC solution.`,
	RunE:  runConfigure,
}

func init() {
	registerConfigureFlags(configureCmd)
	registerConfigureFlags(rootCmd)
	rootCmd.AddCommand(configureCmd)
}

func registerConfigureFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&sourceDir, "source-dir", "S", ".", "root project directory containing build.catapult")
	cmd.Flags().StringVarP(&buildDir, "build-dir", "B", "build", "directory to write generated build files into")
	cmd.Flags().StringVarP(&generatorName, "generator", "G", "Ninja", "backend generator: Ninja or MSVC")
	cmd.Flags().StringVarP(&toolchainPath, "toolchain", "T", "toolchain.json", "path to the resolved toolchain record")
	cmd.Flags().String("profile", "", "build profile to select (Ninja only; rejected with --generator MSVC)")
	cmd.Flags().String("resolved-deps", "resolved_deps.json", "path to the {name: absolute-dir} resolved dependency map")
}

func runConfigure(cmd *cobra.Command, args []string) error {
	profileName, _ = cmd.Flags().GetString("profile")
	resolvedPath, _ := cmd.Flags().GetString("resolved-deps")

	generator := strings.ToLower(generatorName)
	if generator != "ninja" && generator != "msvc" {
		return catapulterr.Newf(catapulterr.ToolchainMismatch, "unknown generator %q, want Ninja or MSVC", generatorName)
	}
	if generator == "msvc" && profileName != "" {
		return catapulterr.New(catapulterr.ToolchainMismatch, "--profile is not accepted with --generator MSVC: MSVC selects its configuration inside the IDE/MSBuild invocation, not at generation time")
	}

	tc, err := config.LoadToolchain(toolchainPath)
	if err != nil {
		return err
	}
	if generator == "ninja" {
		if profileName == "" {
			return catapulterr.New(catapulterr.ToolchainMismatch, "--profile is required with --generator Ninja")
		}
		if _, ok := tc.Profile(profileName); !ok {
			return catapulterr.Newf(catapulterr.ToolchainMismatch, "toolchain defines no profile %q", profileName)
		}
	}

	resolved, err := config.LoadResolvedDependencies(resolvedPath)
	if err != nil {
		return err
	}

	global := target.Global{
		GlobalOptions: target.GlobalOptions{SelectedProfile: profileName},
		Toolchain:     tc,
	}

	ld := loader.New(global, resolved)
	root, g, err := ld.Load(sourceDir)
	if err != nil {
		return err
	}

	projectNames := make(map[string]string, len(ld.Projects()))
	for dir, p := range ld.Projects() {
		projectNames[dir] = p.Name
	}

	absBuildDir, err := filepath.Abs(buildDir)
	if err != nil {
		return catapulterr.Wrap(catapulterr.IOError, err, "resolve "+buildDir)
	}

	switch generator {
	case "ninja":
		if err := ninja.Emit(g, tc, profileName, absBuildDir, projectNames); err != nil {
			return err
		}
	case "msvc":
		if err := msvc.Emit(g, tc, root.Name, absBuildDir, projectNames); err != nil {
			return err
		}
	}

	fmt.Printf("configured %s (%d targets) into %s using %s\n", root.Name, len(g.Targets()), absBuildDir, generatorName)
	return nil
}
