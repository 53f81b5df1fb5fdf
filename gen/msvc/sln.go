package msvc

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/catapult-build/catapult/target"
)

// vcxprojTypeGUID is Visual Studio's well-known project-type GUID for a
// Visual C++ project; every .vcxproj entry in a .sln uses this constant.
const vcxprojTypeGUID = "{8BC9CEB8-8B4A-11D0-8D11-00A0C91BC942}"

// renderSln produces the solution file listing one project per target in
// the order given, across every configuration the toolchain defines. No
// target is skipped: an interface library is listed like any other target
// (configurationType gives its .vcxproj a StaticLibrary type).
// projects maps each target's ProjectDir to its owning project's name,
// used both to derive each target's GUID and the path to its .vcxproj,
// relative to the .sln's own location at the root of buildDir.
func renderSln(targets []*target.Target, projects map[string]string, tc *target.Toolchain) []byte {
	var b strings.Builder
	b.WriteString("Microsoft Visual Studio Solution File, Format Version 12.00\n")
	b.WriteString("# Generated by catapult. Do not edit.\n")

	var guids []string
	for _, t := range targets {
		projectName := projects[t.ProjectDir]
		guid := guidFor(projectName, t.Name)
		guids = append(guids, guid)
		rel := filepath.Join(sanitize(projectName), targetSlug(t)+".vcxproj")
		fmt.Fprintf(&b, "Project(\"%s\") = \"%s\", \"%s\", \"%s\"\nEndProject\n",
			vcxprojTypeGUID, t.Name, rel, guid)
	}

	configs := make([]string, 0, len(tc.Profiles))
	for name := range tc.Profiles {
		configs = append(configs, name)
	}
	sort.Strings(configs)

	b.WriteString("Global\n")
	b.WriteString("\tGlobalSection(SolutionConfigurationPlatforms) = preSolution\n")
	for _, c := range configs {
		fmt.Fprintf(&b, "\t\t%s|%s = %s|%s\n", c, platform, c, platform)
	}
	b.WriteString("\tEndGlobalSection\n")

	b.WriteString("\tGlobalSection(ProjectConfigurationPlatforms) = postSolution\n")
	for _, guid := range guids {
		for _, c := range configs {
			fmt.Fprintf(&b, "\t\t%s.%s|%s.ActiveCfg = %s|%s\n", guid, c, platform, c, platform)
			fmt.Fprintf(&b, "\t\t%s.%s|%s.Build.0 = %s|%s\n", guid, c, platform, c, platform)
		}
	}
	b.WriteString("\tEndGlobalSection\n")

	b.WriteString("\tGlobalSection(SolutionProperties) = preSolution\n")
	b.WriteString("\t\tHideSolutionNode = FALSE\n")
	b.WriteString("\tEndGlobalSection\n")
	b.WriteString("EndGlobal\n")

	return []byte(crlf(b.String()))
}
