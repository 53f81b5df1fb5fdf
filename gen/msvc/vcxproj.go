package msvc

import (
	"encoding/xml"
	"fmt"
	"sort"
	"strings"

	"github.com/catapult-build/catapult/graph"
	"github.com/catapult-build/catapult/target"
)

// platform is the single MSVC platform catapult targets; per-configuration
// flag sets come entirely from the toolchain's Profiles.
const platform = "x64"

type vcxproject struct {
	XMLName        xml.Name `xml:"Project"`
	DefaultTargets string   `xml:"DefaultTargets,attr"`
	ToolsVersion   string   `xml:"ToolsVersion,attr"`
	Xmlns          string   `xml:"xmlns,attr"`

	ItemGroups []itemGroup   `xml:"ItemGroup"`
	Configs    []propertyGrp `xml:"PropertyGroup"`
	ItemDefs   []itemDefGrp  `xml:"ItemDefinitionGroup"`
}

type itemGroup struct {
	ProjectConfigurations []projectConfig `xml:"ProjectConfiguration,omitempty"`
	ClCompiles            []clCompile     `xml:"ClCompile,omitempty"`
	ClIncludes            []clInclude     `xml:"ClInclude,omitempty"`
	ProjectReferences      []projectRef    `xml:"ProjectReference,omitempty"`
}

type projectConfig struct {
	Include       string `xml:"Include,attr"`
	Configuration string `xml:"Configuration"`
	Platform      string `xml:"Platform"`
}

type clCompile struct {
	Include string `xml:"Include,attr"`
}

type clInclude struct {
	Include string `xml:"Include,attr"`
}

type projectRef struct {
	Include string `xml:"Include,attr"`
	Project string `xml:"Project"`
}

type propertyGrp struct {
	Condition   string `xml:"Condition,attr,omitempty"`
	ProjectGuid string `xml:"ProjectGuid,omitempty"`
	RootNS      string `xml:"RootNamespace,omitempty"`
	ConfigType  string `xml:"ConfigurationType,omitempty"`
}

type itemDefGrp struct {
	Condition string         `xml:"Condition,attr"`
	ClCompile clCompileProps `xml:"ClCompile"`
	Link      linkProps      `xml:"Link"`
}

type clCompileProps struct {
	AdditionalIncludeDirectories string `xml:"AdditionalIncludeDirectories,omitempty"`
	PreprocessorDefinitions      string `xml:"PreprocessorDefinitions,omitempty"`
	AdditionalOptions            string `xml:"AdditionalOptions,omitempty"`
	RuntimeLibrary               string `xml:"RuntimeLibrary,omitempty"`
	Optimization                 string `xml:"Optimization,omitempty"`
	DebugInformationFormat       string `xml:"DebugInformationFormat,omitempty"`
}

type linkProps struct {
	AdditionalOptions string `xml:"AdditionalOptions,omitempty"`
}

func configurationType(kind target.Kind) string {
	switch kind {
	case target.StaticLibrary, target.ObjectLibrary, target.InterfaceLibrary:
		return "StaticLibrary"
	case target.SharedLibrary:
		return "DynamicLibrary"
	case target.Executable:
		return "Application"
	default:
		return "Utility"
	}
}

// renderVcxproj produces a target's .vcxproj document, UTF-8 encoded with
// CRLF line endings rather than a UTF-16 BOM file. projectName is t's own
// owning project's name; projects resolves the same for t's link
// dependencies, which may belong to other projects.
func renderVcxproj(t *target.Target, projectName string, tc *target.Toolchain, projects map[string]string) ([]byte, error) {
	guid := guidFor(projectName, t.Name)
	cr := graph.Compile(t)

	var configs []projectConfig
	var itemDefs []itemDefGrp
	profileNames := make([]string, 0, len(tc.Profiles))
	for name := range tc.Profiles {
		profileNames = append(profileNames, name)
	}
	sort.Strings(profileNames)
	for _, name := range profileNames {
		profile := tc.Profiles[name]
		cond := fmt.Sprintf("'$(Configuration)|$(Platform)'=='%s|%s'", name, platform)
		configs = append(configs, projectConfig{
			Include:       name + "|" + platform,
			Configuration: name,
			Platform:      platform,
		})
		def := itemDefGrp{
			Condition: cond,
			ClCompile: clCompileProps{
				AdditionalIncludeDirectories: strings.Join(cr.IncludeDirs, ";"),
				PreprocessorDefinitions:      strings.Join(cr.Defines, ";"),
				AdditionalOptions:            strings.Join(append(append([]string{}, profile.CXXFlags...), cr.CompileFlags...), " "),
			},
			Link: linkProps{
				AdditionalOptions: strings.Join(profile.LinkFlags, " "),
			},
		}
		if profile.MSVC != nil {
			def.ClCompile.RuntimeLibrary = profile.MSVC.RuntimeLibrary
			def.ClCompile.Optimization = profile.MSVC.Optimization
			def.ClCompile.DebugInformationFormat = profile.MSVC.DebugInfo
		}
		itemDefs = append(itemDefs, def)
	}

	var sources []clCompile
	var headers []clInclude
	for _, src := range t.Sources {
		if src.Lang == target.LangHeader {
			headers = append(headers, clInclude{Include: src.Path})
		} else {
			sources = append(sources, clCompile{Include: src.Path})
		}
	}

	var refs []projectRef
	for _, dep := range append(append([]*target.Target{}, t.LinkPublic...), t.LinkPrivate...) {
		depProjectName := projects[dep.ProjectDir]
		refs = append(refs, projectRef{
			Include: vcxprojRef(projectName, depProjectName, dep),
			Project: guidFor(depProjectName, dep.Name),
		})
	}

	proj := vcxproject{
		DefaultTargets: "Build",
		ToolsVersion:   "Current",
		Xmlns:          "http://schemas.microsoft.com/developer/msbuild/2003",
		ItemGroups: []itemGroup{
			{ProjectConfigurations: configs},
			{ClCompiles: sources, ClIncludes: headers},
			{ProjectReferences: refs},
		},
		Configs: []propertyGrp{
			{ProjectGuid: guid, RootNS: projectName, ConfigType: configurationType(t.KindOf)},
		},
		ItemDefs: itemDefs,
	}

	body, err := xml.MarshalIndent(proj, "", "  ")
	if err != nil {
		return nil, err
	}

	var out strings.Builder
	out.WriteString(xml.Header)
	out.Write(body)
	out.WriteString("\n")
	return []byte(crlf(out.String())), nil
}

func crlf(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\r\n", "\n"), "\n", "\r\n")
}
