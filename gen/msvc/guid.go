// Package msvc lowers a target.Graph into a Visual Studio solution: one
// .sln plus one .vcxproj per target.
package msvc

import (
	"crypto/sha1"
	"fmt"
)

// guidFor derives a deterministic GUID from (projectName, targetName) so
// re-running catapult into the same build directory reproduces identical
// project identifiers.
func guidFor(projectName, targetName string) string {
	sum := sha1.Sum([]byte(projectName + "\x00" + targetName))
	return fmt.Sprintf("{%08X-%04X-%04X-%04X-%012X}",
		sum[0:4], sum[4:6], sum[6:8], sum[8:10], sum[10:16])
}
