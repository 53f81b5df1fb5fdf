package ninja

import "strings"

// escaper escapes the three characters ninja treats specially in paths and
// outputs: $, space, and :.
var escaper = strings.NewReplacer(
	"$", "$$",
	" ", "$ ",
	":", "$:",
)

func escape(s string) string {
	return escaper.Replace(s)
}
