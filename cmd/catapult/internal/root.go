package internal

import (
	"log"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "catapult",
	Short: "catapult generates native build files from a build.catapult script",
	Long:  `catapult evaluates a project's build.catapult script and its dependencies into a Ninja or MSVC build description.`,
	RunE:  runConfigure,
}

// Execute runs the root command; its child command and flags are attached
// in configure.go's init. This is called by main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
