package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "biome-doctor",
	Short: "Show where the biome launcher looks for its native binary",
	Long: "biome-doctor asks the Python interpreter for its install layout and reports\n" +
		"every location the biome launcher checks, in the order it checks them.",
	Version:      Version,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runDoctor,
}
