// Command biome is the console-script launcher installed with the biome
// Python package. It finds the bundled native binary and becomes it.
package main

import (
	"os"

	"github.com/vertti/biome-launcher/pkg/launcher"
)

func main() {
	os.Exit(launcher.Main(os.Args))
}
