// Package layout describes where a Python installation keeps its scripts and
// packages, the inputs from which the native binary's location is derived.
package layout

import (
	"path/filepath"

	"github.com/vertti/biome-launcher/pkg/version"
)

// Interpreter holds the interpreter facts that pick the user install scheme.
type Interpreter struct {
	Path                string          // interpreter that was probed, empty for a static layout
	OnPath              bool            // found on PATH only; ScriptsDir is the launcher's dir
	Version             version.Version // sys.version_info[:3]
	OSName              string          // os.name: "posix" or "nt"
	Platform            string          // sys.platform: "linux", "darwin", "win32", ...
	Framework           string          // sys._framework, empty outside macOS framework builds
	PreferredUserScheme string          // sysconfig.get_preferred_scheme("user"), empty before 3.10
	VersionNodotPlat    string          // py_version_nodot_plat, e.g. "311" or "311-32"
}

// Layout is the explicit installation configuration the locator works from.
type Layout struct {
	ScriptsDir  string // scripts dir of the primary scheme
	UserBase    string // user base dir; empty disables the user candidate
	PackageRoot string // installed package dir; empty disables the target-dir candidate
	Interpreter Interpreter
	ExeSuffix   string // "" on POSIX, ".exe" on Windows
}

// ExeName returns the platform file name of tool.
func (l Layout) ExeName(tool string) string {
	return tool + l.ExeSuffix
}

// ExeSuffix returns the executable suffix for goos.
func ExeSuffix(goos string) string {
	if goos == "windows" {
		return ".exe"
	}
	return ""
}

// OSName maps goos to the value Python reports as os.name.
func OSName(goos string) string {
	if goos == "windows" {
		return "nt"
	}
	return "posix"
}

// Platform maps goos to the value Python reports as sys.platform.
func Platform(goos string) string {
	switch goos {
	case "windows":
		return "win32"
	case "darwin", "ios":
		return "darwin"
	default:
		return goos
	}
}

// Static builds a layout without an interpreter. The executable's own
// directory is taken as the primary scripts dir, which is where installers
// put console scripts next to the bundled binary.
func Static(executable, goos string) Layout {
	return Layout{
		ScriptsDir: filepath.Dir(executable),
		Interpreter: Interpreter{
			OSName:   OSName(goos),
			Platform: Platform(goos),
		},
		ExeSuffix: ExeSuffix(goos),
	}
}
