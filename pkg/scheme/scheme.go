// Package scheme selects the Python user install scheme and expands its
// scripts directory.
package scheme

import (
	"fmt"
	"path/filepath"

	"github.com/vertti/biome-launcher/pkg/layout"
	"github.com/vertti/biome-launcher/pkg/version"
)

// Name is a sysconfig install scheme name.
type Name string

const (
	PosixUser        Name = "posix_user"
	NTUser           Name = "nt_user"
	OSXFrameworkUser Name = "osx_framework_user"
)

// PreferredSchemeSince is the first interpreter release exposing
// sysconfig.get_preferred_scheme.
var PreferredSchemeSince = version.MustParse("3.10")

// Rule maps an interpreter predicate to a scheme. Scheme returns the name to
// use once Match has accepted the interpreter.
type Rule struct {
	Label  string
	Match  func(i layout.Interpreter) bool
	Scheme func(i layout.Interpreter) Name
}

func fixed(n Name) func(layout.Interpreter) Name {
	return func(layout.Interpreter) Name { return n }
}

// UserRules is evaluated top to bottom; the last rule always matches.
var UserRules = []Rule{
	{
		Label: "preferred",
		Match: func(i layout.Interpreter) bool {
			return i.Version.AtLeast(PreferredSchemeSince) && i.PreferredUserScheme != ""
		},
		Scheme: func(i layout.Interpreter) Name { return Name(i.PreferredUserScheme) },
	},
	{
		Label:  "windows",
		Match:  func(i layout.Interpreter) bool { return i.OSName == "nt" },
		Scheme: fixed(NTUser),
	},
	{
		Label:  "macos-framework",
		Match:  func(i layout.Interpreter) bool { return i.Platform == "darwin" && i.Framework != "" },
		Scheme: fixed(OSXFrameworkUser),
	},
	{
		Label:  "posix",
		Match:  func(layout.Interpreter) bool { return true },
		Scheme: fixed(PosixUser),
	},
}

// SelectUser returns the user scheme for i and the label of the rule that
// picked it.
func SelectUser(i layout.Interpreter) (Name, string) {
	for _, r := range UserRules {
		if r.Match(i) {
			return r.Scheme(i), r.Label
		}
	}
	return PosixUser, "posix"
}

// ScriptsDir expands the scripts path template of scheme n under userBase.
// Unknown schemes use the posix_user template.
func ScriptsDir(n Name, userBase string, i layout.Interpreter) string {
	if userBase == "" {
		return ""
	}
	switch n {
	case NTUser:
		return filepath.Join(userBase, "Python"+nodotPlat(i), "Scripts")
	default:
		return filepath.Join(userBase, "bin")
	}
}

// nodotPlat is py_version_nodot_plat, rebuilt from the version for
// interpreters that did not report it.
func nodotPlat(i layout.Interpreter) string {
	if i.VersionNodotPlat != "" {
		return i.VersionNodotPlat
	}
	return fmt.Sprintf("%d%d", i.Version.Major, i.Version.Minor)
}
