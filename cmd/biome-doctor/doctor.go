package main

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/vertti/biome-launcher/pkg/digest"
	"github.com/vertti/biome-launcher/pkg/launcher"
	"github.com/vertti/biome-launcher/pkg/layout"
	"github.com/vertti/biome-launcher/pkg/locate"
	"github.com/vertti/biome-launcher/pkg/output"
	"github.com/vertti/biome-launcher/pkg/report"
	"github.com/vertti/biome-launcher/pkg/scheme"
)

var (
	doctorTool        string
	doctorPackage     string
	doctorPython      string
	doctorScriptsDir  string
	doctorUserBase    string
	doctorPackageRoot string
	doctorGOOS        string
	doctorLauncher    string
	doctorHash        string
	doctorOutput      string
)

// ErrBinaryMissing is returned when no candidate holds the binary.
// The returned error makes Cobra exit with code 1.
var ErrBinaryMissing = errors.New("native binary not found")

func init() {
	f := rootCmd.Flags()
	f.StringVar(&doctorTool, "tool", launcher.DefaultTool, "base name of the native binary")
	f.StringVar(&doctorPackage, "package", launcher.DefaultPackage, "import name of the Python package shipping the binary")
	f.StringVar(&doctorPython, "python", "", "interpreter to probe (default: next to the launcher, then PATH)")
	f.StringVar(&doctorScriptsDir, "scripts-dir", "", "override the primary scripts directory")
	f.StringVar(&doctorUserBase, "user-base", "", "override the user base directory")
	f.StringVar(&doctorPackageRoot, "package-root", "", "override the installed package directory")
	f.StringVar(&doctorLauncher, "launcher", "", "installed launcher; a candidate that is this file is skipped")
	f.StringVar(&doctorGOOS, "goos", runtime.GOOS, "operating system whose naming rules apply")
	f.StringVar(&doctorHash, "hash", "", "print a digest of the resolved binary (sha256, sha512, blake3)")
	f.StringVar(&doctorOutput, "output", "text", "output format (text, yaml)")
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	if doctorOutput != "text" && doctorOutput != "yaml" {
		return fmt.Errorf("unsupported output format %q (use text or yaml)", doctorOutput)
	}

	var algorithm digest.Algorithm
	if doctorHash != "" {
		var err error
		if algorithm, err = digest.ParseAlgorithm(doctorHash); err != nil {
			return err
		}
	}

	opts := launcher.Options{
		Tool:       doctorTool,
		Package:    doctorPackage,
		Python:     doctorPython,
		Executable: doctorLauncher,
		GOOS:       doctorGOOS,
	}
	l, probeErr := launcher.ResolveLayout(cmd.Context(), opts)
	applyOverrides(&l)

	rep := buildReport(l, probeErr)
	if rep.Resolved != "" && algorithm != "" {
		sum, err := digest.File(nil, rep.Resolved, algorithm)
		if err != nil {
			return err
		}
		rep.Digest = fmt.Sprintf("%s:%s", algorithm, sum)
	}

	out := cmd.OutOrStdout()
	if doctorOutput == "yaml" {
		if err := output.PrintYAML(out, rep); err != nil {
			return err
		}
	} else {
		output.PrintReport(out, rep)
	}

	if rep.Resolved == "" {
		return ErrBinaryMissing
	}
	return nil
}

func applyOverrides(l *layout.Layout) {
	if doctorScriptsDir != "" {
		l.ScriptsDir = doctorScriptsDir
	}
	if doctorUserBase != "" {
		l.UserBase = doctorUserBase
	}
	if doctorPackageRoot != "" {
		l.PackageRoot = doctorPackageRoot
	}
	l.ExeSuffix = layout.ExeSuffix(doctorGOOS)
}

func buildReport(l layout.Layout, probeErr error) report.Report {
	userScheme, _ := scheme.SelectUser(l.Interpreter)
	loc := locate.New(l, doctorTool)
	loc.Self = doctorLauncher

	rep := report.Report{
		Tool:        l.ExeName(doctorTool),
		Interpreter: l.Interpreter.Path,
		UserScheme:  string(userScheme),
		Layout: map[string]string{
			"scripts_dir":  l.ScriptsDir,
			"user_base":    l.UserBase,
			"package_root": l.PackageRoot,
		},
		Candidates: loc.Inspect(),
	}
	if !l.Interpreter.Version.IsZero() {
		rep.Version = l.Interpreter.Version.String()
	}
	if l.Interpreter.OnPath {
		rep.Notes = append(rep.Notes, "interpreter found on PATH only; scripts dir is the launcher's directory")
	}
	if probeErr != nil {
		rep.Notes = append(rep.Notes, fmt.Sprintf("python layout unavailable: %v", probeErr))
	}

	for _, e := range rep.Candidates {
		if e.Found() {
			rep.Resolved = e.Path
			break
		}
	}
	return rep
}
