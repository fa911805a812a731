// Package launcher wires layout discovery, binary lookup and process
// delegation into the shim's single code path.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/vertti/biome-launcher/pkg/exec"
	"github.com/vertti/biome-launcher/pkg/layout"
	"github.com/vertti/biome-launcher/pkg/locate"
	"github.com/vertti/biome-launcher/pkg/output"
)

const (
	// DefaultTool is the native binary's base name.
	DefaultTool = "biome"
	// DefaultPackage is the import name of the Python package shipping it.
	DefaultPackage = "biome"
)

// Options carries everything the launcher would otherwise read from the
// process. Zero fields are filled by withDefaults.
type Options struct {
	Tool       string
	Package    string
	Python     string // explicit interpreter, empty means discover
	Executable string // path of the running launcher
	GOOS       string
	Runner     layout.Runner
	FS         locate.FileSystem
	Executor   exec.Executor
	Stderr     io.Writer
}

func (o Options) withDefaults() Options {
	if o.Tool == "" {
		o.Tool = DefaultTool
	}
	if o.Package == "" {
		o.Package = DefaultPackage
	}
	if o.Executable == "" {
		if exe, err := os.Executable(); err == nil {
			o.Executable = exe
		}
	}
	if o.GOOS == "" {
		o.GOOS = runtime.GOOS
	}
	if o.Runner == nil {
		o.Runner = &layout.RealRunner{}
	}
	if o.FS == nil {
		o.FS = &locate.RealFileSystem{}
	}
	if o.Executor == nil {
		o.Executor = &exec.RealExecutor{}
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	return o
}

// ResolveLayout asks the interpreter for the installation layout. When that
// fails it returns the static layout next to the executable together with
// the probe error, so callers always get something to search.
func ResolveLayout(ctx context.Context, o Options) (layout.Layout, error) {
	o = o.withDefaults()

	p := &layout.Prober{
		Package:    o.Package,
		Python:     o.Python,
		Executable: o.Executable,
		GOOS:       o.GOOS,
		Runner:     o.Runner,
	}
	l, err := p.Probe(ctx)
	if err != nil {
		return layout.Static(o.Executable, o.GOOS), err
	}
	return l, nil
}

// Find resolves the layout and returns the binary path. The launcher's own
// file is never returned, even when it is installed under the tool's name.
func Find(ctx context.Context, o Options) (string, error) {
	o = o.withDefaults()

	l, probeErr := ResolveLayout(ctx, o)
	loc := &locate.Locator{Layout: l, Tool: o.Tool, Self: o.Executable, FS: o.FS}
	path, err := loc.Find()
	if err != nil {
		if probeErr != nil {
			return "", fmt.Errorf("%w (python layout unavailable: %v)", err, probeErr)
		}
		return "", err
	}
	return path, nil
}

// Run finds the binary and hands the process over to it with args[1:].
// On Unix a successful Run never returns.
func Run(ctx context.Context, o Options, args []string) error {
	o = o.withDefaults()

	path, err := Find(ctx, o)
	if err != nil {
		return err
	}
	return o.Executor.Exec(path, exec.Argv(path, args))
}

// Main runs the launcher for os.Args-style args and returns the exit code.
func Main(args []string) int {
	o := Options{}.withDefaults()
	return ExitCode(o.Stderr, o.Tool, Run(context.Background(), o, args))
}

// ExitCode maps a Run error to a process exit code, reporting failures on w.
func ExitCode(w io.Writer, prog string, err error) int {
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitStatusError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}

	output.PrintError(w, prog, err)
	return 1
}
