// Package locate finds the native executable shipped inside a Python
// package installation.
//
// The locator only checks that a candidate exists. Nothing holds the file
// between that check and the exec that follows, so a binary removed in the
// meantime surfaces as an exec error instead.
package locate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vertti/biome-launcher/pkg/layout"
	"github.com/vertti/biome-launcher/pkg/report"
	"github.com/vertti/biome-launcher/pkg/scheme"
)

// ErrNotFound is matched by every *NotFoundError.
var ErrNotFound = errors.New("binary not found")

// NotFoundError reports that no candidate held the binary. Path is the
// primary scripts candidate.
type NotFoundError struct {
	Tool  string
	Path  string
	Tried []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s executable not found: %s", e.Tool, e.Path)
}

// Is makes errors.Is(err, ErrNotFound) hold.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Kind identifies a candidate location.
type Kind string

const (
	KindScripts Kind = "scripts" // primary scheme scripts dir
	KindUser    Kind = "user"    // user scheme scripts dir
	KindTarget  Kind = "target"  // bin/ next to the package, for --target installs
)

// Candidate is one place the binary may live. Path is empty when the layout
// does not know the directory.
type Candidate struct {
	Kind   Kind
	Path   string
	Scheme scheme.Name // user candidate only
	Rule   string      // user candidate only: rule that chose Scheme
}

// Candidates returns the locations for tool in priority order.
func Candidates(l layout.Layout, tool string) []Candidate {
	exe := l.ExeName(tool)

	userScheme, rule := scheme.SelectUser(l.Interpreter)
	var userPath string
	if dir := scheme.ScriptsDir(userScheme, l.UserBase, l.Interpreter); dir != "" {
		userPath = filepath.Join(dir, exe)
	}

	var targetPath string
	if l.PackageRoot != "" {
		targetPath = filepath.Join(filepath.Dir(l.PackageRoot), "bin", exe)
	}

	return []Candidate{
		{Kind: KindScripts, Path: filepath.Join(l.ScriptsDir, exe)},
		{Kind: KindUser, Path: userPath, Scheme: userScheme, Rule: rule},
		{Kind: KindTarget, Path: targetPath},
	}
}

// Locator resolves the native binary for a layout.
type Locator struct {
	Layout layout.Layout
	Tool   string     // base name without suffix, e.g. "biome"
	Self   string     // running launcher; a candidate that is this file is skipped
	FS     FileSystem // injected for testing
}

// New returns a Locator for tool backed by the real file system.
func New(l layout.Layout, tool string) *Locator {
	return &Locator{Layout: l, Tool: tool, FS: &RealFileSystem{}}
}

// Find returns the first candidate that is a regular file.
func (l *Locator) Find() (string, error) {
	candidates := Candidates(l.Layout, l.Tool)

	var tried []string
	for _, c := range candidates {
		if c.Path == "" || l.isSelf(c.Path) {
			continue
		}
		tried = append(tried, c.Path)
		if l.isFile(c.Path) {
			return c.Path, nil
		}
	}

	return "", &NotFoundError{Tool: l.Tool, Path: candidates[0].Path, Tried: tried}
}

// isSelf keeps the launcher from resolving to its own file when it is
// installed under the binary's name, which would exec it in a loop.
func (l *Locator) isSelf(path string) bool {
	return l.Self != "" && l.FS.SameFile(path, l.Self)
}

func (l *Locator) isFile(path string) bool {
	info, err := l.FS.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Inspect evaluates every candidate without stopping at the first match.
func (l *Locator) Inspect() []report.Entry {
	candidates := Candidates(l.Layout, l.Tool)
	entries := make([]report.Entry, 0, len(candidates))

	for _, c := range candidates {
		e := report.Entry{Name: string(c.Kind), Path: c.Path}
		if c.Kind == KindUser {
			e.Name = fmt.Sprintf("%s (%s)", c.Kind, c.Scheme)
			e.AddDetailf("rule: %s", c.Rule)
		}

		if c.Path == "" {
			e.Status = report.StatusSkipped
			e.AddDetailf("directory unknown")
			entries = append(entries, e)
			continue
		}

		if l.isSelf(c.Path) {
			e.Status = report.StatusSkipped
			e.AddDetailf("is the launcher itself")
			entries = append(entries, e)
			continue
		}

		entries = append(entries, l.inspectPath(e))
	}
	return entries
}

func (l *Locator) inspectPath(e report.Entry) report.Entry {
	info, err := l.FS.Stat(e.Path)
	if err != nil {
		switch {
		case os.IsNotExist(err):
			return e.Miss("not found", err)
		case os.IsPermission(err):
			return e.Miss("permission denied", err)
		default:
			return e.Miss(fmt.Sprintf("stat failed: %v", err), err)
		}
	}

	if !info.Mode().IsRegular() {
		return e.Miss(fmt.Sprintf("not a regular file (%s)", info.Mode().Type()), nil)
	}

	e.Status = report.StatusFound
	e.AddDetailf("permissions: %s", info.Mode().Perm())
	e.AddDetailf("size: %d bytes", info.Size())
	return e
}
