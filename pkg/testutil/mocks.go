// Package testutil holds test doubles shared by the launcher packages.
package testutil

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"time"
)

// MockFileInfo is a test double for fs.FileInfo.
type MockFileInfo struct {
	NameValue string
	SizeValue int64
	ModeValue fs.FileMode
}

func (m *MockFileInfo) Name() string       { return m.NameValue }
func (m *MockFileInfo) Size() int64        { return m.SizeValue }
func (m *MockFileInfo) Mode() fs.FileMode  { return m.ModeValue }
func (m *MockFileInfo) IsDir() bool        { return m.ModeValue.IsDir() }
func (m *MockFileInfo) Sys() any           { return nil }
func (m *MockFileInfo) ModTime() time.Time { return time.Time{} }

// FakeFS serves a fixed set of paths and records every Stat call.
type FakeFS struct {
	Files map[string]fs.FileMode
	Errs  map[string]error
	Same  map[string]string
	Calls []string
}

// NewFakeFS returns a FakeFS holding executable regular files at paths.
func NewFakeFS(paths ...string) *FakeFS {
	f := &FakeFS{Files: map[string]fs.FileMode{}, Errs: map[string]error{}, Same: map[string]string{}}
	for _, p := range paths {
		f.Files[p] = 0o755
	}
	return f
}

// Stat returns the configured error or file, or fs.ErrNotExist.
func (f *FakeFS) Stat(name string) (fs.FileInfo, error) {
	f.Calls = append(f.Calls, name)
	if err, ok := f.Errs[name]; ok {
		return nil, err
	}
	mode, ok := f.Files[name]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	return &MockFileInfo{NameValue: filepath.Base(name), ModeValue: mode, SizeValue: 1024}, nil
}

// SameFile compares cleaned paths; entries in Same alias one path to another.
func (f *FakeFS) SameFile(a, b string) bool {
	a, b = filepath.Clean(a), filepath.Clean(b)
	if a == b {
		return true
	}
	return f.Same[a] == b || f.Same[b] == a
}

// MockRunner is a test double for layout.Runner.
type MockRunner struct {
	LookPathFunc   func(file string) (string, error)
	RunCommandFunc func(ctx context.Context, name string, args ...string) (string, string, error)
}

// LookPath calls the mock function.
func (m *MockRunner) LookPath(file string) (string, error) {
	return m.LookPathFunc(file)
}

// RunCommandContext calls the mock function.
func (m *MockRunner) RunCommandContext(ctx context.Context, name string, args ...string) (string, string, error) {
	return m.RunCommandFunc(ctx, name, args...)
}

// ProbeRunner resolves only the named interpreters and answers every probe
// with stdout.
func ProbeRunner(stdout string, interpreters ...string) *MockRunner {
	return &MockRunner{
		LookPathFunc: func(file string) (string, error) {
			for _, p := range interpreters {
				if p == file {
					return file, nil
				}
			}
			return "", fs.ErrNotExist
		},
		RunCommandFunc: func(context.Context, string, ...string) (string, string, error) {
			return stdout, "", nil
		},
	}
}

// ContainsDetail checks if any detail string contains the given substring.
func ContainsDetail(details []string, substr string) bool {
	for _, d := range details {
		if strings.Contains(d, substr) {
			return true
		}
	}
	return false
}
