package locate

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vertti/biome-launcher/pkg/layout"
	"github.com/vertti/biome-launcher/pkg/report"
	"github.com/vertti/biome-launcher/pkg/scheme"
	"github.com/vertti/biome-launcher/pkg/testutil"
	"github.com/vertti/biome-launcher/pkg/version"
)

var (
	scriptsDir  = filepath.Join("x", "scripts")
	userBase    = filepath.Join("home", "u", ".local")
	packageRoot = filepath.Join("target", "biome")

	primary  = filepath.Join(scriptsDir, "biome")
	user     = filepath.Join(userBase, "bin", "biome")
	fallback = filepath.Join("target", "bin", "biome")
)

func linuxLayout() layout.Layout {
	return layout.Layout{
		ScriptsDir:  scriptsDir,
		UserBase:    userBase,
		PackageRoot: packageRoot,
		Interpreter: layout.Interpreter{
			Version:             version.Version{Major: 3, Minor: 11},
			OSName:              "posix",
			Platform:            "linux",
			PreferredUserScheme: "posix_user",
		},
	}
}

func TestCandidates_Order(t *testing.T) {
	got := Candidates(linuxLayout(), "biome")

	want := []Candidate{
		{Kind: KindScripts, Path: primary},
		{Kind: KindUser, Path: user, Scheme: scheme.PosixUser, Rule: "preferred"},
		{Kind: KindTarget, Path: fallback},
	}
	if len(got) != len(want) {
		t.Fatalf("len(Candidates) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Candidates[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestLocator_Find_ScriptsShortCircuits(t *testing.T) {
	fsys := testutil.NewFakeFS(primary, user, fallback)
	l := &Locator{Layout: linuxLayout(), Tool: "biome", FS: fsys}

	got, err := l.Find()
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if got != primary {
		t.Errorf("Find() = %q, want %q", got, primary)
	}
	if len(fsys.Calls) != 1 || fsys.Calls[0] != primary {
		t.Errorf("Stat calls = %v, want only %q", fsys.Calls, primary)
	}
}

func TestLocator_Find_UserOnly(t *testing.T) {
	tests := []struct {
		name   string
		layout layout.Layout
		want   string
	}{
		{
			name:   "preferred scheme",
			layout: linuxLayout(),
			want:   user,
		},
		{
			name: "windows before 3.10",
			layout: layout.Layout{
				ScriptsDir: scriptsDir,
				UserBase:   userBase,
				Interpreter: layout.Interpreter{
					Version:  version.Version{Major: 3, Minor: 9},
					OSName:   "nt",
					Platform: "win32",
				},
				ExeSuffix: ".exe",
			},
			want: filepath.Join(userBase, "Python39", "Scripts", "biome.exe"),
		},
		{
			name: "macOS framework before 3.10",
			layout: layout.Layout{
				ScriptsDir: scriptsDir,
				UserBase:   userBase,
				Interpreter: layout.Interpreter{
					Version:   version.Version{Major: 3, Minor: 8},
					OSName:    "posix",
					Platform:  "darwin",
					Framework: "Python3",
				},
			},
			want: user,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := testutil.NewFakeFS(tt.want)
			l := &Locator{Layout: tt.layout, Tool: "biome", FS: fsys}

			got, err := l.Find()
			if err != nil {
				t.Fatalf("Find() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Find() = %q, want %q", got, tt.want)
			}
			if len(fsys.Calls) != 2 {
				t.Errorf("Stat calls = %v, want scripts then user", fsys.Calls)
			}
		})
	}
}

func TestLocator_Find_TargetFallback(t *testing.T) {
	fsys := testutil.NewFakeFS(fallback)
	l := &Locator{Layout: linuxLayout(), Tool: "biome", FS: fsys}

	got, err := l.Find()
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if got != fallback {
		t.Errorf("Find() = %q, want %q", got, fallback)
	}
	if len(fsys.Calls) != 3 {
		t.Errorf("Stat calls = %v, want 3", fsys.Calls)
	}
}

func TestLocator_Find_NotFound(t *testing.T) {
	l := &Locator{Layout: linuxLayout(), Tool: "biome", FS: testutil.NewFakeFS()}

	_, err := l.Find()
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Find() error = %v, want ErrNotFound", err)
	}

	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Find() error type = %T, want *NotFoundError", err)
	}
	if nf.Path != primary {
		t.Errorf("Path = %q, want %q", nf.Path, primary)
	}
	if !strings.Contains(err.Error(), primary) {
		t.Errorf("error %q does not mention %q", err, primary)
	}
	if len(nf.Tried) != 3 {
		t.Errorf("Tried = %v, want all three candidates", nf.Tried)
	}
}

func TestLocator_Find_NotFoundMessage(t *testing.T) {
	l := &Locator{
		Layout: layout.Layout{ScriptsDir: "/x/scripts"},
		Tool:   "biome",
		FS:     testutil.NewFakeFS(),
	}

	_, err := l.Find()
	want := filepath.Join("/x/scripts", "biome")
	if err == nil || !strings.Contains(err.Error(), want) {
		t.Errorf("Find() error = %v, want message naming /x/scripts/biome", err)
	}
}

func TestLocator_Find_ExeSuffix(t *testing.T) {
	l := linuxLayout()
	l.ExeSuffix = ".exe"
	exe := filepath.Join(scriptsDir, "biome.exe")
	fsys := testutil.NewFakeFS(primary, exe)

	got, err := (&Locator{Layout: l, Tool: "biome", FS: fsys}).Find()
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if got != exe {
		t.Errorf("Find() = %q, want %q", got, exe)
	}
	if fsys.Calls[0] != exe {
		t.Errorf("first Stat = %q, want %q", fsys.Calls[0], exe)
	}
}

func TestLocator_Find_SkipsDirectories(t *testing.T) {
	fsys := testutil.NewFakeFS(user)
	fsys.Files[primary] = fs.ModeDir | 0o755
	l := &Locator{Layout: linuxLayout(), Tool: "biome", FS: fsys}

	got, err := l.Find()
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if got != user {
		t.Errorf("Find() = %q, want %q", got, user)
	}
}

func TestLocator_Find_SkipsUnknownDirs(t *testing.T) {
	l := &Locator{
		Layout: layout.Layout{ScriptsDir: scriptsDir, Interpreter: layout.Interpreter{OSName: "posix", Platform: "linux"}},
		Tool:   "biome",
		FS:     testutil.NewFakeFS(),
	}

	_, err := l.Find()
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Find() error = %v, want *NotFoundError", err)
	}
	if len(nf.Tried) != 1 || nf.Tried[0] != primary {
		t.Errorf("Tried = %v, want only the primary candidate", nf.Tried)
	}
}

func TestLocator_Inspect(t *testing.T) {
	fsys := testutil.NewFakeFS(fallback)
	fsys.Errs[user] = &fs.PathError{Op: "stat", Path: user, Err: fs.ErrPermission}
	l := &Locator{Layout: linuxLayout(), Tool: "biome", FS: fsys}

	entries := l.Inspect()
	if len(entries) != 3 {
		t.Fatalf("len(Inspect) = %d, want 3", len(entries))
	}

	if entries[0].Status != report.StatusMissing || entries[0].Details[0] != "not found" {
		t.Errorf("scripts entry = %+v", entries[0])
	}
	if entries[1].Name != "user (posix_user)" {
		t.Errorf("user entry name = %q", entries[1].Name)
	}
	if entries[1].Status != report.StatusMissing || !testutil.ContainsDetail(entries[1].Details, "permission denied") {
		t.Errorf("user entry = %+v", entries[1])
	}
	if !testutil.ContainsDetail(entries[1].Details, "rule: preferred") {
		t.Errorf("user entry should name its rule, got %v", entries[1].Details)
	}
	if !entries[2].Found() || entries[2].Path != fallback {
		t.Errorf("target entry = %+v", entries[2])
	}
	if len(fsys.Calls) != 3 {
		t.Errorf("Inspect should stat every candidate, got %v", fsys.Calls)
	}
}

func TestLocator_Inspect_Skipped(t *testing.T) {
	l := &Locator{
		Layout: layout.Static(filepath.Join(scriptsDir, "launcher"), "linux"),
		Tool:   "biome",
		FS:     testutil.NewFakeFS(primary),
	}

	entries := l.Inspect()
	if !entries[0].Found() {
		t.Errorf("scripts entry = %+v, want found", entries[0])
	}
	for _, e := range entries[1:] {
		if e.Status != report.StatusSkipped {
			t.Errorf("%s status = %v, want SKIPPED", e.Name, e.Status)
		}
	}
}

func TestLocator_RealFileSystem(t *testing.T) {
	dir := t.TempDir()
	scripts := filepath.Join(dir, "scripts")
	if err := os.MkdirAll(scripts, 0o755); err != nil {
		t.Fatal(err)
	}
	bin := filepath.Join(scripts, "biome")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := New(layout.Layout{ScriptsDir: scripts}, "biome").Find()
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if got != bin {
		t.Errorf("Find() = %q, want %q", got, bin)
	}
}

func TestLocator_Find_SkipsSelf(t *testing.T) {
	self := filepath.Join("opt", "venv", "bin", "biome")

	t.Run("only the launcher exists", func(t *testing.T) {
		fsys := testutil.NewFakeFS(self)
		l := &Locator{Layout: layout.Static(self, "linux"), Tool: "biome", Self: self, FS: fsys}

		_, err := l.Find()
		var nf *NotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("Find() error = %v, want *NotFoundError", err)
		}
		if nf.Path != self {
			t.Errorf("Path = %q, want primary candidate %q", nf.Path, self)
		}
		if len(nf.Tried) != 0 {
			t.Errorf("Tried = %v, the launcher must not count as a candidate", nf.Tried)
		}
		if len(fsys.Calls) != 0 {
			t.Errorf("Stat calls = %v, want none", fsys.Calls)
		}
	})

	t.Run("falls through to the next candidate", func(t *testing.T) {
		lay := linuxLayout()
		fsys := testutil.NewFakeFS(primary, user)
		l := &Locator{Layout: lay, Tool: "biome", Self: primary, FS: fsys}

		got, err := l.Find()
		if err != nil {
			t.Fatalf("Find() error = %v", err)
		}
		if got != user {
			t.Errorf("Find() = %q, want %q", got, user)
		}
	})

	t.Run("launcher reached through another path", func(t *testing.T) {
		alias := filepath.Join("usr", "local", "bin", "biome")
		fsys := testutil.NewFakeFS(primary, fallback)
		fsys.Same[alias] = primary
		l := &Locator{Layout: linuxLayout(), Tool: "biome", Self: alias, FS: fsys}

		got, err := l.Find()
		if err != nil {
			t.Fatalf("Find() error = %v", err)
		}
		if got != fallback {
			t.Errorf("Find() = %q, want %q", got, fallback)
		}
	})
}

func TestLocator_Inspect_MarksSelf(t *testing.T) {
	l := &Locator{Layout: linuxLayout(), Tool: "biome", Self: primary, FS: testutil.NewFakeFS(primary)}

	entries := l.Inspect()
	if entries[0].Status != report.StatusSkipped || !testutil.ContainsDetail(entries[0].Details, "launcher itself") {
		t.Errorf("scripts entry = %+v, want skipped as the launcher", entries[0])
	}
}

func TestRealFileSystem_SameFile(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "biome")
	b := filepath.Join(dir, "other")
	if err := os.WriteFile(a, []byte("a"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte("b"), 0o755); err != nil {
		t.Fatal(err)
	}

	fsys := &RealFileSystem{}
	if !fsys.SameFile(a, filepath.Join(dir, ".", "biome")) {
		t.Error("same path should be the same file")
	}
	if fsys.SameFile(a, b) {
		t.Error("different files should not be the same file")
	}
	if fsys.SameFile(a, filepath.Join(dir, "missing")) {
		t.Error("missing file should never be the same file")
	}
}
