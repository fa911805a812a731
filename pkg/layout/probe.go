package layout

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/vertti/biome-launcher/pkg/version"
)

// DefaultTimeout bounds a single interpreter probe.
const DefaultTimeout = 10 * time.Second

// ErrNoInterpreter is returned when no Python interpreter can be found.
var ErrNoInterpreter = errors.New("no python interpreter found")

// probeScript prints the sysconfig values the locator needs as one JSON
// object. sys.argv[1] is the import name of the package to find.
const probeScript = `import json, os, sys, sysconfig
root = None
try:
    import importlib.util
    spec = importlib.util.find_spec(sys.argv[1])
    if spec is not None:
        if spec.origin:
            root = os.path.dirname(spec.origin)
        elif spec.submodule_search_locations:
            root = list(spec.submodule_search_locations)[0]
except Exception:
    pass
pref = None
if hasattr(sysconfig, "get_preferred_scheme"):
    pref = sysconfig.get_preferred_scheme("user")
print(json.dumps({
    "version": "%d.%d.%d" % sys.version_info[:3],
    "os_name": os.name,
    "platform": sys.platform,
    "framework": getattr(sys, "_framework", "") or "",
    "preferred_user_scheme": pref,
    "scripts": sysconfig.get_path("scripts"),
    "userbase": sysconfig.get_config_var("userbase"),
    "py_version_nodot_plat": sysconfig.get_config_var("py_version_nodot_plat") or "",
    "package_root": root,
}))
`

// Prober asks a Python interpreter for its installation layout.
type Prober struct {
	Package    string        // import name of the package bundling the binary
	Python     string        // explicit interpreter; empty means discover
	Executable string        // path of the running launcher
	GOOS       string        // target OS, runtime.GOOS in production
	Timeout    time.Duration // default: DefaultTimeout
	Runner     Runner        // injected for testing
}

// Interpreters returns the interpreter candidates in the order they are tried:
// an explicit one, siblings of the launcher, then PATH.
func (p *Prober) Interpreters() []string {
	if p.Python != "" {
		return []string{p.Python}
	}

	suffix := ExeSuffix(p.GOOS)
	var names []string
	if p.Executable != "" {
		dir := filepath.Dir(p.Executable)
		names = append(names,
			filepath.Join(dir, "python3"+suffix),
			filepath.Join(dir, "python"+suffix),
		)
	}
	return append(names, "python3", "python")
}

// FindInterpreter returns the first interpreter candidate that resolves.
func (p *Prober) FindInterpreter() (string, error) {
	_, path, err := p.findInterpreter()
	return path, err
}

func (p *Prober) findInterpreter() (name, path string, err error) {
	for _, cand := range p.Interpreters() {
		if resolved, lookErr := p.Runner.LookPath(cand); lookErr == nil {
			return cand, resolved, nil
		}
	}
	return "", "", ErrNoInterpreter
}

// trusted reports whether the candidate name belongs to the launcher's own
// environment: given explicitly or sitting next to the launcher.
func (p *Prober) trusted(name string) bool {
	if p.Python != "" {
		return true
	}
	if p.Executable == "" || filepath.Base(name) == name {
		return false
	}
	return filepath.Dir(name) == filepath.Dir(p.Executable)
}

// Probe runs the interpreter once and returns the layout it reports. An
// interpreter found only on PATH may belong to another environment, so its
// scripts dir is replaced by the launcher's own directory.
func (p *Prober) Probe(ctx context.Context) (Layout, error) {
	name, python, err := p.findInterpreter()
	if err != nil {
		return Layout{}, err
	}

	timeout := p.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	stdout, stderr, err := p.Runner.RunCommandContext(ctx, python, "-c", probeScript, p.Package)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return Layout{}, fmt.Errorf("probing %s timed out after %s", python, timeout)
		}
		if msg := strings.TrimSpace(stderr); msg != "" {
			return Layout{}, fmt.Errorf("probing %s: %w: %s", python, err, msg)
		}
		return Layout{}, fmt.Errorf("probing %s: %w", python, err)
	}

	l, err := parseProbeOutput(stdout, p.GOOS)
	if err != nil {
		return Layout{}, fmt.Errorf("probing %s: %w", python, err)
	}
	l.Interpreter.Path = python
	if !p.trusted(name) && p.Executable != "" {
		l.Interpreter.OnPath = true
		l.ScriptsDir = filepath.Dir(p.Executable)
	}
	return l, nil
}

// parseProbeOutput decodes the JSON document printed by probeScript. Only the
// last non-empty line is considered so that interpreter startup noise
// (sitecustomize prints and the like) is ignored.
func parseProbeOutput(stdout, goos string) (Layout, error) {
	doc := lastLine(stdout)
	if !gjson.Valid(doc) {
		return Layout{}, fmt.Errorf("invalid probe output: %q", doc)
	}

	res := gjson.Parse(doc)
	scripts := res.Get("scripts").String()
	if scripts == "" {
		return Layout{}, errors.New("probe output has no scripts path")
	}

	v, err := version.Parse(res.Get("version").String())
	if err != nil {
		return Layout{}, fmt.Errorf("probe output: %w", err)
	}

	return Layout{
		ScriptsDir:  scripts,
		UserBase:    res.Get("userbase").String(),
		PackageRoot: res.Get("package_root").String(),
		Interpreter: Interpreter{
			Version:             v,
			OSName:              res.Get("os_name").String(),
			Platform:            res.Get("platform").String(),
			Framework:           res.Get("framework").String(),
			PreferredUserScheme: res.Get("preferred_user_scheme").String(),
			VersionNodotPlat:    res.Get("py_version_nodot_plat").String(),
		},
		ExeSuffix: ExeSuffix(goos),
	}, nil
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
