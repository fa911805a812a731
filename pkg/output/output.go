// Package output renders launcher diagnostics for humans and tools.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jwalton/go-supportscolor"
	"gopkg.in/yaml.v3"

	"github.com/vertti/biome-launcher/pkg/report"
)

var (
	green  = "\033[32m"
	red    = "\033[31m"
	yellow = "\033[33m"
	dim    = "\033[2m"
	reset  = "\033[0m"

	errRed   = "\033[31m"
	errReset = "\033[0m"
)

func init() {
	if !supportscolor.Stdout().SupportsColor {
		green, red, yellow, dim, reset = "", "", "", "", ""
	}
	if !supportscolor.Stderr().SupportsColor {
		errRed, errReset = "", ""
	}
}

// formatLabel dims the "label:" prefix of a detail line.
func formatLabel(s string) string {
	label, rest, ok := strings.Cut(s, ":")
	if !ok {
		return s
	}
	return dim + label + ":" + reset + rest
}

func statusColor(s report.Status) string {
	switch s {
	case report.StatusFound:
		return green
	case report.StatusMissing:
		return red
	default:
		return yellow
	}
}

// PrintEntry writes one candidate with its coloured status and details.
func PrintEntry(w io.Writer, e report.Entry) {
	name := e.Name
	if e.Path != "" {
		name += ": " + e.Path
	}
	_, _ = fmt.Fprintf(w, "%s[%s]%s %s\n", statusColor(e.Status), e.Status, reset, name)
	for _, d := range e.Details {
		_, _ = fmt.Fprintf(w, "      %s\n", formatLabel(d))
	}
}

// PrintReport writes the layout summary followed by every candidate.
func PrintReport(w io.Writer, r report.Report) {
	_, _ = fmt.Fprintf(w, "%s\n", formatLabel("tool: "+r.Tool))
	if r.Interpreter != "" {
		_, _ = fmt.Fprintf(w, "%s\n", formatLabel(fmt.Sprintf("interpreter: %s (%s)", r.Interpreter, r.Version)))
	}
	for _, k := range []string{"scripts_dir", "user_base", "package_root"} {
		if v := r.Layout[k]; v != "" {
			_, _ = fmt.Fprintf(w, "%s\n", formatLabel(k+": "+v))
		}
	}
	_, _ = fmt.Fprintf(w, "%s\n", formatLabel("user scheme: "+r.UserScheme))
	for _, n := range r.Notes {
		_, _ = fmt.Fprintf(w, "%s\n", formatLabel("note: "+n))
	}
	_, _ = fmt.Fprintln(w)

	for _, e := range r.Candidates {
		PrintEntry(w, e)
	}

	if r.Resolved != "" {
		_, _ = fmt.Fprintf(w, "\n%s\n", formatLabel("resolved: "+r.Resolved))
	}
	if r.Digest != "" {
		_, _ = fmt.Fprintf(w, "%s\n", formatLabel("digest: "+r.Digest))
	}
}

// PrintYAML writes r as a YAML document.
func PrintYAML(w io.Writer, r report.Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return enc.Close()
}

// PrintError writes a one-line diagnostic for err, prefixed with prog.
func PrintError(w io.Writer, prog string, err error) {
	_, _ = fmt.Fprintf(w, "%s: %serror:%s %v\n", prog, errRed, errReset, err)
}
