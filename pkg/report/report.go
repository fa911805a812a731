// Package report holds the diagnostic entries produced while resolving the
// native binary.
package report

import "fmt"

// Status is the outcome of looking at one candidate.
type Status string

const (
	StatusFound   Status = "FOUND"
	StatusMissing Status = "MISSING"
	StatusSkipped Status = "SKIPPED"
)

// Entry describes one candidate location.
type Entry struct {
	Name    string   `yaml:"name"`    // e.g. "scripts", "user (posix_user)"
	Path    string   `yaml:"path"`    // candidate path, empty when skipped
	Status  Status   `yaml:"status"`  // FOUND, MISSING or SKIPPED
	Details []string `yaml:"details,omitempty"`
	Err     error    `yaml:"-"`
}

// Found reports whether the candidate exists as a regular file.
func (e Entry) Found() bool {
	return e.Status == StatusFound
}

// Miss marks the entry missing with a detail line.
func (e *Entry) Miss(detail string, err error) Entry {
	e.Status = StatusMissing
	e.Details = append(e.Details, detail)
	e.Err = err
	return *e
}

// AddDetailf appends a formatted detail line to the entry.
func (e *Entry) AddDetailf(format string, args ...any) *Entry {
	e.Details = append(e.Details, fmt.Sprintf(format, args...))
	return e
}

// Report is the full picture the doctor command renders.
type Report struct {
	Tool        string            `yaml:"tool"`
	Interpreter string            `yaml:"interpreter,omitempty"`
	Version     string            `yaml:"python_version,omitempty"`
	UserScheme  string            `yaml:"user_scheme"`
	Layout      map[string]string `yaml:"layout"`
	Candidates  []Entry           `yaml:"candidates"`
	Resolved    string            `yaml:"resolved,omitempty"`
	Digest      string            `yaml:"digest,omitempty"`
	Notes       []string          `yaml:"notes,omitempty"`
}
