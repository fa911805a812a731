//go:build unix

package exec

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// execFunc is swapped in tests; unix.Exec does not return on success.
var execFunc = unix.Exec

// Exec replaces the current process with path via execve(2). The new image
// keeps the pid, open descriptors and working directory.
func (e *RealExecutor) Exec(path string, argv []string) error {
	// #nosec G204 -- path comes from the locator, argv is forwarded as given.
	if err := execFunc(path, argv, environ()); err != nil {
		return fmt.Errorf("exec %s: %w", path, err)
	}
	return nil
}
