// Package exec hands the current process over to the native binary.
package exec

import (
	"fmt"
	"os"
)

// Executor transfers control to a resolved binary.
type Executor interface {
	// Exec runs path with argv. On Unix it replaces the current process and
	// only returns on failure. On Windows it waits for the child and returns
	// an *ExitStatusError when the child exits non-zero.
	Exec(path string, argv []string) error
}

// RealExecutor is the production implementation.
type RealExecutor struct{}

// Argv builds the argument vector for the binary: path in place of the
// launcher's own name, followed by args[1:] unchanged.
func Argv(path string, args []string) []string {
	argv := make([]string, 0, max(len(args), 1))
	argv = append(argv, path)
	if len(args) > 1 {
		argv = append(argv, args[1:]...)
	}
	return argv
}

// ExitStatusError carries the exit code of a child the launcher waited on.
type ExitStatusError struct {
	Code int
}

func (e *ExitStatusError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// ExitCode returns Code for use with os.Exit. A negative code, reported
// for a child that was killed, becomes 1.
func (e *ExitStatusError) ExitCode() int {
	if e.Code < 0 {
		return 1
	}
	return e.Code
}

// environ returns the current environment.
func environ() []string {
	return os.Environ()
}
