//go:build windows

package exec

import (
	"errors"
	"fmt"
	"os"
	osexec "os/exec"
	"os/signal"
)

// runFunc is swapped in tests.
var runFunc = func(cmd *osexec.Cmd) error { return cmd.Run() }

// Exec runs path as a child and waits for it. Windows has no execve, so the
// child gets its own pid; stdio, environment and working directory are
// inherited and a non-zero exit comes back as *ExitStatusError.
func (e *RealExecutor) Exec(path string, argv []string) error {
	cmd := osexec.Command(path)
	cmd.Args = argv
	cmd.Env = environ()
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	// Ctrl+C reaches every process on the console; the child decides.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	defer signal.Stop(sig)

	err := runFunc(cmd)
	if err == nil {
		return nil
	}

	var exitErr *osexec.ExitError
	if errors.As(err, &exitErr) {
		// ExitCode is -1 for a killed child.
		code := exitErr.ExitCode()
		if code < 0 {
			code = 1
		}
		return &ExitStatusError{Code: code}
	}
	return fmt.Errorf("exec %s: %w", path, err)
}
