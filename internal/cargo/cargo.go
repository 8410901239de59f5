// Package cargo builds and runs cargo invocations for the wrapper.
package cargo

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Cli is a cargo command under construction. The binary comes from the
// CARGO environment variable when set, matching how cargo invokes
// external subcommands.
type Cli struct {
	bin  string
	args []string
}

// New returns a Cli for the configured cargo binary. An empty bin means
// $CARGO, falling back to "cargo" from PATH.
func New(bin string) *Cli {
	if bin == "" {
		bin = os.Getenv("CARGO")
	}
	if bin == "" {
		bin = "cargo"
	}
	return &Cli{bin: bin}
}

// Args appends arguments to the invocation.
func (c *Cli) Args(args ...string) *Cli {
	c.args = append(c.args, args...)
	return c
}

// ArgList returns the accumulated arguments.
func (c *Cli) ArgList() []string {
	return c.args
}

// String renders the invocation for error messages, quoting arguments
// that contain shell metacharacters.
func (c *Cli) String() string {
	parts := make([]string, 0, len(c.args)+1)
	for _, arg := range append([]string{c.bin}, c.args...) {
		if arg == "" || strings.ContainsAny(arg, " \t\n\"'\\$&|;<>*?()[]") {
			parts = append(parts, fmt.Sprintf("%q", arg))
		} else {
			parts = append(parts, arg)
		}
	}
	return strings.Join(parts, " ")
}

// StdoutOutput runs the command and returns its stdout. A non-zero exit
// produces an error carrying the exit code and both output streams, so
// failures diagnose without re-running.
func (c *Cli) StdoutOutput() ([]byte, error) {
	cmd := exec.Command(c.bin, c.args...)
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		msg := fmt.Sprintf("command `%s` failed", c)
		if errors.As(err, &exitErr) {
			msg += fmt.Sprintf(" with exit code %d", exitErr.ExitCode())
		}
		return nil, fmt.Errorf("%s\n\n--- stdout ---\n%s\n--- stderr ---\n%s",
			msg, stdout.String(), stderr.String())
	}
	return []byte(stdout.String()), nil
}

// RunOrExec hands control to cargo. On unix the process image is
// replaced and this never returns on success; elsewhere cargo runs as a
// child and its exit status is propagated as an *exec.ExitError.
func (c *Cli) RunOrExec() error {
	return c.runOrExec()
}
