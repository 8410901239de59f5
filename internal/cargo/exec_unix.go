//go:build unix

package cargo

import (
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/sys/unix"
)

func (c *Cli) runOrExec() error {
	path, err := exec.LookPath(c.bin)
	if err != nil {
		return fmt.Errorf("locate cargo binary %s: %w", c.bin, err)
	}
	argv := append([]string{c.bin}, c.args...)
	if err := unix.Exec(path, argv, os.Environ()); err != nil {
		return fmt.Errorf("exec `%s`: %w", c, err)
	}
	return nil
}
