//go:build !unix

package cargo

import (
	"fmt"
	"os"
	"os/exec"
)

func (c *Cli) runOrExec() error {
	cmd := exec.Command(c.bin, c.args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run `%s`: %w", c, err)
	}
	return nil
}
