//go:build windows

package symlink

import (
	"fmt"
	"os"

	"github.com/targo-project/targo/pkg/errclass"
)

type platformLinker struct{}

// Symlink creation on Windows requires developer mode or elevation.
// Surface a capability error rather than a raw privilege failure.
func (platformLinker) Create(target, linkPath string) error {
	if err := os.Symlink(target, linkPath); err != nil {
		return errclass.ErrUnsupported.WithMessagef(
			"create symlink %s -> %s: %v (enable developer mode or run elevated)",
			linkPath, target, err)
	}
	return nil
}

func (platformLinker) ReadTarget(linkPath string) (string, error) {
	target, err := os.Readlink(linkPath)
	if err != nil {
		return "", fmt.Errorf("read symlink %s: %w", linkPath, err)
	}
	return target, nil
}
