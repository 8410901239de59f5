//go:build unix

package symlink

import (
	"fmt"
	"os"
)

type platformLinker struct{}

func (platformLinker) Create(target, linkPath string) error {
	if err := os.Symlink(target, linkPath); err != nil {
		return fmt.Errorf("create symlink %s -> %s: %w", linkPath, target, err)
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
