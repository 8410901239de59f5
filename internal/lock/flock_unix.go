//go:build unix

package lock

import (
	"os"

	"golang.org/x/sys/unix"
)

func flockExclusive(file *os.File) error {
	return unix.Flock(int(file.Fd()), unix.LOCK_EX)
}

func flockUnlock(file *os.File) error {
	return unix.Flock(int(file.Fd()), unix.LOCK_UN)
}
