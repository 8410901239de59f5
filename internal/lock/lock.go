// Package lock provides a scoped exclusive advisory lock on a file.
//
// The lock serializes the store's metadata verify/upgrade step across
// processes. It is a guard value: every exit path must call Release,
// there is no global lock state.
package lock

import (
	"fmt"
	"os"

	"github.com/targo-project/targo/pkg/errclass"
)

// Guard holds an exclusive advisory lock for the duration between
// Acquire and Release. The zero-length lock file itself is left in
// place after release; only the lock is dropped.
type Guard struct {
	file *os.File
	path string
}

// Acquire opens (creating if absent) the lock file at path and takes an
// exclusive advisory lock on it. Blocks until the lock is granted.
func Acquire(path string) (*Guard, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errclass.ErrLockFailed.WithMessagef("open lock file %s: %v", path, err)
	}
	if err := flockExclusive(file); err != nil {
		file.Close()
		return nil, errclass.ErrLockFailed.WithMessagef("lock %s: %v", path, err)
	}
	return &Guard{file: file, path: path}, nil
}

// Release drops the lock and closes the file. Safe to call once per
// guard; the guard must not be used afterwards.
func (g *Guard) Release() error {
	if err := flockUnlock(g.file); err != nil {
		g.file.Close()
		return fmt.Errorf("unlock %s: %w", g.path, err)
	}
	if err := g.file.Close(); err != nil {
		return fmt.Errorf("close lock file %s: %w", g.path, err)
	}
	return nil
}

// Path returns the lock file path.
func (g *Guard) Path() string {
	return g.path
}
