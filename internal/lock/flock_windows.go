//go:build windows

package lock

import "os"

// flock is a no-op on Windows; store metadata upgrades from a
// single-user CLI tool do not contend there.
func flockExclusive(_ *os.File) error { return nil }
func flockUnlock(_ *os.File) error    { return nil }
