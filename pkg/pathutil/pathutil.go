// Package pathutil provides path validation and canonicalization for targo.
//
// Workspace identity paths feed directly into the identifier hash, so
// canonicalization must be stable: two spellings of the same directory
// must map to the same identity.
package pathutil

import (
	"fmt"
	"path/filepath"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/targo-project/targo/pkg/errclass"
)

// ValidateAbsolute checks that path is absolute and valid UTF-8. Store
// and workspace paths are persisted in metadata and symlink targets, so
// both properties are required up front.
func ValidateAbsolute(path string) error {
	if !utf8.ValidString(path) {
		return errclass.ErrPathEncoding.WithMessagef("path is not valid UTF-8: %q", path)
	}
	if !filepath.IsAbs(path) {
		return errclass.ErrNotAbsolute.WithMessagef("path must be absolute: %s", path)
	}
	return nil
}

// Canonicalize resolves symlinks and `.`/`..` in path and normalizes the
// result to NFC. macOS volumes report NFD file names; normalizing keeps
// the workspace identity stable across Unicode representations of the
// same directory. The path must exist.
func Canonicalize(path string) (string, error) {
	if err := ValidateAbsolute(path); err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", fmt.Errorf("canonicalize %s: %w", path, err)
	}
	return norm.NFC.String(resolved), nil
}
