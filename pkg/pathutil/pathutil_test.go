package pathutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/targo-project/targo/pkg/errclass"
	"github.com/targo-project/targo/pkg/pathutil"
)

func TestValidateAbsolute(t *testing.T) {
	assert.NoError(t, pathutil.ValidateAbsolute("/w/project"))

	err := pathutil.ValidateAbsolute("relative/path")
	assert.ErrorIs(t, err, errclass.ErrNotAbsolute)

	err = pathutil.ValidateAbsolute("/w/\xff\xfe")
	assert.ErrorIs(t, err, errclass.ErrPathEncoding)
}

func TestCanonicalize_ResolvesSymlinks(t *testing.T) {
	dir := t.TempDir()
	real := filepath.Join(dir, "real")
	require.NoError(t, os.Mkdir(real, 0755))
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(real, link))

	got, err := pathutil.Canonicalize(link)
	require.NoError(t, err)

	want, err := pathutil.Canonicalize(real)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCanonicalize_CleansDotDot(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "a")
	require.NoError(t, os.Mkdir(sub, 0755))

	got, err := pathutil.Canonicalize(filepath.Join(sub, "..", "a"))
	require.NoError(t, err)

	want, err := pathutil.Canonicalize(sub)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCanonicalize_MissingPath(t *testing.T) {
	_, err := pathutil.Canonicalize(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestCanonicalize_RejectsRelative(t *testing.T) {
	_, err := pathutil.Canonicalize("some/where")
	assert.ErrorIs(t, err, errclass.ErrNotAbsolute)
}
