package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/targo-project/targo/internal/store"
	"github.com/targo-project/targo/pkg/errclass"
	"github.com/targo-project/targo/pkg/metadata"
	"github.com/targo-project/targo/pkg/model"
	"github.com/targo-project/targo/pkg/version"
)

func TestOpen_CreatesStoreLayout(t *testing.T) {
	root := filepath.Join(t.TempDir(), "cargo", "targo")

	s, err := store.Open(root)
	require.NoError(t, err)
	assert.Equal(t, root, s.Root())

	assert.DirExists(t, root)
	assert.FileExists(t, filepath.Join(root, model.StoreMetadataFile))
	assert.FileExists(t, filepath.Join(root, model.LockFile))

	meta, ok, err := metadata.Read[model.StoreMetadata](filepath.Join(root, model.StoreMetadataFile))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, version.StoreVersion, meta.StoreVersion)
}

func TestOpen_Reentrant(t *testing.T) {
	root := filepath.Join(t.TempDir(), "store")

	_, err := store.Open(root)
	require.NoError(t, err)
	_, err = store.Open(root)
	require.NoError(t, err)
}

func TestOpen_RejectsRelativeRoot(t *testing.T) {
	_, err := store.Open("relative/store")
	assert.ErrorIs(t, err, errclass.ErrNotAbsolute)
}

func TestOpen_UpgradesOlderStore(t *testing.T) {
	root := filepath.Join(t.TempDir(), "store")
	require.NoError(t, os.MkdirAll(root, 0755))
	old := &model.StoreMetadata{StoreVersion: 0, MinVersion: semver.MustParse("0.0.1")}
	require.NoError(t, metadata.Write(filepath.Join(root, model.StoreMetadataFile), old))

	_, err := store.Open(root)
	require.NoError(t, err)

	meta, ok, err := metadata.Read[model.StoreMetadata](filepath.Join(root, model.StoreMetadataFile))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, version.StoreVersion, meta.StoreVersion)
	assert.True(t, meta.MinVersion.Equal(version.MinClientVersion()))
}

func TestOpen_TooNewStoreFailsWithoutMutation(t *testing.T) {
	root := filepath.Join(t.TempDir(), "store")
	require.NoError(t, os.MkdirAll(root, 0755))
	metaPath := filepath.Join(root, model.StoreMetadataFile)
	newer := &model.StoreMetadata{
		StoreVersion: version.StoreVersion + 1,
		MinVersion:   semver.MustParse("99.0.0"),
	}
	require.NoError(t, metadata.Write(metaPath, newer))
	before, err := os.ReadFile(metaPath)
	require.NoError(t, err)

	_, err = store.Open(root)
	require.ErrorIs(t, err, errclass.ErrVersionMismatch)

	after, err := os.ReadFile(metaPath)
	require.NoError(t, err)
	assert.Equal(t, before, after, "failed open must not touch metadata")
}

func TestOpen_CorruptStoreMetadata(t *testing.T) {
	root := filepath.Join(t.TempDir(), "store")
	require.NoError(t, os.MkdirAll(root, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, model.StoreMetadataFile), []byte("{"), 0644))

	_, err := store.Open(root)
	assert.ErrorIs(t, err, errclass.ErrMetadataCorrupt)
}

func TestRedirect_FreshWorkspace(t *testing.T) {
	s, workspace, output := openTestStore(t)

	entry, err := s.Redirect(workspace, output)
	require.NoError(t, err)
	require.NotNil(t, entry)

	wantTarget := filepath.Join(s.Root(), store.Identifier(workspace), "target")
	assert.Equal(t, wantTarget, entry.TargetDir)
	assert.DirExists(t, wantTarget)

	linkTarget, err := os.Readlink(output)
	require.NoError(t, err)
	assert.Equal(t, wantTarget, linkTarget)

	meta, ok, err := s.EntryMetadata(store.Identifier(workspace))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{output}, meta.Backlinks)
	assert.False(t, meta.LastUsed.IsZero())
}

func TestRedirect_Idempotent(t *testing.T) {
	s, workspace, output := openTestStore(t)

	first, err := s.Redirect(workspace, output)
	require.NoError(t, err)
	second, err := s.Redirect(workspace, output)
	require.NoError(t, err)
	assert.Equal(t, first.TargetDir, second.TargetDir)

	entries, err := s.Entries()
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no duplicate entries")

	meta, ok, err := s.EntryMetadata(store.Identifier(workspace))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{output}, meta.Backlinks, "backlink recorded exactly once")
}

func TestRedirect_ReplacesPlainDirectory(t *testing.T) {
	s, workspace, output := openTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Join(output, "debug"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(output, "debug", "old.bin"), []byte("stale"), 0644))

	entry, err := s.Redirect(workspace, output)
	require.NoError(t, err)
	require.NotNil(t, entry)

	info, err := os.Lstat(output)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink)

	// The old contents are gone; the link now resolves into the store.
	assert.NoFileExists(t, filepath.Join(entry.TargetDir, "debug", "old.bin"))
}

func TestRedirect_ForeignLinkUntouched(t *testing.T) {
	s, workspace, output := openTestStore(t)
	require.NoError(t, os.Symlink("/elsewhere", output))

	entry, err := s.Redirect(workspace, output)
	require.NoError(t, err)
	assert.Nil(t, entry)

	linkTarget, err := os.Readlink(output)
	require.NoError(t, err)
	assert.Equal(t, "/elsewhere", linkTarget)

	entries, err := s.Entries()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRedirect_DanglingManagedLinkRecreatesEntry(t *testing.T) {
	s, workspace, output := openTestStore(t)
	target := filepath.Join(s.Root(), "ghost", "target")
	require.NoError(t, os.Symlink(target, output))

	entry, err := s.Redirect(workspace, output)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, target, entry.TargetDir)
	assert.DirExists(t, target)

	meta, ok, err := s.EntryMetadata("ghost")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{output}, meta.Backlinks)
}

func TestRedirect_TwoWorkspacesShareEntryByIdentity(t *testing.T) {
	s, workspace, _ := openTestStore(t)
	// Two different output paths claiming the same workspace identity
	// land in the same entry with both backlinks recorded.
	outA := filepath.Join(t.TempDir(), "target")
	outB := filepath.Join(t.TempDir(), "target")

	_, err := s.Redirect(workspace, outA)
	require.NoError(t, err)
	_, err = s.Redirect(workspace, outB)
	require.NoError(t, err)

	meta, ok, err := s.EntryMetadata(store.Identifier(workspace))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, meta.Backlinks, 2)
	assert.Contains(t, meta.Backlinks, outA)
	assert.Contains(t, meta.Backlinks, outB)
}
