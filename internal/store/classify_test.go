package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/targo-project/targo/internal/store"
	"github.com/targo-project/targo/pkg/errclass"
	"github.com/targo-project/targo/pkg/model"
)

// openTestStore opens a store in a fresh temp dir and returns it with a
// workspace dir and its output path.
func openTestStore(t *testing.T) (*store.Store, string, string) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "store"))
	require.NoError(t, err)

	workspace := t.TempDir()
	return s, workspace, filepath.Join(workspace, "target")
}

func TestClassify_Absent(t *testing.T) {
	s, workspace, output := openTestStore(t)

	state, err := s.Classify(workspace, output)
	require.NoError(t, err)
	assert.Equal(t, model.StateAbsent, state.Kind)
	assert.Equal(t, workspace, state.Workspace)
	assert.Equal(t, output, state.OutputPath)
}

func TestClassify_PlainDirectory(t *testing.T) {
	s, workspace, output := openTestStore(t)
	require.NoError(t, os.Mkdir(output, 0755))

	state, err := s.Classify(workspace, output)
	require.NoError(t, err)
	assert.Equal(t, model.StatePlainDirectory, state.Kind)
}

func TestClassify_ManagedLinkShape(t *testing.T) {
	s, workspace, output := openTestStore(t)
	require.NoError(t, os.Symlink(filepath.Join(s.Root(), "baz", "target"), output))

	state, err := s.Classify(workspace, output)
	require.NoError(t, err)
	assert.Equal(t, model.StateManagedLink, state.Kind)
	assert.Equal(t, "baz", state.Identifier)
}

func TestClassify_ShapeMismatchesAreForeign(t *testing.T) {
	s, workspace, output := openTestStore(t)

	cases := []struct {
		name   string
		target string
	}{
		{"extra segment", filepath.Join(s.Root(), "baz", "extra", "target")},
		{"missing leaf", filepath.Join(s.Root(), "baz")},
		{"store root itself", s.Root()},
		{"wrong leaf name", filepath.Join(s.Root(), "baz", "out")},
		{"outside the store", "/elsewhere/baz/target"},
		// Written uncleaned so the literal link text carries the `..`.
		{"parent escape", s.Root() + "/../escape/baz/target"},
	}
	for _, tc := range cases {
		require.NoError(t, os.Symlink(tc.target, output))

		state, err := s.Classify(workspace, output)
		require.NoError(t, err, tc.name)
		assert.Equal(t, model.StateForeign, state.Kind, tc.name)
		require.NoError(t, os.Remove(output))
	}
}

func TestClassify_RelativeTargetIsForeign(t *testing.T) {
	s, workspace, output := openTestStore(t)

	// Even a relative target that resolves into the store is foreign.
	rel, err := filepath.Rel(workspace, filepath.Join(s.Root(), "baz", "target"))
	require.NoError(t, err)
	require.NoError(t, os.Symlink(rel, output))

	state, err := s.Classify(workspace, output)
	require.NoError(t, err)
	assert.Equal(t, model.StateForeign, state.Kind)
}

func TestClassify_RegularFileIsForeign(t *testing.T) {
	s, workspace, output := openTestStore(t)
	require.NoError(t, os.WriteFile(output, []byte("not a dir"), 0644))

	state, err := s.Classify(workspace, output)
	require.NoError(t, err)
	assert.Equal(t, model.StateForeign, state.Kind)
}

func TestClassify_DanglingManagedLinkIsStillManaged(t *testing.T) {
	s, workspace, output := openTestStore(t)
	// The entry directory does not exist yet; shape alone decides.
	require.NoError(t, os.Symlink(filepath.Join(s.Root(), "ghost", "target"), output))

	state, err := s.Classify(workspace, output)
	require.NoError(t, err)
	assert.Equal(t, model.StateManagedLink, state.Kind)
	assert.Equal(t, "ghost", state.Identifier)
}

func TestClassify_RejectsRelativeInputs(t *testing.T) {
	s, workspace, output := openTestStore(t)

	_, err := s.Classify("relative/workspace", output)
	assert.ErrorIs(t, err, errclass.ErrNotAbsolute)

	_, err = s.Classify(workspace, "relative/target")
	assert.ErrorIs(t, err, errclass.ErrNotAbsolute)
}
