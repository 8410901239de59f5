package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/targo-project/targo/pkg/errclass"
	"github.com/targo-project/targo/pkg/fsutil"
	"github.com/targo-project/targo/pkg/model"
	"github.com/targo-project/targo/pkg/pathutil"
)

// Classify inspects outputPath and reports what sits there. It uses
// symlink metadata (never following the link) and reads link targets as
// literal text, so a concurrent replace cannot redirect the check to a
// different file than the one acted on.
func (s *Store) Classify(workspace, outputPath string) (*model.RedirectionState, error) {
	if err := pathutil.ValidateAbsolute(workspace); err != nil {
		return nil, err
	}
	if err := pathutil.ValidateAbsolute(outputPath); err != nil {
		return nil, err
	}

	state := &model.RedirectionState{Workspace: workspace, OutputPath: outputPath}

	info, err := os.Lstat(outputPath)
	if os.IsNotExist(err) {
		state.Kind = model.StateAbsent
		return state, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read metadata for target dir %s: %w", outputPath, err)
	}

	switch {
	case info.IsDir():
		state.Kind = model.StatePlainDirectory
	case info.Mode()&os.ModeSymlink != 0:
		target, err := s.linker.ReadTarget(outputPath)
		if err != nil {
			return nil, err
		}
		if !utf8.ValidString(target) {
			return nil, errclass.ErrPathEncoding.WithMessagef(
				"symlink target of %s is not valid UTF-8: %q", outputPath, target)
		}
		if id := s.managedIdentifier(target); id != "" {
			state.Kind = model.StateManagedLink
			state.Identifier = id
		} else {
			state.Kind = model.StateForeign
		}
	default:
		// Regular files, fifos, devices.
		state.Kind = model.StateForeign
	}
	return state, nil
}

// managedIdentifier extracts the entry identifier from a symlink target
// of the exact managed shape <root>/<one-segment>/target. Anything else
// returns "". Relative targets never match: their ownership is
// ambiguous and targo must not touch them. The target is compared
// literally, without resolving, so `..` segments disqualify rather than
// normalize.
func (s *Store) managedIdentifier(target string) string {
	if !filepath.IsAbs(target) {
		return ""
	}
	prefix := s.root + string(filepath.Separator)
	if !strings.HasPrefix(target, prefix) {
		return ""
	}
	parts := strings.Split(target[len(prefix):], string(filepath.Separator))
	if len(parts) != 2 || parts[1] != model.TargetLeaf {
		return ""
	}
	id := parts[0]
	if id == "" || id == "." || id == ".." {
		return ""
	}
	return id
}

// Actualize transitions the classified state into a managed symlink.
// Foreign states are never mutated: the return is (nil, nil) and the
// caller proceeds with the workspace as-is.
func (s *Store) Actualize(state *model.RedirectionState) (*model.ManagedEntry, error) {
	switch state.Kind {
	case model.StateManagedLink:
		// The entry directory may be gone (dangling link); ensureEntry
		// recreates it transparently.
		return s.ensureEntry(state.OutputPath, state.Identifier)
	case model.StateAbsent:
		return s.installLink(state.Workspace, state.OutputPath)
	case model.StatePlainDirectory:
		// Irreversible: the existing output directory tree is discarded
		// before redirecting. There is no confirmation step.
		s.log.Warn().Str("path", state.OutputPath).Msg("removing existing target directory")
		if err := fsutil.RemoveTree(state.OutputPath); err != nil {
			return nil, err
		}
		return s.installLink(state.Workspace, state.OutputPath)
	case model.StateForeign:
		s.log.Debug().Str("path", state.OutputPath).Msg("foreign target path, leaving untouched")
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown redirection state %q", state.Kind)
	}
}

// installLink creates the entry for the workspace identity and points
// outputPath at its target directory.
func (s *Store) installLink(workspace, outputPath string) (*model.ManagedEntry, error) {
	entry, err := s.ensureEntry(outputPath, Identifier(workspace))
	if err != nil {
		return nil, err
	}
	if err := s.linker.Create(entry.TargetDir, outputPath); err != nil {
		return nil, err
	}
	s.log.Debug().
		Str("link", outputPath).
		Str("target", entry.TargetDir).
		Msg("installed managed symlink")
	return entry, nil
}
