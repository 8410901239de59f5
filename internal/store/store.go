// Package store owns the targo store: a root directory holding one
// versioned metadata record plus one entry per workspace identity, and
// the engine that redirects workspace output directories into it.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/targo-project/targo/internal/lock"
	"github.com/targo-project/targo/internal/symlink"
	"github.com/targo-project/targo/pkg/logging"
	"github.com/targo-project/targo/pkg/metadata"
	"github.com/targo-project/targo/pkg/model"
	"github.com/targo-project/targo/pkg/pathutil"
)

// Store is an opened targo store. Opening verifies (and if needed
// upgrades) the store metadata under an exclusive advisory lock; the
// lock is released before Open returns.
type Store struct {
	root   string
	linker symlink.Linker
	log    zerolog.Logger
}

// Open creates the store root if absent, then verifies or upgrades the
// store-level metadata. The verify/upgrade step runs under an exclusive
// flock on the store's lock file, so concurrent opens from other
// processes are strictly ordered and never observe a torn record.
func Open(root string) (store *Store, err error) {
	if err := pathutil.ValidateAbsolute(root); err != nil {
		return nil, err
	}
	root = filepath.Clean(root)

	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("create store directory %s: %w", root, err)
	}

	guard, err := lock.Acquire(filepath.Join(root, model.LockFile))
	if err != nil {
		return nil, err
	}
	defer func() {
		if rerr := guard.Release(); rerr != nil && err == nil {
			store, err = nil, rerr
		}
	}()

	if err := verifyMetadata(root); err != nil {
		return nil, err
	}

	return &Store{
		root:   root,
		linker: symlink.New(),
		log:    logging.Component("store"),
	}, nil
}

// verifyMetadata reads the store record, writing a fresh one when
// absent and rewriting in place when an older client wrote it. A record
// from a newer client is a hard error and nothing is mutated. Caller
// holds the store lock.
func verifyMetadata(root string) error {
	metaPath := filepath.Join(root, model.StoreMetadataFile)

	meta, ok, err := metadata.Read[model.StoreMetadata](metaPath)
	if err != nil {
		return err
	}

	var toWrite *model.StoreMetadata
	if !ok {
		toWrite = model.NewStoreMetadata()
	} else {
		if err := meta.Verify(root); err != nil {
			return err
		}
		toWrite = meta.UpgradeIfNecessary()
	}

	if toWrite != nil {
		if err := metadata.Write(metaPath, toWrite); err != nil {
			return err
		}
	}
	return nil
}

// Root returns the store root directory.
func (s *Store) Root() string {
	return s.root
}

// Redirect classifies the workspace's output path and transitions it
// into a managed symlink where eligible. A nil entry with nil error
// means the path is foreign and was left untouched; the caller should
// proceed without modifying anything.
func (s *Store) Redirect(workspace, outputPath string) (*model.ManagedEntry, error) {
	state, err := s.Classify(workspace, outputPath)
	if err != nil {
		return nil, err
	}
	return s.Actualize(state)
}
