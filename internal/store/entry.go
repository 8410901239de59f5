package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/targo-project/targo/pkg/metadata"
	"github.com/targo-project/targo/pkg/model"
)

// ensureEntry materializes the entry directory for identifier and
// performs its metadata upkeep: insert the backlink, refresh last-used,
// write back. Idempotent — both first creation and re-use of an
// existing (or dangling) managed link go through here, since re-use is
// itself an access. Entry metadata is not covered by the store lock;
// concurrent writers to the same entry are last-writer-wins on the
// whole record.
func (s *Store) ensureEntry(sourceLink, identifier string) (*model.ManagedEntry, error) {
	entryDir := filepath.Join(s.root, identifier)
	targetDir := filepath.Join(entryDir, model.TargetLeaf)

	// Already-exists is success.
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return nil, fmt.Errorf("create managed target directory %s: %w", targetDir, err)
	}

	metaPath := filepath.Join(entryDir, model.EntryMetadataFile)
	meta, ok, err := metadata.Read[model.EntryMetadata](metaPath)
	if err != nil {
		return nil, err
	}
	if !ok {
		meta = model.NewEntryMetadata()
	}
	meta.AddBacklink(sourceLink)
	meta.Touch()
	if err := metadata.Write(metaPath, meta); err != nil {
		return nil, err
	}

	return &model.ManagedEntry{
		SourceLink: sourceLink,
		EntryDir:   entryDir,
		TargetDir:  targetDir,
	}, nil
}

// Entries lists the identifiers of all entry directories in the store.
func (s *Store) Entries() ([]string, error) {
	dirents, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("read store directory %s: %w", s.root, err)
	}
	var ids []string
	for _, d := range dirents {
		if d.IsDir() {
			ids = append(ids, d.Name())
		}
	}
	return ids, nil
}

// EntryMetadata reads the metadata record of one entry. The second
// return is false when the entry has no record.
func (s *Store) EntryMetadata(identifier string) (*model.EntryMetadata, bool, error) {
	return metadata.Read[model.EntryMetadata](filepath.Join(s.root, identifier, model.EntryMetadataFile))
}
