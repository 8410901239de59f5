// Package model defines targo's persistent metadata records and the
// redirection states computed from a workspace's output path.
package model

import (
	"sort"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/targo-project/targo/pkg/errclass"
	"github.com/targo-project/targo/pkg/version"
)

// Well-known file names inside the store.
const (
	StoreMetadataFile = "targo-metadata.json"
	EntryMetadataFile = "target-dir-metadata.json"
	LockFile          = "targo.lock"

	// TargetLeaf is the fixed leaf directory name inside every entry.
	// Managed symlinks always point at <store>/<identifier>/<TargetLeaf>.
	TargetLeaf = "target"
)

// StoreMetadata is the single store-level record at the store root.
// StoreVersion is monotonically non-decreasing across the store's
// lifetime.
type StoreMetadata struct {
	StoreVersion uint32          `json:"store-version"`
	MinVersion   *semver.Version `json:"min-version"`
}

// NewStoreMetadata returns a fresh record at the current store version.
func NewStoreMetadata() *StoreMetadata {
	return &StoreMetadata{
		StoreVersion: version.StoreVersion,
		MinVersion:   version.MinClientVersion(),
	}
}

// Verify gates on the store format version. A store written by a newer
// client is a hard error; forward compatibility is not attempted.
func (m *StoreMetadata) Verify(storeDir string) error {
	if m.StoreVersion > version.StoreVersion {
		return errclass.ErrVersionMismatch.WithMessagef(
			"store at %s is too new (supports up to store version %d, found %d) -- upgrade to targo %s or newer",
			storeDir, version.StoreVersion, m.StoreVersion, m.MinVersion)
	}
	return nil
}

// UpgradeIfNecessary returns a copy at the current version when the
// record is older than the running client, nil when no rewrite is
// needed. Versions never move backwards.
func (m *StoreMetadata) UpgradeIfNecessary() *StoreMetadata {
	if m.StoreVersion >= version.StoreVersion {
		return nil
	}
	return NewStoreMetadata()
}

// EntryMetadata is the per-entry record. Backlinks is an ordered set of
// workspace output paths that currently or previously pointed at this
// entry; it only grows. LastUsed is refreshed on every redirection that
// touches the entry.
type EntryMetadata struct {
	Backlinks []string  `json:"backlinks"`
	LastUsed  time.Time `json:"last-used"`
}

// NewEntryMetadata returns a fresh record with no backlinks.
func NewEntryMetadata() *EntryMetadata {
	return &EntryMetadata{LastUsed: time.Now().UTC()}
}

// AddBacklink inserts path into the backlink set, keeping it sorted and
// unique. Re-insertion is a no-op.
func (m *EntryMetadata) AddBacklink(path string) {
	i := sort.SearchStrings(m.Backlinks, path)
	if i < len(m.Backlinks) && m.Backlinks[i] == path {
		return
	}
	m.Backlinks = append(m.Backlinks, "")
	copy(m.Backlinks[i+1:], m.Backlinks[i:])
	m.Backlinks[i] = path
}

// Touch refreshes LastUsed to the current time.
func (m *EntryMetadata) Touch() {
	m.LastUsed = time.Now().UTC()
}
