// Package metadata reads and writes targo's on-disk JSON metadata records.
//
// Records are small and human-diffable. Reads treat an absent file as a
// valid "no record yet" state; writes replace the whole file through an
// atomic rename so concurrent readers never see a torn record.
package metadata

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/targo-project/targo/pkg/errclass"
	"github.com/targo-project/targo/pkg/fsutil"
)

// Read loads a metadata record from path. The second return is false
// when the file does not exist; that is not an error. Malformed content
// is ErrMetadataCorrupt with the offending path.
func Read[T any](path string) (*T, bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read metadata %s: %w", path, err)
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, false, errclass.ErrMetadataCorrupt.WithMessagef("parse %s: %v", path, err)
	}
	return &v, true, nil
}

// Write serializes v as indented JSON and atomically replaces path.
func Write(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errclass.ErrMetadataWrite.WithMessagef("marshal %s: %v", path, err)
	}
	data = append(data, '\n')
	if err := fsutil.AtomicWrite(path, data, 0644); err != nil {
		return errclass.ErrMetadataWrite.WithMessagef("write %s: %v", path, err)
	}
	return nil
}
