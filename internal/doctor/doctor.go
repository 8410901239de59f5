// Package doctor runs health checks over a targo store. It never
// mutates the store; repairs are left to the operator.
package doctor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/targo-project/targo/pkg/metadata"
	"github.com/targo-project/targo/pkg/model"
	"github.com/targo-project/targo/pkg/version"
)

// Finding represents a detected issue.
type Finding struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Path        string `json:"path,omitempty"`
}

// Result contains doctor check results.
type Result struct {
	Healthy  bool      `json:"healthy"`
	Findings []Finding `json:"findings"`
}

// Doctor performs store health checks.
type Doctor struct {
	storeRoot string
}

// New creates a doctor for the store at storeRoot.
func New(storeRoot string) *Doctor {
	return &Doctor{storeRoot: storeRoot}
}

// Check runs all diagnostic checks.
func (d *Doctor) Check() (*Result, error) {
	result := &Result{Healthy: true}

	d.checkStoreMetadata(result)
	entries, err := d.entryIdentifiers()
	if err != nil {
		return nil, err
	}
	for _, id := range entries {
		d.checkEntry(result, id)
	}
	d.checkOrphanTmp(result, d.storeRoot)

	return result, nil
}

func (d *Doctor) checkStoreMetadata(result *Result) {
	path := filepath.Join(d.storeRoot, model.StoreMetadataFile)
	meta, ok, err := metadata.Read[model.StoreMetadata](path)
	if err != nil {
		result.add(Finding{
			Category:    "store",
			Description: fmt.Sprintf("store metadata unreadable: %v", err),
			Severity:    "critical",
			Path:        path,
		})
		return
	}
	if !ok {
		result.add(Finding{
			Category:    "store",
			Description: "store metadata missing (store never opened, or record deleted)",
			Severity:    "error",
			Path:        path,
		})
		return
	}
	if meta.StoreVersion > version.StoreVersion {
		result.add(Finding{
			Category:    "store",
			Description: fmt.Sprintf("store version %d > supported %d", meta.StoreVersion, version.StoreVersion),
			Severity:    "critical",
			Path:        path,
		})
	}
}

func (d *Doctor) entryIdentifiers() ([]string, error) {
	dirents, err := os.ReadDir(d.storeRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read store directory %s: %w", d.storeRoot, err)
	}
	var ids []string
	for _, de := range dirents {
		if de.IsDir() {
			ids = append(ids, de.Name())
		}
	}
	return ids, nil
}

func (d *Doctor) checkEntry(result *Result, id string) {
	entryDir := filepath.Join(d.storeRoot, id)
	targetDir := filepath.Join(entryDir, model.TargetLeaf)
	metaPath := filepath.Join(entryDir, model.EntryMetadataFile)

	meta, ok, err := metadata.Read[model.EntryMetadata](metaPath)
	if err != nil {
		result.add(Finding{
			Category:    "entry",
			Description: fmt.Sprintf("entry metadata unreadable: %v", err),
			Severity:    "error",
			Path:        metaPath,
		})
		return
	}
	if !ok {
		result.add(Finding{
			Category:    "entry",
			Description: "entry directory has no metadata record",
			Severity:    "warning",
			Path:        entryDir,
		})
		return
	}

	if _, err := os.Stat(targetDir); os.IsNotExist(err) {
		result.add(Finding{
			Category:    "entry",
			Description: "entry has metadata but no target directory",
			Severity:    "warning",
			Path:        targetDir,
		})
	}

	for _, backlink := range meta.Backlinks {
		d.checkBacklink(result, backlink, targetDir)
	}

	d.checkOrphanTmp(result, entryDir)
}

// checkBacklink verifies that a recorded workspace link still points at
// this entry. Backlinks are historical by design, so a stale one is
// informational, not an error.
func (d *Doctor) checkBacklink(result *Result, backlink, targetDir string) {
	linkTarget, err := os.Readlink(backlink)
	if err != nil {
		result.add(Finding{
			Category:    "backlink",
			Description: "recorded backlink is no longer a symlink",
			Severity:    "info",
			Path:        backlink,
		})
		return
	}
	if linkTarget != targetDir {
		result.add(Finding{
			Category:    "backlink",
			Description: fmt.Sprintf("backlink points at %s, not this entry", linkTarget),
			Severity:    "info",
			Path:        backlink,
		})
	}
}

// checkOrphanTmp reports temp files left behind by interrupted atomic
// writes.
func (d *Doctor) checkOrphanTmp(result *Result, dir string) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, de := range dirents {
		if !de.IsDir() && strings.HasPrefix(de.Name(), ".targo-tmp-") {
			result.add(Finding{
				Category:    "tmp",
				Description: "orphan temp file from an interrupted write",
				Severity:    "warning",
				Path:        filepath.Join(dir, de.Name()),
			})
		}
	}
}

func (r *Result) add(f Finding) {
	r.Findings = append(r.Findings, f)
	if f.Severity == "critical" || f.Severity == "error" {
		r.Healthy = false
	}
}
