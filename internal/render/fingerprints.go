package render

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// fingerprintManifestName is written into the output dir so subsequent runs
// can skip pages whose source and chrome are unchanged.
const fingerprintManifestName = ".refman-fingerprints.json"

// pageRecord is the per-page entry of the fingerprint manifest. The title is
// kept so skipped pages still label the navigation correctly.
type pageRecord struct {
	Fingerprint string `json:"fingerprint"`
	Title       string `json:"title,omitempty"`
}

// fingerprintManifest records the content fingerprints of the previous run.
type fingerprintManifest struct {
	// Chrome fingerprints the page shell: layout, sidebars, project identity.
	// A change invalidates every page.
	Chrome string `json:"chrome"`
	// Pages maps page RelPath to its record.
	Pages map[string]pageRecord `json:"pages"`
}

func newFingerprintManifest(chrome string) *fingerprintManifest {
	return &fingerprintManifest{Chrome: chrome, Pages: make(map[string]pageRecord)}
}

// loadFingerprintManifest reads the manifest from the output dir. A missing
// or unreadable manifest yields an empty one (every page renders).
func loadFingerprintManifest(outDir string) *fingerprintManifest {
	data, err := os.ReadFile(filepath.Join(outDir, fingerprintManifestName))
	if err != nil {
		return newFingerprintManifest("")
	}
	var m fingerprintManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return newFingerprintManifest("")
	}
	if m.Pages == nil {
		m.Pages = make(map[string]pageRecord)
	}
	return &m
}

// save writes the manifest atomically into the output dir.
func (m *fingerprintManifest) save(outDir string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fingerprint manifest: %w", err)
	}
	path := filepath.Join(outDir, fingerprintManifestName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write fingerprint manifest: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename fingerprint manifest: %w", err)
	}
	return nil
}

// unchanged reports whether a page can be skipped: same chrome, same source
// fingerprint and the rendered file still present.
func (m *fingerprintManifest) unchanged(prev *fingerprintManifest, rel, fp, outFile string) bool {
	if prev.Chrome == "" || prev.Chrome != m.Chrome {
		return false
	}
	if prev.Pages[rel].Fingerprint != fp {
		return false
	}
	_, err := os.Stat(outFile)
	return err == nil
}
