// Package manifest reads the toolkit's package.json, which is the single
// source of truth for the documented project's version.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the conventional npm manifest name at the toolkit repo root.
const FileName = "package.json"

// ErrNoVersion indicates the manifest parsed cleanly but carries no version field.
var ErrNoVersion = errors.New("manifest has no version field")

// Manifest holds the package metadata the build cares about. Remaining
// package.json content is ignored.
type Manifest struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

// Load reads and parses the manifest at path. Open and parse errors propagate
// unwrapped in meaning: a missing or malformed manifest aborts the build.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if m.Version == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoVersion, path)
	}
	return &m, nil
}

// LoadFromRoot loads the manifest from its conventional location under the
// toolkit repository root.
func LoadFromRoot(root string) (*Manifest, error) {
	return Load(filepath.Join(root, FileName))
}
