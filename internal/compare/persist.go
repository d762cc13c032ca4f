package compare

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tqc04/basket/internal/product"
)

// schemaVersion tags the on-disk file so a future format change can detect
// and migrate (or discard) old files.
const schemaVersion = 1

type compareFile struct {
	SchemaVersion int               `json:"schemaVersion"`
	Products      []product.Summary `json:"products"`
}

// FilePersister stores the comparison set as a JSON file, rewritten in
// full on every change.
type FilePersister struct {
	path string
}

// NewFilePersister persists under the given state directory.
func NewFilePersister(stateDir string) *FilePersister {
	return &FilePersister{path: filepath.Join(stateDir, "compare.json")}
}

// Path returns the backing file location.
func (p *FilePersister) Path() string {
	return p.path
}

// Save writes the set, creating parent directories as needed.
func (p *FilePersister) Save(items []product.Summary) error {
	data, err := json.MarshalIndent(compareFile{SchemaVersion: schemaVersion, Products: items}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode compare set: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}
	if err := os.WriteFile(p.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", p.path, err)
	}
	return nil
}

// Load reads the set back. A missing file is a fresh install and loads as
// empty without error. A file with an unknown schema version is ignored
// rather than misread.
func (p *FilePersister) Load() ([]product.Summary, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", p.path, err)
	}
	var file compareFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", p.path, err)
	}
	if file.SchemaVersion != schemaVersion {
		return nil, fmt.Errorf("%s: unsupported schema version %d", p.path, file.SchemaVersion)
	}
	return file.Products, nil
}
