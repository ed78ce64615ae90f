// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/poiesic/rankit/core"
)

const (
	// CatalogFile is the primary catalog name inside a data directory.
	CatalogFile = "manifest.json"

	// SampleCatalogFile is the fallback catalog used when no primary
	// catalog exists, typically written by the seeder.
	SampleCatalogFile = "sample_manifest.json"
)

// Load reads and validates a document catalog.
// The file must contain a non-empty JSON array of document records with
// doc_id, tier and content set on every entry.
func Load(path string) ([]core.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCatalogNotFound, path)
		}
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}

	var docs []core.Document
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedCatalog, path, err)
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyCatalog, path)
	}

	for i := range docs {
		if err := core.ValidateDocument(&docs[i]); err != nil {
			return nil, fmt.Errorf("catalog document at index %d: %w", i, err)
		}
	}

	return docs, nil
}

// ResolvePath locates the catalog inside a data directory, preferring the
// primary catalog and falling back to the sample catalog.
func ResolvePath(dataDir string) (string, error) {
	primary := filepath.Join(dataDir, CatalogFile)
	if _, err := os.Stat(primary); err == nil {
		return primary, nil
	}

	fallback := filepath.Join(dataDir, SampleCatalogFile)
	if _, err := os.Stat(fallback); err == nil {
		return fallback, nil
	}

	return "", fmt.Errorf("%w: neither %s nor %s exists in %s",
		ErrCatalogNotFound, CatalogFile, SampleCatalogFile, dataDir)
}
