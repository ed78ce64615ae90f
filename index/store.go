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


package index

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Write persists an index triple into dir, replacing any previous index.
// The metadata and vector rows must already be aligned; Write rejects
// disagreement rather than papering over it.
func Write(dir string, m Manifest, metas []Meta, vecs [][]float32) error {
	if len(metas) != len(vecs) {
		return fmt.Errorf("%w: %d metadata rows, %d vectors", ErrRowMismatch, len(metas), len(vecs))
	}
	for i, v := range vecs {
		if len(v) != m.EmbeddingDim {
			return fmt.Errorf("%w: row %d has dimension %d, manifest says %d",
				ErrManifestMismatch, i, len(v), m.EmbeddingDim)
		}
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	err := writeAtomic(filepath.Join(dir, VectorsFile), func(w io.Writer) error {
		return EncodeVectors(w, vecs, m.EmbeddingDim)
	})
	if err != nil {
		return fmt.Errorf("writing %s: %w", VectorsFile, err)
	}

	err = writeAtomic(filepath.Join(dir, MetaFile), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		for i := range metas {
			if err := enc.Encode(&metas[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("writing %s: %w", MetaFile, err)
	}

	err = writeAtomic(filepath.Join(dir, ManifestFile), func(w io.Writer) error {
		out, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return err
		}
		_, err = w.Write(append(out, '\n'))
		return err
	})
	if err != nil {
		return fmt.Errorf("writing %s: %w", ManifestFile, err)
	}

	return nil
}

// Load reads a complete index triple from dir and cross-checks its parts.
func Load(dir string) (*Index, error) {
	m, err := LoadManifest(dir)
	if err != nil {
		return nil, err
	}

	metas, err := loadMeta(filepath.Join(dir, MetaFile))
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(dir, VectorsFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s missing in %s (run `rankit index`)", ErrIndexNotFound, VectorsFile, dir)
		}
		return nil, fmt.Errorf("opening %s: %w", VectorsFile, err)
	}
	defer f.Close()

	vecs, dim, err := DecodeVectors(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", VectorsFile, err)
	}

	if len(metas) != len(vecs) {
		return nil, fmt.Errorf("%w: %s has %d rows, %s has %d",
			ErrRowMismatch, MetaFile, len(metas), VectorsFile, len(vecs))
	}
	for i := range metas {
		if metas[i].RowIndex != i {
			return nil, fmt.Errorf("%w: %s line %d has row_index %d",
				ErrCorruptIndex, MetaFile, i+1, metas[i].RowIndex)
		}
	}
	if m.EmbeddingDim != dim {
		return nil, fmt.Errorf("%w: manifest dimension %d, vector block dimension %d",
			ErrManifestMismatch, m.EmbeddingDim, dim)
	}
	if m.SourceManifestHash == "" {
		return nil, fmt.Errorf("%w: rebuild the index with `rankit index`", ErrMissingSourceHash)
	}

	return &Index{Manifest: m, Metas: metas, Vectors: vecs}, nil
}

// LoadManifest reads only the embedding manifest, enough for a staleness
// check without decoding the vector block.
func LoadManifest(dir string) (Manifest, error) {
	raw, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Manifest{}, fmt.Errorf("%w: %s missing in %s (run `rankit index`)", ErrIndexNotFound, ManifestFile, dir)
		}
		return Manifest{}, fmt.Errorf("reading %s: %w", ManifestFile, err)
	}

	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return Manifest{}, fmt.Errorf("%w: %s: %w", ErrCorruptIndex, ManifestFile, err)
	}
	return m, nil
}

func loadMeta(path string) ([]Meta, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s missing (run `rankit index`)", ErrIndexNotFound, filepath.Base(path))
		}
		return nil, fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	var metas []Meta
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var m Meta
		if err := json.Unmarshal([]byte(text), &m); err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %w", ErrCorruptIndex, filepath.Base(path), line, err)
		}
		metas = append(metas, m)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}

	return metas, nil
}

// writeAtomic writes through a temp file in the target directory and
// renames it into place.
func writeAtomic(path string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
