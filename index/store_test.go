package index

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTriple(rows, dim int) (Manifest, []Meta, [][]float32) {
	m := Manifest{
		ModelName:          "all-MiniLM-L6-v2",
		EmbeddingDim:       dim,
		Normalized:         true,
		SourceManifestHash: strings.Repeat("ab", 32),
		CreatedAtUTC:       time.Date(2025, 11, 3, 12, 0, 0, 0, time.UTC),
	}

	metas := make([]Meta, rows)
	vecs := make([][]float32, rows)
	for i := 0; i < rows; i++ {
		metas[i] = Meta{
			RowIndex:    i,
			DocID:       fmt.Sprintf("doc_%03d", i),
			Tier:        "T1",
			ContentHash: strings.Repeat("cd", 32),
		}
		v := make([]float32, dim)
		for j := range v {
			v[j] = float32(i) + float32(j)/10
		}
		vecs[i] = v
	}
	return m, metas, vecs
}

func TestWriteLoad(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		dir := t.TempDir()
		m, metas, vecs := sampleTriple(4, 3)

		require.NoError(t, Write(dir, m, metas, vecs))

		ix, err := Load(dir)
		require.NoError(t, err)

		assert.Equal(t, m.ModelName, ix.Manifest.ModelName)
		assert.Equal(t, m.SourceManifestHash, ix.Manifest.SourceManifestHash)
		assert.True(t, m.CreatedAtUTC.Equal(ix.Manifest.CreatedAtUTC))
		assert.Equal(t, metas, ix.Metas)
		assert.Equal(t, vecs, ix.Vectors)
		assert.Equal(t, 4, ix.Rows())
		assert.Equal(t, 3, ix.Dim())
	})

	t.Run("rewrite replaces previous index", func(t *testing.T) {
		dir := t.TempDir()

		m1, metas1, vecs1 := sampleTriple(5, 3)
		require.NoError(t, Write(dir, m1, metas1, vecs1))

		m2, metas2, vecs2 := sampleTriple(2, 3)
		m2.SourceManifestHash = strings.Repeat("ef", 32)
		require.NoError(t, Write(dir, m2, metas2, vecs2))

		ix, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, 2, ix.Rows())
		assert.Equal(t, m2.SourceManifestHash, ix.Manifest.SourceManifestHash)
	})

	t.Run("meta file is one JSON object per line", func(t *testing.T) {
		dir := t.TempDir()
		m, metas, vecs := sampleTriple(3, 2)
		require.NoError(t, Write(dir, m, metas, vecs))

		raw, err := os.ReadFile(filepath.Join(dir, MetaFile))
		require.NoError(t, err)

		lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
		require.Len(t, lines, 3)
		assert.Contains(t, lines[0], `"row_index":0`)
		assert.Contains(t, lines[2], `"doc_002"`)
	})
}

func TestWrite_Rejections(t *testing.T) {
	t.Run("meta and vector counts differ", func(t *testing.T) {
		m, metas, vecs := sampleTriple(3, 2)

		err := Write(t.TempDir(), m, metas[:2], vecs)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrRowMismatch)
	})

	t.Run("vector dimension disagrees with manifest", func(t *testing.T) {
		m, metas, vecs := sampleTriple(3, 2)
		m.EmbeddingDim = 5

		err := Write(t.TempDir(), m, metas, vecs)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrManifestMismatch)
	})
}

func TestLoad_Failures(t *testing.T) {
	writeValid := func(t *testing.T) string {
		t.Helper()
		dir := t.TempDir()
		m, metas, vecs := sampleTriple(3, 2)
		require.NoError(t, Write(dir, m, metas, vecs))
		return dir
	}

	t.Run("empty directory", func(t *testing.T) {
		_, err := Load(t.TempDir())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrIndexNotFound)
	})

	t.Run("missing vector block", func(t *testing.T) {
		dir := writeValid(t)
		require.NoError(t, os.Remove(filepath.Join(dir, VectorsFile)))

		_, err := Load(dir)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrIndexNotFound)
	})

	t.Run("missing meta file", func(t *testing.T) {
		dir := writeValid(t)
		require.NoError(t, os.Remove(filepath.Join(dir, MetaFile)))

		_, err := Load(dir)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrIndexNotFound)
	})

	t.Run("meta rows exceed vector rows", func(t *testing.T) {
		dir := writeValid(t)
		extra := `{"row_index":3,"doc_id":"doc_999","tier":"T1","source":"","title":"","content_hash":""}` + "\n"
		f, err := os.OpenFile(filepath.Join(dir, MetaFile), os.O_APPEND|os.O_WRONLY, 0644)
		require.NoError(t, err)
		_, err = f.WriteString(extra)
		require.NoError(t, err)
		require.NoError(t, f.Close())

		_, err = Load(dir)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrRowMismatch)
	})

	t.Run("non-contiguous row_index", func(t *testing.T) {
		dir := writeValid(t)
		raw, err := os.ReadFile(filepath.Join(dir, MetaFile))
		require.NoError(t, err)
		mangled := strings.Replace(string(raw), `"row_index":1`, `"row_index":7`, 1)
		require.NoError(t, os.WriteFile(filepath.Join(dir, MetaFile), []byte(mangled), 0644))

		_, err = Load(dir)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrCorruptIndex)
	})

	t.Run("manifest dimension disagrees with block", func(t *testing.T) {
		dir := writeValid(t)
		raw, err := os.ReadFile(filepath.Join(dir, ManifestFile))
		require.NoError(t, err)
		mangled := strings.Replace(string(raw), `"embedding_dim": 2`, `"embedding_dim": 9`, 1)
		require.NotEqual(t, string(raw), mangled)
		require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFile), []byte(mangled), 0644))

		_, err = Load(dir)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrManifestMismatch)
	})

	t.Run("manifest without source hash", func(t *testing.T) {
		dir := t.TempDir()
		m, metas, vecs := sampleTriple(2, 2)
		m.SourceManifestHash = ""
		require.NoError(t, Write(dir, m, metas, vecs))

		_, err := Load(dir)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingSourceHash)
	})

	t.Run("malformed meta line", func(t *testing.T) {
		dir := writeValid(t)
		raw, err := os.ReadFile(filepath.Join(dir, MetaFile))
		require.NoError(t, err)
		mangled := strings.Replace(string(raw), "{", "{{", 1)
		require.NoError(t, os.WriteFile(filepath.Join(dir, MetaFile), []byte(mangled), 0644))

		_, err = Load(dir)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrCorruptIndex)
	})
}

func TestLoadManifest(t *testing.T) {
	t.Run("reads manifest only", func(t *testing.T) {
		dir := t.TempDir()
		m, metas, vecs := sampleTriple(2, 2)
		require.NoError(t, Write(dir, m, metas, vecs))

		// The other artifacts are not needed for a manifest read.
		require.NoError(t, os.Remove(filepath.Join(dir, VectorsFile)))
		require.NoError(t, os.Remove(filepath.Join(dir, MetaFile)))

		got, err := LoadManifest(dir)
		require.NoError(t, err)
		assert.Equal(t, m.SourceManifestHash, got.SourceManifestHash)
	})

	t.Run("missing manifest", func(t *testing.T) {
		_, err := LoadManifest(t.TempDir())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrIndexNotFound)
	})

	t.Run("malformed manifest", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFile), []byte("{"), 0644))

		_, err := LoadManifest(dir)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrCorruptIndex)
	})
}
