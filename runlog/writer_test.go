package runlog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/poiesic/rankit/core"
	"github.com/poiesic/rankit/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntry() Entry {
	return Entry{
		RunID:     "3f2c9a1e-0000-4000-8000-000000000001",
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		User:      "alice",
		Reason:    "manual_test",
		Query:     "long horizon drift evaluation in adaptive systems",
		TopK:      2,
		Multipliers: map[string]float64{
			"T2": 1.0,
			"T1": 1.5,
			"T3": 0.5,
		},
		Context: index.Manifest{
			ModelName:          "all-MiniLM-L6-v2",
			EmbeddingDim:       384,
			Normalized:         true,
			SourceManifestHash: "ab12cd34",
			CreatedAtUTC:       time.Date(2025, 6, 1, 11, 30, 0, 0, time.UTC),
		},
		Results: []core.Result{
			{DocID: "doc-004", Tier: "T1", RawSim: 0.812, Multiplier: 1.5, WeightedScore: 1.218},
			{DocID: "doc-001", Tier: "T2", RawSim: 0.790, Multiplier: 1.0, WeightedScore: 0.790},
		},
	}
}

func TestNewWriter(t *testing.T) {
	t.Run("valid directory", func(t *testing.T) {
		w, err := NewWriter(t.TempDir())
		require.NoError(t, err)
		assert.NotNil(t, w)
	})

	t.Run("empty directory", func(t *testing.T) {
		_, err := NewWriter("")
		assert.ErrorIs(t, err, ErrDirRequired)
	})

	t.Run("whitespace directory", func(t *testing.T) {
		_, err := NewWriter("   ")
		assert.ErrorIs(t, err, ErrDirRequired)
	})
}

func TestWrite_Layout(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)

	path, err := w.Write(testEntry())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "rankit_run_20250601_120000.log"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	want := `=== RANKIT Run Log ===
Run ID: 3f2c9a1e-0000-4000-8000-000000000001
Timestamp: 2025-06-01T12:00:00Z
User: alice
Reason: manual_test
Seed: none
Query: long horizon drift evaluation in adaptive systems

Configuration:
  top_k: 2
  tier_multipliers:
    T1: 1.50
    T2: 1.00
    T3: 0.50

Embedding Context:
  model: all-MiniLM-L6-v2
  dim: 384
  normalized: true
  source_manifest_hash: ab12cd34
  created_at_utc: 2025-06-01T11:30:00Z

Results (top 2):
  #1 doc-004 | sim=0.812 x mult(T1)=1.50 => weighted=1.218
  #2 doc-001 | sim=0.790 x mult(T2)=1.00 => weighted=0.790
`
	assert.Equal(t, want, string(content))
}

func TestWrite_SeedValue(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	require.NoError(t, err)

	seed := int64(42)
	e := testEntry()
	e.Seed = &seed

	path, err := w.Write(e)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Seed: 42\n")
}

func TestWrite_CollisionGetsSuffix(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)

	first, err := w.Write(testEntry())
	require.NoError(t, err)

	second, err := w.Write(testEntry())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "rankit_run_20250601_120000_2.log"), second)

	third, err := w.Write(testEntry())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "rankit_run_20250601_120000_3.log"), third)

	// The original file is untouched.
	content, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Run ID: 3f2c9a1e")
}

func TestWrite_TimestampFromClock(t *testing.T) {
	fixed := time.Date(2025, 7, 4, 9, 30, 15, 0, time.UTC)
	w, err := NewWriter(t.TempDir(), WithClock(func() time.Time { return fixed }))
	require.NoError(t, err)

	e := testEntry()
	e.Timestamp = time.Time{}

	path, err := w.Write(e)
	require.NoError(t, err)
	assert.Contains(t, path, "rankit_run_20250704_093015.log")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Timestamp: 2025-07-04T09:30:15Z\n")
}

func TestWrite_CreatesNestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state", "logs")
	w, err := NewWriter(dir)
	require.NoError(t, err)

	path, err := w.Write(testEntry())
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestWrite_FillsMissingUser(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	require.NoError(t, err)

	e := testEntry()
	e.User = ""

	path, err := w.Write(e)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "User: "+CurrentUser()+"\n")
}

func TestCurrentUser(t *testing.T) {
	assert.NotEmpty(t, CurrentUser())
}
