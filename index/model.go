package index

import "time"

// Index file names inside a data directory.
const (
	VectorsFile  = "doc_embeddings.gz"
	MetaFile     = "doc_meta.jsonl"
	ManifestFile = "embeddings_manifest.json"
)

// Manifest describes a built embedding index and binds it to the catalog
// snapshot it was produced from. The source hash is the load-bearing
// field; everything else is provenance for the run log.
type Manifest struct {
	ModelName          string    `json:"model_name"`
	EmbeddingDim       int       `json:"embedding_dim"`
	Normalized         bool      `json:"normalized"`
	SourceManifestHash string    `json:"source_manifest_hash"`
	CreatedAtUTC       time.Time `json:"created_at_utc"`
}

// Meta is one row of index metadata, aligned by position with the vector
// block. Source and Title may be empty; ContentHash is the SHA-256 of the
// exact content that was embedded.
type Meta struct {
	RowIndex    int    `json:"row_index"`
	DocID       string `json:"doc_id"`
	Tier        string `json:"tier"`
	Source      string `json:"source"`
	Title       string `json:"title"`
	ContentHash string `json:"content_hash"`
}

// Index is a fully loaded index triple.
type Index struct {
	Manifest Manifest
	Metas    []Meta
	Vectors  [][]float32
}

// Rows returns the number of document rows in the index.
func (ix *Index) Rows() int {
	return len(ix.Metas)
}

// Dim returns the embedding dimension.
func (ix *Index) Dim() int {
	return ix.Manifest.EmbeddingDim
}
