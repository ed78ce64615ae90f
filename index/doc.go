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


// Package index reads and writes the embedding index: the precomputed
// document vectors plus the metadata needed to interpret and trust them.
//
// # Layout
//
// An index is a triple of flat files inside a data directory:
//
//   - doc_embeddings.gz: gzip-compressed vector block. A 12-byte header
//     (magic "RKV1", row count, dimension, little-endian uint32) followed
//     by rows x dim little-endian float32 values in row-major order.
//   - doc_meta.jsonl: one JSON object per line describing the document
//     behind each vector row (row_index, doc_id, tier, source, title,
//     content_hash). Line i describes row i of the vector block.
//   - embeddings_manifest.json: model name, dimension, normalization
//     flag, creation timestamp, and the canonical hash of the source
//     catalog the vectors were built from.
//
// # Consistency
//
// Load refuses an index whose parts disagree: metadata line count must
// equal the vector row count, row_index values must be contiguous from
// zero, and the manifest dimension must match the block header. A
// manifest without a source hash predates hash binding and is rejected
// with instructions to rebuild.
//
// # Staleness
//
// Manifest.Verify recomputes the canonical hash of the current catalog
// and compares it with the recorded hash. Any edit to the catalog since
// the index was built changes the hash and fails verification, which
// callers must treat as fatal before producing output that depends on
// the cached vectors.
//
// # Durability
//
// Write replaces each artifact via a temp file and rename in the same
// directory. This is a single-user CLI, not a database; the rename keeps
// a crash from leaving a half-written artifact behind, nothing more.
package index
