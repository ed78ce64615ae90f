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


// Package indexer precomputes the embedding index from a document catalog.
//
// # Pipeline
//
// A run validates every document up front, embeds document contents in
// batches, normalizes each vector to unit length, and assembles the
// row-aligned metadata and manifest that the index package persists.
// Nothing is written to disk here; the caller owns persistence.
//
// # Concurrency
//
// Batches are embedded on an ants worker pool. Each worker writes its
// vectors into a preallocated row-aligned table at the batch's own
// offsets, so pool parallelism never disturbs row order. Transient
// embedding failures are retried with exponential backoff; a batch that
// exhausts its retries fails the whole run.
//
// # Progress
//
// Long runs report progress through a mutex-guarded tracker writing
// carriage-return lines to the configured writer, stderr by default.
package indexer
