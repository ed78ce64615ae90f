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

import "errors"

var (
	// ErrIndexNotFound indicates one or more index files are missing.
	ErrIndexNotFound = errors.New("embedding index not found")

	// ErrCorruptIndex indicates an index file exists but cannot be parsed.
	ErrCorruptIndex = errors.New("corrupt embedding index")

	// ErrRaggedVectors indicates rows of differing dimension were passed to the encoder.
	ErrRaggedVectors = errors.New("vector rows have inconsistent dimensions")

	// ErrRowMismatch indicates the metadata and vector block disagree on row count.
	ErrRowMismatch = errors.New("metadata and vector row counts differ")

	// ErrManifestMismatch indicates the manifest disagrees with the vector block.
	ErrManifestMismatch = errors.New("embedding manifest does not match vector block")

	// ErrMissingSourceHash indicates a manifest that predates hash binding.
	ErrMissingSourceHash = errors.New("embedding manifest has no source_manifest_hash")

	// ErrStaleIndex indicates the catalog changed after the index was built.
	ErrStaleIndex = errors.New("embedding index is stale")
)
