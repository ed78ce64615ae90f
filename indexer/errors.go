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


package indexer

import "errors"

var (
	// ErrEmbedderRequired is returned when New is called without an embedder.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrNoDocuments is returned when Run is called with an empty catalog.
	ErrNoDocuments = errors.New("no documents to index")

	// ErrCatalogHashRequired is returned when Run is called without the
	// canonical catalog hash. The hash is what ties the built index back
	// to its source catalog, so a build without one would be unverifiable.
	ErrCatalogHashRequired = errors.New("catalog hash is required")

	// ErrModelRequired is returned when Run is called without a model name.
	ErrModelRequired = errors.New("model name is required")

	// ErrVectorCountMismatch is returned when the embedder returns a
	// different number of vectors than texts it was given.
	ErrVectorCountMismatch = errors.New("embedder returned wrong number of vectors")

	// ErrInvalidMaxAttempts is returned when RetryWithBackoff is called
	// with a non-positive attempt budget.
	ErrInvalidMaxAttempts = errors.New("max attempts must be greater than zero")
)
