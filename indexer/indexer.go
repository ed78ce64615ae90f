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

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/rankit/ai"
	"github.com/poiesic/rankit/core"
	"github.com/poiesic/rankit/index"
)

// Config holds the tunable knobs for an index build.
type Config struct {
	// BatchSize is the number of documents embedded per call.
	BatchSize int

	// PoolSize is the number of concurrent embedding workers.
	PoolSize int

	// MaxRetries is the attempt budget per batch.
	MaxRetries int

	// RetryDelay is the base backoff delay, doubled per attempt.
	RetryDelay time.Duration

	// ReportInterval is the progress report granularity in documents.
	ReportInterval int
}

// DefaultConfig returns the build settings used when a field is unset.
func DefaultConfig() Config {
	return Config{
		BatchSize:      16,
		PoolSize:       1,
		MaxRetries:     3,
		RetryDelay:     2 * time.Second,
		ReportInterval: 10,
	}
}

// withDefaults fills unset fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.BatchSize < 1 {
		c.BatchSize = def.BatchSize
	}
	if c.PoolSize < 1 {
		c.PoolSize = def.PoolSize
	}
	if c.MaxRetries < 1 {
		c.MaxRetries = def.MaxRetries
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = def.RetryDelay
	}
	if c.ReportInterval < 1 {
		c.ReportInterval = def.ReportInterval
	}
	return c
}

// Build is the in-memory result of a run, ready for index.Write.
type Build struct {
	Manifest index.Manifest
	Metas    []index.Meta
	Vectors  [][]float32
}

// Indexer embeds a document catalog into a Build.
type Indexer struct {
	embedder ai.Embedder
	cfg      Config
	progress io.Writer
	logger   *slog.Logger
	clock    func() time.Time
}

// Option configures an Indexer.
type Option func(*Indexer) error

// WithProgressWriter sets where progress lines go. Default is stderr;
// nil silences them.
func WithProgressWriter(w io.Writer) Option {
	return func(ix *Indexer) error {
		if w == nil {
			w = io.Discard
		}
		ix.progress = w
		return nil
	}
}

// WithLogger sets a custom logger. If logger is nil, the default
// logger will be used.
func WithLogger(logger *slog.Logger) Option {
	return func(ix *Indexer) error {
		if logger == nil {
			logger = slog.Default()
		}
		ix.logger = logger.With("component", "indexer")
		return nil
	}
}

// WithClock sets the time source for the manifest timestamp. Intended
// for tests.
func WithClock(clock func() time.Time) Option {
	return func(ix *Indexer) error {
		if clock != nil {
			ix.clock = clock
		}
		return nil
	}
}

// New creates an Indexer around the given embedder. Zero Config fields
// take their defaults.
func New(embedder ai.Embedder, cfg Config, opts ...Option) (*Indexer, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	ix := &Indexer{
		embedder: embedder,
		cfg:      cfg.withDefaults(),
		progress: os.Stderr,
		logger:   slog.Default().With("component", "indexer"),
		clock:    time.Now,
	}

	for _, opt := range opts {
		if err := opt(ix); err != nil {
			return nil, err
		}
	}

	return ix, nil
}

// Run embeds every document and assembles the index triple in memory.
// catalogHash is the canonical hash of the source catalog and model is
// the embedding model name; both are recorded in the manifest. Row i of
// the result always corresponds to docs[i].
func (ix *Indexer) Run(ctx context.Context, docs []core.Document, catalogHash, model string) (*Build, error) {
	if len(docs) == 0 {
		return nil, ErrNoDocuments
	}
	if strings.TrimSpace(catalogHash) == "" {
		return nil, ErrCatalogHashRequired
	}
	if strings.TrimSpace(model) == "" {
		return nil, ErrModelRequired
	}

	// Fail on a bad document before any embedding call goes out.
	for i := range docs {
		if err := core.ValidateDocument(&docs[i]); err != nil {
			return nil, fmt.Errorf("catalog document at index %d: %w", i, err)
		}
	}

	ix.logger.Info("building embedding index",
		"documents", len(docs),
		"model", model,
		"batch_size", ix.cfg.BatchSize,
		"pool_size", ix.cfg.PoolSize)
	start := time.Now()

	vectors, err := ix.embedAll(ctx, docs)
	if err != nil {
		return nil, err
	}

	dim := len(vectors[0])
	if dim == 0 {
		return nil, fmt.Errorf("embedder returned empty vectors for model %q", model)
	}
	for i, vec := range vectors {
		if len(vec) != dim {
			return nil, fmt.Errorf("%w: row %d has %d dimensions, row 0 has %d",
				core.ErrDimensionMismatch, i, len(vec), dim)
		}
	}

	for i, vec := range vectors {
		vectors[i] = core.Normalize(vec)
	}

	metas := make([]index.Meta, len(docs))
	for i, doc := range docs {
		metas[i] = index.Meta{
			RowIndex:    i,
			DocID:       doc.DocID,
			Tier:        doc.Tier,
			Source:      doc.Source,
			Title:       doc.Title,
			ContentHash: core.ContentHash(doc.Content),
		}
	}

	manifest := index.Manifest{
		ModelName:          model,
		EmbeddingDim:       dim,
		Normalized:         true,
		SourceManifestHash: catalogHash,
		CreatedAtUTC:       ix.clock().UTC(),
	}

	ix.logger.Info("index build complete",
		"rows", len(metas),
		"dim", dim,
		"elapsed", time.Since(start))

	return &Build{Manifest: manifest, Metas: metas, Vectors: vectors}, nil
}

// embedAll fills a row-aligned vector table using the worker pool.
func (ix *Indexer) embedAll(ctx context.Context, docs []core.Document) ([][]float32, error) {
	pool, err := ants.NewPool(ix.cfg.PoolSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	tracker := NewProgressTracker(ix.progress, len(docs), ix.cfg.ReportInterval)
	tracker.Start()
	defer tracker.Finish()

	vectors := make([][]float32, len(docs))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
		mu.Unlock()
	}
	failed := func() bool {
		mu.Lock()
		defer mu.Unlock()
		return firstErr != nil
	}

	for begin := 0; begin < len(docs) && !failed(); begin += ix.cfg.BatchSize {
		select {
		case <-ctx.Done():
			fail(ctx.Err())
		default:
		}
		if failed() {
			break
		}

		end := min(begin+ix.cfg.BatchSize, len(docs))
		rowOffset := begin

		texts := make([]string, 0, end-begin)
		for _, doc := range docs[begin:end] {
			texts = append(texts, doc.Content)
		}

		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()

			var vecs [][]float32
			err := RetryWithBackoff(runCtx, func() error {
				out, embedErr := ix.embedder.EmbedTexts(runCtx, texts)
				if embedErr != nil {
					return embedErr
				}
				vecs = out
				return nil
			}, ix.cfg.MaxRetries, ix.cfg.RetryDelay)

			if err == nil && len(vecs) != len(texts) {
				err = fmt.Errorf("%w: asked for %d, got %d", ErrVectorCountMismatch, len(texts), len(vecs))
			}
			if err != nil {
				fail(fmt.Errorf("embedding batch at rows %d..%d: %w", rowOffset, end-1, err))
				return
			}

			for j, vec := range vecs {
				vectors[rowOffset+j] = vec
			}
			tracker.Increment(len(vecs))
		})
		if submitErr != nil {
			wg.Done()
			fail(fmt.Errorf("failed to submit batch: %w", submitErr))
			break
		}
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return vectors, nil
}
