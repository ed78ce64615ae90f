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


package rankit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/poiesic/rankit/ai"
	"github.com/poiesic/rankit/ai/openai"
	"github.com/poiesic/rankit/catalog"
	"github.com/poiesic/rankit/config"
	"github.com/poiesic/rankit/core"
	"github.com/poiesic/rankit/index"
	"github.com/poiesic/rankit/rank"
	"github.com/poiesic/rankit/runlog"
	"github.com/poiesic/rankit/search"
)

// DefaultReason is recorded in the run log when a run gives none.
const DefaultReason = "manual_test"

var (
	// ErrDataDirRequired is returned when NewEngine is called without a
	// data directory.
	ErrDataDirRequired = errors.New("data directory is required")

	// ErrConfigRequired is returned when NewEngine is called without a
	// config.
	ErrConfigRequired = errors.New("config is required")
)

// Engine ties a loaded index, the catalog it was built from, and an
// embedding backend into the query pipeline.
type Engine struct {
	dataDir     string
	catalogPath string
	logDir      string
	idx         *index.Index
	embedder    ai.Embedder
	cfg         *config.Config
	clock       func() time.Time
	logger      *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	embedder ai.Embedder
	logDir   string
	clock    func() time.Time
}

// WithEmbedder injects an embedder instead of building the production
// one from the config. Intended for tests.
func WithEmbedder(embedder ai.Embedder) EngineOption {
	return func(o *engineOptions) { o.embedder = embedder }
}

// WithLogDir sets the run log directory. Default is "logs".
func WithLogDir(dir string) EngineOption {
	return func(o *engineOptions) { o.logDir = dir }
}

// WithClock sets the time source for run timestamps. Intended for tests.
func WithClock(clock func() time.Time) EngineOption {
	return func(o *engineOptions) { o.clock = clock }
}

// NewEngine loads the index triple from dataDir and resolves the
// catalog it was built from. The configured embedding model is checked
// against the manifest; a difference is logged as a warning since the
// staleness contract only covers the catalog itself.
func NewEngine(dataDir string, cfg *config.Config, opts ...EngineOption) (*Engine, error) {
	if strings.TrimSpace(dataDir) == "" {
		return nil, ErrDataDirRequired
	}
	if cfg == nil {
		return nil, ErrConfigRequired
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := &engineOptions{
		logDir: "logs",
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(options)
	}

	idx, err := index.Load(dataDir)
	if err != nil {
		return nil, err
	}

	catalogPath, err := catalog.ResolvePath(dataDir)
	if err != nil {
		return nil, err
	}

	embedder := options.embedder
	if embedder == nil {
		embedder, err = openai.NewEmbedder(cfg.EmbeddingConfig())
		if err != nil {
			return nil, err
		}
	}

	logger := slog.Default().With("component", "engine")
	if cfg.Embedding.Model != idx.Manifest.ModelName {
		logger.Warn("configured embedding model differs from index",
			"configured", cfg.Embedding.Model,
			"index", idx.Manifest.ModelName)
	}

	return &Engine{
		dataDir:     dataDir,
		catalogPath: catalogPath,
		logDir:      options.logDir,
		idx:         idx,
		embedder:    embedder,
		cfg:         cfg,
		clock:       options.clock,
		logger:      logger,
	}, nil
}

// Manifest returns the loaded index manifest.
func (e *Engine) Manifest() index.Manifest {
	return e.idx.Manifest
}

// CatalogPath returns the resolved catalog file path.
func (e *Engine) CatalogPath() string {
	return e.catalogPath
}

// Verify checks the loaded index against the current catalog and
// returns a descriptive error if the catalog has changed since the
// index was built.
func (e *Engine) Verify() error {
	return e.idx.Manifest.Verify(e.catalogPath)
}

// NewSearcher creates a Searcher over the engine's index and embedder.
func (e *Engine) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(e.idx, e.embedder, opts...)
}

// RunRequest describes one retrieval run.
type RunRequest struct {
	// Query is the free-text query. Required.
	Query string

	// Reason is recorded in the run log; empty defaults to DefaultReason.
	Reason string

	// TopK overrides the configured result count when positive.
	TopK int
}

// RunReport is the outcome of a completed run.
type RunReport struct {
	RunID   string
	Results []core.Result
	LogPath string
}

// Run executes the full pipeline: verify the index against the
// catalog, embed the query, score and weight every document, order,
// truncate, and write the audit log. If any stage fails, no log file
// is written.
func (e *Engine) Run(ctx context.Context, req RunRequest) (*RunReport, error) {
	reason := req.Reason
	if reason == "" {
		reason = DefaultReason
	}
	topK := req.TopK
	if topK <= 0 {
		topK = e.cfg.Retrieval.TopK
	}

	// Staleness aborts before any embedding work or log output.
	if err := e.Verify(); err != nil {
		return nil, err
	}

	searcher, err := e.NewSearcher()
	if err != nil {
		return nil, err
	}
	cands, err := searcher.Candidates(ctx, req.Query)
	if err != nil {
		return nil, err
	}

	policy, err := rank.NewPolicy(e.cfg.Retrieval.TierMultipliers)
	if err != nil {
		return nil, err
	}
	results, err := rank.Apply(cands, policy)
	if err != nil {
		return nil, err
	}
	rank.Order(results)
	top := rank.Top(results, topK)

	writer, err := runlog.NewWriter(e.logDir, runlog.WithClock(e.clock))
	if err != nil {
		return nil, err
	}
	runID := uuid.NewString()
	logPath, err := writer.Write(runlog.Entry{
		RunID:       runID,
		Reason:      reason,
		Seed:        e.cfg.Retrieval.Seed,
		Query:       req.Query,
		TopK:        topK,
		Multipliers: e.cfg.Retrieval.TierMultipliers,
		Context:     e.idx.Manifest,
		Results:     top,
	})
	if err != nil {
		return nil, fmt.Errorf("run succeeded but log write failed: %w", err)
	}

	e.logger.Info("run complete",
		"run_id", runID,
		"candidates", len(cands),
		"results", len(top),
		"log", logPath)

	return &RunReport{RunID: runID, Results: top, LogPath: logPath}, nil
}
