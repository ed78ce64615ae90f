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


package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/rankit/ai"
	"github.com/poiesic/rankit/core"
	"github.com/poiesic/rankit/index"
)

// Searcher scores a query against every vector in a loaded index.
type Searcher struct {
	idx      *index.Index
	embedder ai.Embedder
	logger   *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger for the searcher. If logger is nil,
// the default logger will be used.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger.With("component", "searcher")
		return nil
	}
}

// NewSearcher creates a Searcher over the given index and embedder.
func NewSearcher(idx *index.Index, embedder ai.Embedder, opts ...Option) (*Searcher, error) {
	if idx == nil {
		return nil, ErrIndexRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &Searcher{
		idx:      idx,
		embedder: embedder,
		logger:   slog.Default().With("component", "searcher"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Candidates embeds the query and scores it against every document
// vector in the index. Results are in index row order, one candidate
// per document, with no ranking applied.
func (s *Searcher) Candidates(ctx context.Context, query string) ([]core.Candidate, error) {
	return s.CandidatesWithMonitor(ctx, query, nil)
}

// CandidatesWithMonitor is like Candidates but reports progress to the
// given monitor. A nil monitor is replaced with a no-op implementation.
func (s *Searcher) CandidatesWithMonitor(ctx context.Context, query string, monitor SearchMonitor) ([]core.Candidate, error) {
	if monitor == nil {
		monitor = noopMonitor{}
	}
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	start := time.Now()
	monitor.SearchStarted(query)
	s.logger.Debug("starting search", "query_length", len(query), "rows", s.idx.Rows())

	vec, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("failed to embed query", "error", err)
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	qvec := core.Normalize(vec)
	if len(qvec) != s.idx.Dim() {
		return nil, fmt.Errorf("query embedding: %w: query has %d, index has %d",
			core.ErrDimensionMismatch, len(qvec), s.idx.Dim())
	}
	monitor.QueryEmbedded(len(qvec))

	candidates := make([]core.Candidate, 0, s.idx.Rows())
	for i, row := range s.idx.Vectors {
		sim, err := core.Dot(qvec, row)
		if err != nil {
			return nil, fmt.Errorf("scoring row %d: %w", i, err)
		}
		meta := s.idx.Metas[i]
		candidates = append(candidates, core.Candidate{
			DocID:  meta.DocID,
			Tier:   meta.Tier,
			RawSim: sim,
		})
	}
	monitor.CandidatesBuilt(len(candidates))

	monitor.SearchCompleted(query, len(candidates), time.Since(start))
	s.logger.Debug("search completed", "candidates", len(candidates), "elapsed", time.Since(start))

	return candidates, nil
}
