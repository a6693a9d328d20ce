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


package gridsense

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/poiesic/gridsense/ai"
	"github.com/poiesic/gridsense/ai/openai"
	"github.com/poiesic/gridsense/concepts"
	"github.com/poiesic/gridsense/core"
	"github.com/poiesic/gridsense/indexing"
	"github.com/poiesic/gridsense/search"
)

// Engine ties the catalog, indexer, embedding stage and searcher together
// behind one handle. It holds at most one indexed grid at a time; loading a
// new grid atomically replaces the previous snapshot, and queries running
// against the old snapshot finish against the old snapshot.
type Engine struct {
	catalog    *concepts.Catalog
	tagger     *concepts.Tagger
	provider   ai.AIProvider
	indexer    *indexing.Indexer
	embedStage *indexing.EmbeddingStage
	searcher   *search.Searcher

	snapshot atomic.Pointer[indexing.Snapshot]
	loadMu   sync.Mutex
	loadSeq  atomic.Uint64

	logger *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig *ai.Config
	provider ai.AIProvider
	logger   *slog.Logger
}

// WithAIConfig sets the AI provider configuration used when no explicit
// provider is given.
func WithAIConfig(cfg *ai.Config) EngineOption {
	return func(o *engineOptions) {
		o.aiConfig = cfg
	}
}

// WithProvider supplies a pre-built AI provider. The engine takes ownership
// and closes it on Close.
func WithProvider(provider ai.AIProvider) EngineOption {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewEngine builds a ready engine: the concept catalog, the tagger, the
// embedding stage, and the precomputed concept vector cache. The concept
// embeddings are fetched once here and reused for every query.
func NewEngine(ctx context.Context, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		aiConfig: ai.DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	provider := options.provider
	if provider == nil {
		var err error
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			return nil, err
		}
	}

	catalog := concepts.NewCatalog()
	tagger := concepts.NewTagger(catalog)

	indexer, err := indexing.NewIndexer(tagger, indexing.WithIndexerLogger(options.logger))
	if err != nil {
		provider.Close()
		return nil, err
	}

	embedStage, err := indexing.NewEmbeddingStage(
		provider.Embedder(),
		indexing.WithEmbeddingLogger(options.logger),
	)
	if err != nil {
		provider.Close()
		return nil, err
	}

	conceptVecs, err := search.BuildConceptVectors(ctx, catalog, provider.Embedder())
	if err != nil {
		embedStage.Release()
		provider.Close()
		return nil, err
	}

	searcher, err := search.NewSearcher(tagger, conceptVecs, provider.Embedder(),
		search.WithLogger(options.logger))
	if err != nil {
		embedStage.Release()
		provider.Close()
		return nil, err
	}

	return &Engine{
		catalog:    catalog,
		tagger:     tagger,
		provider:   provider,
		indexer:    indexer,
		embedStage: embedStage,
		searcher:   searcher,
		logger:     options.logger,
	}, nil
}

// Load validates, indexes and embeds a grid, then publishes the result as
// the engine's current snapshot. On any failure the previous snapshot stays
// in place untouched. Concurrent Load calls are serialized.
func (e *Engine) Load(ctx context.Context, grid core.Grid) (*indexing.Snapshot, error) {
	e.loadMu.Lock()
	defer e.loadMu.Unlock()

	if err := core.ValidateGrid(grid); err != nil {
		return nil, err
	}

	start := time.Now()
	cells := e.indexer.Index(grid)
	if err := e.embedStage.EmbedCells(ctx, cells); err != nil {
		e.logger.Error("error embedding grid cells", "grid", grid.Name, "err", err)
		return nil, err
	}

	snap := indexing.NewSnapshot(grid, cells, e.loadSeq.Add(1))
	e.snapshot.Store(snap)

	e.logger.Info("grid loaded",
		"grid", grid.Name,
		"snapshot", snap.ID,
		"cells", len(cells),
		"elapsed", time.Since(start))
	return snap, nil
}

// Search runs a query against the current snapshot and returns the formatted
// response envelope. With no loaded grid the response is empty, not an error.
func (e *Engine) Search(ctx context.Context, query string, maxResults int) (*core.SearchResponse, error) {
	scored, err := e.searcher.Search(ctx, e.snapshot.Load(), query, maxResults)
	if err != nil {
		return nil, err
	}
	return search.FormatResponse(query, scored), nil
}

// SearchScored runs a query and returns the raw scored cells without
// formatting.
func (e *Engine) SearchScored(ctx context.Context, query string, maxResults int) ([]core.ScoredCell, error) {
	return e.searcher.Search(ctx, e.snapshot.Load(), query, maxResults)
}

// HasData reports whether a non-empty snapshot is loaded.
func (e *Engine) HasData() bool {
	return !e.snapshot.Load().Empty()
}

// Snapshot returns the current snapshot, or nil when nothing is loaded.
func (e *Engine) Snapshot() *indexing.Snapshot {
	return e.snapshot.Load()
}

// Catalog returns the business concept catalog.
func (e *Engine) Catalog() *concepts.Catalog {
	return e.catalog
}

// Close releases the embedding worker pool and the AI provider.
func (e *Engine) Close() error {
	e.embedStage.Release()
	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
		return err
	}
	return nil
}
