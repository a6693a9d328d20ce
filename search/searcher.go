package search

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/poiesic/gridsense/ai"
	"github.com/poiesic/gridsense/concepts"
	"github.com/poiesic/gridsense/core"
	"github.com/poiesic/gridsense/indexing"
)

// Fusion weights and thresholds. The weights sum to 1; the floor filters
// embedding noise from the result list.
const (
	semanticWeight = 0.4
	conceptWeight  = 0.4
	contextWeight  = 0.2
	relevanceFloor = 0.10
)

// Searcher ranks indexed cells against free-text queries by fusing semantic,
// concept and contextual signals.
type Searcher struct {
	tagger      *concepts.Tagger
	conceptVecs *ConceptVectors
	embedder    ai.Embedder
	logger      *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(
	tagger *concepts.Tagger,
	conceptVecs *ConceptVectors,
	embedder ai.Embedder,
	opts ...Option,
) (*Searcher, error) {
	if tagger == nil {
		return nil, ErrTaggerRequired
	}
	if conceptVecs == nil {
		return nil, ErrConceptVectorsRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &Searcher{
		tagger:      tagger,
		conceptVecs: conceptVecs,
		embedder:    embedder,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search scores every cell of the snapshot against the query and returns the
// top results in descending score order. Ties preserve indexer emission
// order. maxResults bounds the result count; zero or negative disables the
// bound. An empty or nil snapshot yields an empty list, not an error.
func (s *Searcher) Search(ctx context.Context, snap *indexing.Snapshot, query string, maxResults int) ([]core.ScoredCell, error) {
	return s.SearchWithMonitor(ctx, snap, query, maxResults, nil)
}

// SearchWithMonitor searches with per-stage monitoring callbacks.
func (s *Searcher) SearchWithMonitor(ctx context.Context, snap *indexing.Snapshot, query string, maxResults int, monitor SearchMonitor) ([]core.ScoredCell, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	monitor.Start(query)

	// Keep the monitor contract symmetric even with nothing to score:
	// every Start is followed by AfterScoring and Finish.
	if snap.Empty() {
		monitor.AfterScoring(0)
		monitor.Finish(nil)
		return []core.ScoredCell{}, nil
	}

	// 1. Embed the raw query and expand it against the concept cache.
	queryVec, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, err
	}
	expanded, appended := s.conceptVecs.expandQuery(query, queryVec)
	monitor.AfterExpansion(expanded, appended)

	// 2. Embed the expanded query once; it drives the semantic signal only.
	expandedVec, err := s.embedder.EmbedText(ctx, expanded)
	if err != nil {
		s.logger.Error("error generating embedding for expanded query", "err", err)
		return nil, err
	}

	// 3. Raw-query derivations shared across all cells.
	queryLower := strings.ToLower(query)
	queryWords := concepts.WordSet(query)
	queryTags := toSet(s.tagger.Identify(query))

	// 4. Score every cell; keep those above the relevance floor.
	results := make([]core.ScoredCell, 0, len(snap.Cells))
	for _, cell := range snap.Cells {
		semantic := cosineSimilarity(expandedVec, cell.Embedding)
		concept := conceptScore(queryLower, queryWords, queryTags, cell.Concepts)
		contextual := contextScore(query, cell)
		final := semanticWeight*semantic + conceptWeight*concept + contextWeight*contextual

		if final > relevanceFloor {
			results = append(results, core.ScoredCell{
				Cell:     cell,
				Semantic: semantic,
				Concept:  concept,
				Context:  contextual,
				Final:    final,
			})
		}
	}
	monitor.AfterScoring(len(results))

	// Stable sort keeps emission order for equal scores.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Final > results[j].Final
	})
	if maxResults > 0 && len(results) > maxResults {
		results = results[:maxResults]
	}
	monitor.Finish(results)

	s.logger.Debug("search complete", "query", query, "snapshot", snap.ID, "results", len(results))
	return results, nil
}

// conceptScore measures how well the cell's tags match the raw query.
// Rules, best match wins:
//   - 1.0 a tag appears verbatim inside the query
//   - 0.8 tagging the query itself yields a tag the cell carries
//   - 0.7 any single word of a tag appears as a whole word in the query
//
// A cell with no tags scores 0.
func conceptScore(queryLower string, queryWords, queryTags map[string]bool, cellTags []string) float64 {
	if len(cellTags) == 0 {
		return 0
	}

	best := 0.0
	for _, tag := range cellTags {
		tagLower := strings.ToLower(tag)
		if strings.Contains(queryLower, tagLower) {
			best = max(best, 1.0)
			continue
		}
		for _, word := range strings.Fields(tagLower) {
			if queryWords[word] {
				best = max(best, 0.7)
				break
			}
		}
	}

	for _, tag := range cellTags {
		if queryTags[tag] {
			best = max(best, 0.8)
			break
		}
	}

	return best
}

// contextScore measures word overlap between the query and the cell's
// header (weight 0.3) and sheet name (weight 0.2), each scaled by the
// fraction of query words covered. The sum is capped at 1.
func contextScore(query string, cell *core.Cell) float64 {
	queryWords := splitWords(query)
	if len(queryWords) == 0 {
		return 0
	}

	relevance := 0.0
	if cell.HeaderContext != "" {
		if common := commonWords(cell.HeaderContext, query); len(common) > 0 {
			relevance += 0.3 * float64(len(common)) / float64(len(queryWords))
		}
	}
	if common := commonWords(cell.Sheet, query); len(common) > 0 {
		relevance += 0.2 * float64(len(common)) / float64(len(queryWords))
	}

	return min(relevance, 1.0)
}
