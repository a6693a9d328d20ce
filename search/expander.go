package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/gridsense/ai"
	"github.com/poiesic/gridsense/concepts"
)

// expansionThreshold is the minimum cosine similarity between a raw query
// and a concept embedding for the concept name to join the expanded query.
const expansionThreshold = 0.30

// ConceptVectors caches one precomputed embedding per catalog concept,
// built once at startup from each concept's name, synonyms and description.
// The cache is immutable for the process lifetime.
type ConceptVectors struct {
	names   []string // catalog iteration order
	vectors map[string][]float32
}

// BuildConceptVectors embeds every catalog concept. The provider is called
// once per concept; a failure aborts construction.
func BuildConceptVectors(ctx context.Context, catalog *concepts.Catalog, embedder ai.Embedder) (*ConceptVectors, error) {
	all := catalog.Concepts()
	texts := make([]string, len(all))
	names := make([]string, len(all))
	for i := range all {
		names[i] = all[i].Name
		texts[i] = all[i].EmbeddingText()
	}

	embedded, err := embedder.EmbedTexts(ctx, texts)
	if err != nil {
		slog.Default().Error("error embedding catalog concepts", "concepts", len(all), "err", err)
		return nil, err
	}
	if len(embedded) != len(all) {
		return nil, ErrConceptVectorCountMismatch
	}

	vectors := make(map[string][]float32, len(all))
	for i, name := range names {
		vectors[name] = embedded[i]
	}
	return &ConceptVectors{names: names, vectors: vectors}, nil
}

// Len returns the number of cached concept vectors.
func (cv *ConceptVectors) Len() int {
	return len(cv.names)
}

// Vector returns the cached embedding for a concept name.
func (cv *ConceptVectors) Vector(name string) ([]float32, bool) {
	v, ok := cv.vectors[name]
	return v, ok
}

// expandQuery appends to the query every concept name whose cached embedding
// is similar to the raw query embedding, in catalog order. The returned text
// feeds the semantic signal only; concept and context scoring always use the
// raw query.
func (cv *ConceptVectors) expandQuery(query string, queryVec []float32) (string, []string) {
	var appended []string
	for _, name := range cv.names {
		if cosineSimilarity(queryVec, cv.vectors[name]) > expansionThreshold {
			appended = append(appended, name)
		}
	}
	if len(appended) == 0 {
		return query, nil
	}
	return query + " " + strings.Join(appended, " "), appended
}
