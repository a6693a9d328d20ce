package mock

import (
	"context"
	"hash/fnv"
)

// DefaultVectorDim is the dimensionality of generated vectors. Every default
// vector shares it, so cell, concept and query embeddings produced by one
// mock are always comparable.
const DefaultVectorDim = 384

// MockEmbedder is a test double for ai.Embedder.
// By default it derives a deterministic vector from the input text, so
// identical cell or query text always embeds identically across loads.
// Tests that need to steer similarity or force failures inject behavior
// through the function fields.
type MockEmbedder struct {
	// EmbedTextFunc is called by EmbedText if set.
	// If nil, uses default deterministic behavior.
	EmbedTextFunc func(ctx context.Context, text string) ([]float32, error)

	// EmbedTextsFunc is called by EmbedTexts if set.
	// If nil, uses default deterministic behavior.
	EmbedTextsFunc func(ctx context.Context, texts []string) ([][]float32, error)

	callCount int
}

// NewMockEmbedder creates a mock embedder with default deterministic behavior.
// Note: Returns concrete type to allow test assertions via GetMockEmbedder().
func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{}
}

// EmbedText returns the deterministic vector for one text.
func (m *MockEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	m.callCount++

	if m.EmbedTextFunc != nil {
		return m.EmbedTextFunc(ctx, text)
	}

	return textVector(text, DefaultVectorDim), nil
}

// EmbedTexts returns one deterministic vector per input text.
func (m *MockEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	m.callCount++

	if m.EmbedTextsFunc != nil {
		return m.EmbedTextsFunc(ctx, texts)
	}

	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		embeddings[i] = textVector(text, DefaultVectorDim)
	}
	return embeddings, nil
}

// CallCount returns the number of times any method was called. The embedding
// call-count contract (one provider call per batch of cells, two per search)
// is asserted against this.
func (m *MockEmbedder) CallCount() int {
	return m.callCount
}

// Reset clears the call count and any injected behavior.
func (m *MockEmbedder) Reset() {
	m.callCount = 0
	m.EmbedTextFunc = nil
	m.EmbedTextsFunc = nil
}

// textVector derives a vector of the given dimension from the text alone:
// an FNV hash of the text seeds a linear congruential generator, and the
// result is scaled down to unit-ish magnitude. Same text, same vector.
func textVector(text string, dim int) []float32 {
	h := fnv.New32a()
	h.Write([]byte(text))
	seed := h.Sum32()

	vector := make([]float32, dim)
	for i := 0; i < dim; i++ {
		seed = seed*1664525 + 1013904223 // LCG constants
		vector[i] = float32(seed%1000) / 1000.0
	}

	var sumSquares float32
	for _, v := range vector {
		sumSquares += v * v
	}
	if sumSquares > 0 {
		norm := float32(1.0) / sumSquares
		for i := range vector {
			vector[i] *= norm
		}
	}

	return vector
}
