package indexing

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/gridsense/ai"
	"github.com/poiesic/gridsense/core"
)

const defaultBatchSize = 32

// EmbeddingStage computes cell embeddings in concurrent batches.
// Embedding failures are fatal to the load: no cell set with partially
// computed embeddings is ever published.
type EmbeddingStage struct {
	embedder  ai.Embedder
	pool      *ants.Pool
	batchSize int
	logger    *slog.Logger
}

// EmbeddingOption configures an EmbeddingStage.
type EmbeddingOption func(*EmbeddingStage) error

// WithPoolSize sets the worker pool size for concurrent batch embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) EmbeddingOption {
	return func(s *EmbeddingStage) error {
		if size < 1 {
			size = 1
		}
		if s.pool != nil {
			s.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		s.pool = pool
		return nil
	}
}

// WithBatchSize sets the number of cells embedded per provider call.
// Default is 32.
func WithBatchSize(size int) EmbeddingOption {
	return func(s *EmbeddingStage) error {
		if size < 1 {
			size = 1
		}
		s.batchSize = size
		return nil
	}
}

// WithEmbeddingLogger sets a custom logger.
// Default is slog.Default().
func WithEmbeddingLogger(logger *slog.Logger) EmbeddingOption {
	return func(s *EmbeddingStage) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewEmbeddingStage creates an embedding stage backed by the given embedder.
func NewEmbeddingStage(embedder ai.Embedder, opts ...EmbeddingOption) (*EmbeddingStage, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	s := &EmbeddingStage{
		embedder:  embedder,
		pool:      pool,
		batchSize: defaultBatchSize,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(s); optErr != nil {
			s.Release()
			return nil, optErr
		}
	}

	return s, nil
}

// EmbedCells computes one embedding per cell from its rich-text
// representation. Cells are mutated in place; on error no guarantee is made
// about which cells got vectors, and the caller must discard the whole set.
func (s *EmbeddingStage) EmbedCells(ctx context.Context, cells []*core.Cell) error {
	if len(cells) == 0 {
		return nil
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	recordErr := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	for start := 0; start < len(cells); start += s.batchSize {
		end := start + s.batchSize
		if end > len(cells) {
			end = len(cells)
		}
		batch := cells[start:end]

		wg.Add(1)
		submitErr := s.pool.Submit(func() {
			defer wg.Done()

			texts := make([]string, len(batch))
			for i, cell := range batch {
				texts[i] = cell.RichText()
			}

			vectors, err := s.embedder.EmbedTexts(ctx, texts)
			if err != nil {
				recordErr(err)
				return
			}
			if len(vectors) != len(batch) {
				recordErr(ErrEmbeddingCountMismatch)
				return
			}
			for i, cell := range batch {
				cell.Embedding = vectors[i]
			}
		})
		if submitErr != nil {
			wg.Done()
			recordErr(submitErr)
			break
		}
	}

	wg.Wait()

	if firstErr != nil {
		s.logger.Error("cell embedding failed", "cells", len(cells), "err", firstErr)
		return firstErr
	}
	s.logger.Debug("embedded cells", "cells", len(cells), "batchSize", s.batchSize)
	return nil
}

// Release releases the worker pool.
// The stage should not be used after calling Release.
func (s *EmbeddingStage) Release() {
	if s.pool != nil {
		s.pool.Release()
	}
}
