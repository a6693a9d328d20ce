package indexing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/gridsense/ai/mock"
	"github.com/poiesic/gridsense/core"
)

func makeCells(n int) []*core.Cell {
	cells := make([]*core.Cell, n)
	for i := range cells {
		cells[i] = &core.Cell{
			Sheet: "Data",
			Row:   i,
			Value: core.NumberValue(float64(i)),
		}
	}
	return cells
}

func TestNewEmbeddingStageRequiresEmbedder(t *testing.T) {
	_, err := NewEmbeddingStage(nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)
}

func TestEmbedCells(t *testing.T) {
	stage, err := NewEmbeddingStage(mock.NewMockEmbedder(), WithBatchSize(4))
	require.NoError(t, err)
	defer stage.Release()

	cells := makeCells(10)
	require.NoError(t, stage.EmbedCells(context.Background(), cells))

	for i, cell := range cells {
		assert.NotEmpty(t, cell.Embedding, "cell %d", i)
	}
}

func TestEmbedCellsEmpty(t *testing.T) {
	stage, err := NewEmbeddingStage(mock.NewMockEmbedder())
	require.NoError(t, err)
	defer stage.Release()

	assert.NoError(t, stage.EmbedCells(context.Background(), nil))
}

func TestEmbedCellsDeterministic(t *testing.T) {
	stage, err := NewEmbeddingStage(mock.NewMockEmbedder())
	require.NoError(t, err)
	defer stage.Release()

	a := makeCells(3)
	b := makeCells(3)
	require.NoError(t, stage.EmbedCells(context.Background(), a))
	require.NoError(t, stage.EmbedCells(context.Background(), b))

	for i := range a {
		assert.Equal(t, a[i].Embedding, b[i].Embedding, "cell %d", i)
	}
}

func TestEmbedCellsBatchCallCount(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	var texts int
	embedder.EmbedTextsFunc = func(_ context.Context, batch []string) ([][]float32, error) {
		texts += len(batch)
		vecs := make([][]float32, len(batch))
		for i := range vecs {
			vecs[i] = []float32{1}
		}
		return vecs, nil
	}

	// Pool size 1 keeps the counters race-free.
	stage, err := NewEmbeddingStage(embedder, WithBatchSize(4), WithPoolSize(1))
	require.NoError(t, err)
	defer stage.Release()

	require.NoError(t, stage.EmbedCells(context.Background(), makeCells(10)))

	// 10 cells at batch size 4: exactly three provider calls, each cell
	// embedded exactly once.
	assert.Equal(t, 3, embedder.CallCount())
	assert.Equal(t, 10, texts)
}

func TestEmbedCellsErrorPropagates(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	wantErr := errors.New("backend unavailable")
	embedder.EmbedTextsFunc = func(_ context.Context, _ []string) ([][]float32, error) {
		return nil, wantErr
	}

	stage, err := NewEmbeddingStage(embedder, WithBatchSize(2))
	require.NoError(t, err)
	defer stage.Release()

	err = stage.EmbedCells(context.Background(), makeCells(5))
	assert.ErrorIs(t, err, wantErr)
}

func TestEmbedCellsCountMismatch(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(_ context.Context, texts []string) ([][]float32, error) {
		return make([][]float32, len(texts)-1), nil
	}

	stage, err := NewEmbeddingStage(embedder)
	require.NoError(t, err)
	defer stage.Release()

	err = stage.EmbedCells(context.Background(), makeCells(3))
	assert.ErrorIs(t, err, ErrEmbeddingCountMismatch)
}
