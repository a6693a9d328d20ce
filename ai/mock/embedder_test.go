package mock

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedTextDeterministic(t *testing.T) {
	m := NewMockEmbedder()
	ctx := context.Background()

	first, err := m.EmbedText(ctx, "Total Revenue =SUM(B2:B4)")
	require.NoError(t, err)
	second, err := m.EmbedText(ctx, "Total Revenue =SUM(B2:B4)")
	require.NoError(t, err)

	assert.Len(t, first, DefaultVectorDim)
	assert.Equal(t, first, second)

	other, err := m.EmbedText(ctx, "Operating Expenses")
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestEmbedTextsMatchesSingle(t *testing.T) {
	m := NewMockEmbedder()
	ctx := context.Background()

	batch, err := m.EmbedTexts(ctx, []string{"revenue", "cost"})
	require.NoError(t, err)
	require.Len(t, batch, 2)

	single, err := m.EmbedText(ctx, "revenue")
	require.NoError(t, err)
	assert.Equal(t, single, batch[0])
	assert.Len(t, batch[1], DefaultVectorDim)
}

func TestInjectedBehavior(t *testing.T) {
	m := NewMockEmbedder()
	ctx := context.Background()

	m.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0, 0}, nil
	}
	vec, err := m.EmbedText(ctx, "anything")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0, 0}, vec)

	wantErr := errors.New("backend down")
	m.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, wantErr
	}
	_, err = m.EmbedTexts(ctx, []string{"a"})
	assert.ErrorIs(t, err, wantErr)
}

func TestCallCountAndReset(t *testing.T) {
	m := NewMockEmbedder()
	ctx := context.Background()

	_, err := m.EmbedText(ctx, "a")
	require.NoError(t, err)
	_, err = m.EmbedTexts(ctx, []string{"b", "c"})
	require.NoError(t, err)
	assert.Equal(t, 2, m.CallCount())

	m.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("boom")
	}
	m.Reset()
	assert.Equal(t, 0, m.CallCount())
	assert.Nil(t, m.EmbedTextFunc)

	vec, err := m.EmbedText(ctx, "a")
	require.NoError(t, err)
	assert.Len(t, vec, DefaultVectorDim)
}
