package rag

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SearchRanksBySimilarity(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Add(context.Background(),
		[]string{"solar manufacturing", "wind turbines", "offshore drilling"},
		[][]float32{
			{1, 0, 0},
			{0, 1, 0},
			{0, 0, 1},
		},
	))

	results, err := store.Search(context.Background(), []float32{0.9, 0.1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "solar manufacturing", results[0].Content)
	assert.Equal(t, "wind turbines", results[1].Content)
}

func TestMemoryStore_SearchEmptyStore(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Search(context.Background(), []float32{1, 0}, 3)
	assert.Error(t, err)
}

func TestMemoryStore_KLargerThanStore(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Add(context.Background(),
		[]string{"only chunk"},
		[][]float32{{1, 0}},
	))

	results, err := store.Search(context.Background(), []float32{1, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestMemoryStore_AddMismatchedLengths(t *testing.T) {
	store := NewMemoryStore()
	err := store.Add(context.Background(), []string{"a", "b"}, [][]float32{{1}})
	assert.Error(t, err)
}

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, cosine([]float32{1, 2, 3}, []float32{1, 2, 3}), 1e-9)
	assert.InDelta(t, 0.0, cosine([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, cosine([]float32{1, 0}, []float32{-1, 0}), 1e-9)

	// Degenerate inputs score zero instead of dividing by zero
	assert.Equal(t, 0.0, cosine(nil, nil))
	assert.Equal(t, 0.0, cosine([]float32{1, 2}, []float32{1}))
	assert.Equal(t, 0.0, cosine([]float32{0, 0}, []float32{1, 1}))
}
