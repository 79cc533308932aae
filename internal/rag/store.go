package rag

import (
	"context"
	"fmt"
	"math"
	"sort"
)

// Chunk is one stored corpus fragment.
type Chunk struct {
	ID      int
	Content string
}

// Store holds embedded corpus chunks and retrieves the most similar ones.
type Store interface {
	// Add stores contents with their embedding vectors, replacing nothing.
	Add(ctx context.Context, contents []string, vectors [][]float32) error
	// Search returns the k chunks most similar to the query vector.
	Search(ctx context.Context, vector []float32, k int) ([]Chunk, error)
}

// MemoryStore is an in-process cosine-similarity store, used when no
// database is configured.
type MemoryStore struct {
	chunks  []Chunk
	vectors [][]float32
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Add stores contents with their vectors.
func (s *MemoryStore) Add(_ context.Context, contents []string, vectors [][]float32) error {
	if len(contents) != len(vectors) {
		return fmt.Errorf("got %d contents but %d vectors", len(contents), len(vectors))
	}
	for i, content := range contents {
		s.chunks = append(s.chunks, Chunk{ID: len(s.chunks), Content: content})
		s.vectors = append(s.vectors, vectors[i])
	}
	return nil
}

// Search returns the k most cosine-similar chunks.
func (s *MemoryStore) Search(_ context.Context, vector []float32, k int) ([]Chunk, error) {
	if len(s.chunks) == 0 {
		return nil, fmt.Errorf("store is empty")
	}
	if k <= 0 {
		k = 5
	}

	type scored struct {
		chunk Chunk
		score float64
	}
	ranked := make([]scored, 0, len(s.chunks))
	for i, chunk := range s.chunks {
		ranked = append(ranked, scored{chunk: chunk, score: cosine(vector, s.vectors[i])})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	if k > len(ranked) {
		k = len(ranked)
	}
	results := make([]Chunk, 0, k)
	for _, r := range ranked[:k] {
		results = append(results, r.chunk)
	}
	return results, nil
}

// cosine returns the cosine similarity of two vectors, 0 for mismatched or
// zero-length inputs.
func cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
