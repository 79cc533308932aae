package rag

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anujpndt/bizdev-agent/internal/llm"
)

type nopPacer struct{}

func (nopPacer) Wait(context.Context) error { return nil }

// fakeLLM answers every generation with a canned string and records prompts.
type fakeLLM struct {
	response string
	prompts  []string
	err      error
}

func (f *fakeLLM) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func (f *fakeLLM) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func (f *fakeLLM) Close() error { return nil }

// fakeEmbedder maps text deterministically onto a tiny vector space keyed by
// keyword so retrieval tests can steer similarity.
type fakeEmbedder struct{}

func (fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := []float32{0, 0, 1}
	if strings.Contains(text, "solar") {
		vec = []float32{1, 0, 0}
	} else if strings.Contains(text, "wind") {
		vec = []float32{0, 1, 0}
	}
	return vec, nil
}

func (e fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for _, t := range texts {
		v, err := e.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func TestIndexCorpus(t *testing.T) {
	analyzer := NewAnalyzer(&fakeLLM{}, fakeEmbedder{}, NewMemoryStore(), nopPacer{}, false)

	count, err := analyzer.IndexCorpus(context.Background(), []Document{
		{Path: "a.md", Content: "solar panel manufacturing capabilities"},
		{Path: "b.md", Content: "wind turbine servicing"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestIndexCorpus_EmptyCorpus(t *testing.T) {
	analyzer := NewAnalyzer(&fakeLLM{}, fakeEmbedder{}, NewMemoryStore(), nopPacer{}, false)

	_, err := analyzer.IndexCorpus(context.Background(), nil)
	assert.Error(t, err)
}

func TestAnalyze_RetrievesRelevantContext(t *testing.T) {
	client := &fakeLLM{response: "1. Opportunity: co-develop solar farms"}
	analyzer := NewAnalyzer(client, fakeEmbedder{}, NewMemoryStore(), nopPacer{}, false)

	_, err := analyzer.IndexCorpus(context.Background(), []Document{
		{Path: "a.md", Content: "solar panel manufacturing capabilities"},
		{Path: "b.md", Content: "wind turbine servicing"},
	})
	require.NoError(t, err)

	analysis, err := analyzer.Analyze(context.Background(), "COMPANY: Acme solar installers")
	require.NoError(t, err)
	assert.Equal(t, "1. Opportunity: co-develop solar farms", analysis)

	// The prompt carries the retrieved corpus context and the company profile
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "solar panel manufacturing")
	assert.Contains(t, client.prompts[0], "Acme solar installers")
}

func TestAnalyze_GenerationFailure(t *testing.T) {
	client := &fakeLLM{err: fmt.Errorf("model overloaded")}
	analyzer := NewAnalyzer(client, fakeEmbedder{}, NewMemoryStore(), nopPacer{}, false)

	_, err := analyzer.IndexCorpus(context.Background(), []Document{
		{Path: "a.md", Content: "solar capabilities"},
	})
	require.NoError(t, err)

	_, err = analyzer.Analyze(context.Background(), "some company")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestLoadDocuments(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("beta"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("alpha"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignore.pdf"), []byte("binary"), 0o644))

	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "c.txt"), []byte("gamma"), 0o644))

	docs, err := LoadDocuments(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, docs, 3)

	// Sorted by path, non-text files skipped
	assert.Equal(t, "alpha", docs[0].Content)
	assert.Equal(t, "beta", docs[1].Content)
	assert.Equal(t, "gamma", docs[2].Content)
}

func TestLoadDocuments_EmptyDirectory(t *testing.T) {
	_, err := LoadDocuments(context.Background(), t.TempDir())
	assert.Error(t, err)
}
