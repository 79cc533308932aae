package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/anujpndt/bizdev-agent/internal/llm"
	"github.com/anujpndt/bizdev-agent/internal/prompts"
)

// DefaultRetrievalK is the number of corpus chunks retrieved per company.
const DefaultRetrievalK = 5

// Pacer blocks until the next outbound LLM call may proceed.
type Pacer interface {
	Wait(ctx context.Context) error
}

// Analyzer scores partnership potential between the internal capability
// corpus and one external company at a time.
type Analyzer struct {
	llm      llm.Client
	embedder llm.Embedder
	store    Store
	pacer    Pacer
	k        int
	verbose  bool
}

// NewAnalyzer wires the LLM, embedder, and chunk store into an analyzer.
func NewAnalyzer(client llm.Client, embedder llm.Embedder, store Store, pacer Pacer, verbose bool) *Analyzer {
	return &Analyzer{
		llm:      client,
		embedder: embedder,
		store:    store,
		pacer:    pacer,
		k:        DefaultRetrievalK,
		verbose:  verbose,
	}
}

// IndexCorpus splits the documents into chunks, embeds them, and loads the
// store. It must run before any Analyze call on a fresh store.
func (a *Analyzer) IndexCorpus(ctx context.Context, docs []Document) (int, error) {
	var chunks []string
	for _, doc := range docs {
		chunks = append(chunks, Split(doc.Content, DefaultChunkSize, DefaultChunkOverlap)...)
	}
	if len(chunks) == 0 {
		return 0, fmt.Errorf("corpus produced no chunks")
	}
	if a.verbose {
		fmt.Printf("[VERBOSE] Indexing %d chunks from %d documents\n", len(chunks), len(docs))
	}

	if err := a.pacer.Wait(ctx); err != nil {
		return 0, err
	}
	vectors, err := a.embedder.EmbedBatch(ctx, chunks)
	if err != nil {
		return 0, fmt.Errorf("failed to embed corpus: %w", err)
	}

	if err := a.store.Add(ctx, chunks, vectors); err != nil {
		return 0, err
	}
	return len(chunks), nil
}

// Analyze retrieves the most relevant capability chunks for the company
// profile and generates the partnership assessment.
func (a *Analyzer) Analyze(ctx context.Context, companyProfile string) (string, error) {
	if err := a.pacer.Wait(ctx); err != nil {
		return "", err
	}
	queryVec, err := a.embedder.Embed(ctx, companyProfile)
	if err != nil {
		return "", fmt.Errorf("failed to embed company profile: %w", err)
	}

	chunks, err := a.store.Search(ctx, queryVec, a.k)
	if err != nil {
		return "", fmt.Errorf("retrieval failed: %w", err)
	}

	var contextText strings.Builder
	for _, chunk := range chunks {
		contextText.WriteString(chunk.Content)
		contextText.WriteString("\n\n")
	}

	template := prompts.MustGet("analysis.json", "partnership")
	prompt := prompts.Format(template, map[string]string{
		"Context":  contextText.String(),
		"Question": companyProfile,
	})

	if err := a.pacer.Wait(ctx); err != nil {
		return "", err
	}
	analysis, err := a.llm.GenerateContent(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return "", fmt.Errorf("partnership analysis failed: %w", err)
	}
	return analysis, nil
}
