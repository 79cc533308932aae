package pipeline

import (
	"context"
	"fmt"

	"github.com/anujpndt/bizdev-agent/internal/llm"
	"github.com/anujpndt/bizdev-agent/internal/rag"
	"github.com/anujpndt/bizdev-agent/internal/ratelimit"
)

// Gemini text-embedding-004 vectors
const embeddingDimensions = 768

// AnalyzeOptions holds configuration for a partnership analysis batch
type AnalyzeOptions struct {
	InputPath   string
	OutputPath  string
	CorpusDir   string
	APIKey      string
	DatabaseURL string
	Verbose     bool
}

// RunAnalysis indexes the partnership corpus and scores every company in the
// research CSV against it. With a database URL the chunk index is stored in
// pgvector, otherwise it lives in memory for the duration of the run.
func RunAnalysis(ctx context.Context, opts AnalyzeOptions) (*rag.BatchResult, error) {
	client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), opts.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	docs, err := rag.LoadDocuments(ctx, opts.CorpusDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no corpus documents found in %s", opts.CorpusDir)
	}
	fmt.Printf("Loaded %d corpus documents from %s\n", len(docs), opts.CorpusDir)

	var store rag.Store
	if opts.DatabaseURL != "" {
		pgStore, err := rag.NewPGVectorStore(ctx, opts.DatabaseURL, embeddingDimensions)
		if err != nil {
			fmt.Printf("Warning: Failed to open pgvector store: %v\n", err)
			fmt.Printf("Falling back to in-memory index...\n")
			store = rag.NewMemoryStore()
		} else {
			defer pgStore.Close()
			// Stale chunks from a previous corpus would poison retrieval.
			if err := pgStore.Reset(ctx); err != nil {
				return nil, fmt.Errorf("failed to reset pgvector store: %w", err)
			}
			store = pgStore
			if opts.Verbose {
				fmt.Printf("[VERBOSE] Using pgvector chunk index\n")
			}
		}
	} else {
		store = rag.NewMemoryStore()
	}

	pacer := ratelimit.New(ratelimit.DefaultMinInterval, ratelimit.DefaultMaxPerWindow)
	analyzer := rag.NewAnalyzer(client, client, store, pacer, opts.Verbose)

	chunks, err := analyzer.IndexCorpus(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("failed to index corpus: %w", err)
	}
	fmt.Printf("Indexed %d corpus chunks\n", chunks)

	return rag.ProcessCSV(ctx, analyzer, rag.BatchOptions{
		InputPath:  opts.InputPath,
		OutputPath: opts.OutputPath,
		Verbose:    opts.Verbose,
	})
}
