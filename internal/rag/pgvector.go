package rag

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	pgxvector "github.com/pgvector/pgvector-go/pgx"
)

// PGVectorStore persists corpus chunks in PostgreSQL with pgvector, so the
// embedded corpus survives between analysis runs.
type PGVectorStore struct {
	pool *pgxpool.Pool
}

// NewPGVectorStore connects to Postgres, registers pgvector types, and
// prepares the chunk table. The vector extension must be installable by the
// connecting role.
func NewPGVectorStore(ctx context.Context, databaseURL string, dimensions int) (*PGVectorStore, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Register pgvector types on each new connection so scans and inserts
	// can encode vectors.
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvector.RegisterTypes(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := pool.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS vector`); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to enable vector extension: %w", err)
	}
	if _, err := pool.Exec(ctx, fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS corpus_chunks (
			id SERIAL PRIMARY KEY,
			content TEXT NOT NULL,
			embedding vector(%d)
		)`, dimensions)); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create corpus_chunks table: %w", err)
	}

	return &PGVectorStore{pool: pool}, nil
}

// Reset removes previously indexed chunks before a fresh corpus load.
func (s *PGVectorStore) Reset(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `TRUNCATE corpus_chunks`); err != nil {
		return fmt.Errorf("failed to reset corpus_chunks: %w", err)
	}
	return nil
}

// Add inserts contents with their embedding vectors.
func (s *PGVectorStore) Add(ctx context.Context, contents []string, vectors [][]float32) error {
	if len(contents) != len(vectors) {
		return fmt.Errorf("got %d contents but %d vectors", len(contents), len(vectors))
	}
	for i, content := range contents {
		_, err := s.pool.Exec(ctx,
			`INSERT INTO corpus_chunks (content, embedding) VALUES ($1, $2)`,
			content, pgvector.NewVector(vectors[i]),
		)
		if err != nil {
			return fmt.Errorf("failed to insert chunk: %w", err)
		}
	}
	return nil
}

// Search returns the k nearest chunks by cosine distance.
func (s *PGVectorStore) Search(ctx context.Context, vector []float32, k int) ([]Chunk, error) {
	if k <= 0 {
		k = 5
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, content FROM corpus_chunks
		 WHERE embedding IS NOT NULL
		 ORDER BY embedding <=> $1
		 LIMIT $2`,
		pgvector.NewVector(vector), k,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search corpus_chunks: %w", err)
	}
	defer rows.Close()

	var chunks []Chunk
	for rows.Next() {
		var c Chunk
		if err := rows.Scan(&c.ID, &c.Content); err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		chunks = append(chunks, c)
	}
	return chunks, rows.Err()
}

// Close releases the connection pool.
func (s *PGVectorStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}
