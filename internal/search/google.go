// Package search wraps the Google Custom Search API used by the discovery
// and report agents.
package search

import (
	"context"
	"fmt"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// Result is a single web search hit.
type Result struct {
	Title   string
	Link    string
	Snippet string
}

// Provider performs web searches. The production implementation is Google
// Custom Search; tests use scripted fakes.
type Provider interface {
	Search(ctx context.Context, query string, limit int) ([]Result, error)
}

// Service is the Google Custom Search implementation of Provider.
type Service struct {
	svc *customsearch.Service
	cx  string
}

// NewService creates a Custom Search client for the given API key and engine ID.
func NewService(ctx context.Context, apiKey, cx string) (*Service, error) {
	if apiKey == "" || cx == "" {
		return nil, fmt.Errorf("search API key and engine ID are required")
	}
	svc, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create customsearch service: %w", err)
	}
	return &Service{svc: svc, cx: cx}, nil
}

// Search runs one query and returns up to limit results.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 3
	}
	call := s.svc.Cse.List().Cx(s.cx).Q(query).Num(int64(limit)).Context(ctx)
	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("search failed for %q: %w", query, err)
	}

	results := make([]Result, 0, len(resp.Items))
	for _, item := range resp.Items {
		results = append(results, Result{
			Title:   item.Title,
			Link:    item.Link,
			Snippet: item.Snippet,
		})
	}
	return results, nil
}
