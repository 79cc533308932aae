package agents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anujpndt/bizdev-agent/internal/fetch"
	"github.com/anujpndt/bizdev-agent/internal/llm"
	"github.com/anujpndt/bizdev-agent/internal/prompts"
	"github.com/anujpndt/bizdev-agent/internal/search"
)

const (
	// maxPageExcerpt caps the text taken from a fetched page so the report
	// prompt stays within a bounded context size.
	maxPageExcerpt = 4000
	// browserTimeout bounds headless rendering per page.
	browserTimeout = 45 * time.Second
)

// ReportAgent produces a detailed narrative report for one company by
// running sequential searches, fetching the top pages, and asking the LLM to
// write the report from the collected sources.
type ReportAgent struct {
	llm        llm.Client
	search     search.Provider
	pacer      Pacer
	sector     string
	useBrowser bool
	verbose    bool
}

// NewReportAgent creates a report agent for the run's sector.
func NewReportAgent(client llm.Client, provider search.Provider, pacer Pacer, sector string, useBrowser, verbose bool) *ReportAgent {
	return &ReportAgent{
		llm:        client,
		search:     provider,
		pacer:      pacer,
		sector:     sector,
		useBrowser: useBrowser,
		verbose:    verbose,
	}
}

// Research gathers sources for the company and generates the report.
// Searches run strictly one at a time; each failed query or page fetch is
// skipped rather than failing the whole report.
func (a *ReportAgent) Research(ctx context.Context, companyName string) (string, error) {
	queries := []string{
		fmt.Sprintf("%s %s company overview projects", companyName, a.sector),
		fmt.Sprintf("%s technology capabilities services", companyName),
		fmt.Sprintf("%s leadership team contact information", companyName),
	}

	var sources strings.Builder
	collected := 0

	for _, query := range queries {
		if err := a.pacer.Wait(ctx); err != nil {
			return "", err
		}
		results, err := a.search.Search(ctx, query, 3)
		if err != nil {
			fmt.Printf("Warning: search failed for %q: %v\n", query, err)
			continue
		}

		for i, r := range results {
			fmt.Fprintf(&sources, "SOURCE: %s\n%s\n%s\n", r.Link, r.Title, r.Snippet)
			// Fetch the top hit of each query for depth; snippets carry the rest.
			if i == 0 {
				if excerpt := a.fetchExcerpt(ctx, r.Link); excerpt != "" {
					fmt.Fprintf(&sources, "PAGE EXCERPT:\n%s\n", excerpt)
				}
			}
			sources.WriteString("\n")
			collected++
		}
	}

	if collected == 0 {
		return "", fmt.Errorf("no sources found for %s", companyName)
	}

	template := prompts.MustGet("research.json", "report")
	prompt := prompts.Format(template, map[string]string{
		"CompanyName": companyName,
		"Sector":      a.sector,
		"Sources":     sources.String(),
	})

	if err := a.pacer.Wait(ctx); err != nil {
		return "", err
	}
	report, err := a.llm.GenerateContent(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return "", fmt.Errorf("report generation failed for %s: %w", companyName, err)
	}
	return report, nil
}

// fetchExcerpt retrieves and extracts the main text of a page, falling back
// to headless rendering when the static HTML is a JS shell. Failures return
// an empty excerpt; the snippet alone still feeds the report.
func (a *ReportAgent) fetchExcerpt(ctx context.Context, pageURL string) string {
	result, err := fetch.URL(ctx, pageURL, nil)
	if err != nil {
		if a.verbose {
			fmt.Printf("[VERBOSE] Skipping page %s: %v\n", pageURL, err)
		}
		return ""
	}

	text, err := fetch.ExtractMainText(result.HTML, fetch.CompanyPageSelectors())
	if err != nil {
		return ""
	}

	if a.useBrowser && fetch.ShouldUseBrowser(text) {
		html, berr := fetch.WithBrowser(ctx, pageURL, browserTimeout, a.verbose)
		if berr == nil {
			if rendered, rerr := fetch.ExtractMainText(html, fetch.CompanyPageSelectors()); rerr == nil {
				text = rendered
			}
		}
	}

	if len(text) > maxPageExcerpt {
		text = text[:maxPageExcerpt]
	}
	return text
}
