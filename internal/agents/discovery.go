// Package agents implements the search-and-extract and report-generation
// capabilities backed by Google Custom Search and Gemini.
package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anujpndt/bizdev-agent/internal/llm"
	"github.com/anujpndt/bizdev-agent/internal/prompts"
	"github.com/anujpndt/bizdev-agent/internal/registry"
	"github.com/anujpndt/bizdev-agent/internal/schemas"
	"github.com/anujpndt/bizdev-agent/internal/search"
	"github.com/anujpndt/bizdev-agent/internal/types"
)

// Pacer blocks until the next outbound search/LLM call may proceed.
type Pacer interface {
	Wait(ctx context.Context) error
}

// searchResultLimit caps results per discovery search.
const searchResultLimit = 5

// DiscoveryAgent finds one new company per invocation: it searches the web,
// extracts a candidate with the LLM, validates the extraction, and registers
// it. The returned status text is the terminal message of the attempt.
type DiscoveryAgent struct {
	llm      llm.Client
	search   search.Provider
	registry *registry.Registry
	pacer    Pacer
	cfg      types.RunConfiguration
	verbose  bool

	calls int
}

// NewDiscoveryAgent creates a discovery agent registering into reg.
func NewDiscoveryAgent(client llm.Client, provider search.Provider, reg *registry.Registry, pacer Pacer, cfg types.RunConfiguration, verbose bool) *DiscoveryAgent {
	return &DiscoveryAgent{
		llm:      client,
		search:   provider,
		registry: reg,
		pacer:    pacer,
		cfg:      cfg,
		verbose:  verbose,
	}
}

// extraction is the JSON document the LLM returns for one candidate.
type extraction struct {
	Found          bool   `json:"found"`
	Name           string `json:"name"`
	Location       string `json:"location"`
	Website        string `json:"website"`
	Services       string `json:"services"`
	Email          string `json:"email"`
	ContactDetails string `json:"contact_details"`
}

// Discover runs one search-and-extract attempt. The instruction is carried in
// the extraction prompt; the registry's known names keep the LLM from
// re-proposing registered companies.
func (a *DiscoveryAgent) Discover(ctx context.Context, instruction string) (string, error) {
	query := a.nextQuery()
	a.calls++

	if err := a.pacer.Wait(ctx); err != nil {
		return "", err
	}
	results, err := a.search.Search(ctx, query, searchResultLimit)
	if err != nil {
		return "", fmt.Errorf("discovery search failed: %w", err)
	}
	if len(results) == 0 {
		return "no search results for query: " + query, nil
	}

	prompt := a.buildExtractionPrompt(instruction, results)
	if err := a.pacer.Wait(ctx); err != nil {
		return "", err
	}
	raw, err := a.llm.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return "", fmt.Errorf("company extraction failed: %w", err)
	}

	if err := schemas.ValidateCompanyExtraction(raw); err != nil {
		return "", fmt.Errorf("company extraction returned invalid document: %w", err)
	}

	var ex extraction
	if err := json.Unmarshal([]byte(raw), &ex); err != nil {
		return "", fmt.Errorf("failed to parse extraction JSON: %w", err)
	}
	if !ex.Found {
		return "no new company found in search results", nil
	}

	return a.register(ex), nil
}

// register adds the extracted company and translates the outcome into the
// status text the discovery controller inspects.
func (a *DiscoveryAgent) register(ex extraction) string {
	count, err := a.registry.Add(types.CompanyRecord{
		Name:           ex.Name,
		Location:       ex.Location,
		Website:        ex.Website,
		Services:       ex.Services,
		Email:          ex.Email,
		ContactDetails: ex.ContactDetails,
	})

	switch {
	case err == nil:
		fmt.Printf("Registered company %d: %s\n", count, strings.TrimSpace(ex.Name))
		if a.registry.IsComplete() {
			return fmt.Sprintf("SUCCESS: found %d companies (target reached)", count)
		}
		// Must not contain a terminal marker, or discovery would stop
		// after the first registered company.
		return fmt.Sprintf("added company %d: %s", count, strings.TrimSpace(ex.Name))
	case err == registry.ErrEmptyName:
		return "extraction had no company name"
	default:
		// Duplicate and capacity outcomes carry their own phrasing.
		return err.Error()
	}
}

// nextQuery rotates through query variants so repeated attempts surface new
// candidates instead of the same first page of results.
func (a *DiscoveryAgent) nextQuery() string {
	variants := []string{
		a.cfg.SearchQuery,
		fmt.Sprintf("best %s companies %s", a.cfg.Sector, a.cfg.Location),
		fmt.Sprintf("%s startups %s", a.cfg.Sector, a.cfg.Location),
		fmt.Sprintf("list of %s firms %s", a.cfg.Sector, a.cfg.Location),
	}
	return variants[a.calls%len(variants)]
}

func (a *DiscoveryAgent) buildExtractionPrompt(instruction string, results []search.Result) string {
	known := "none yet"
	if names := a.registry.Names(); len(names) > 0 {
		known = strings.Join(names, "\n")
	}

	var digest strings.Builder
	for i, r := range results {
		fmt.Fprintf(&digest, "[%d] %s\n%s\n%s\n\n", i+1, r.Title, r.Link, r.Snippet)
	}

	template := prompts.MustGet("discovery.json", "extract_company")
	prompt := prompts.Format(template, map[string]string{
		"Sector":         a.cfg.Sector,
		"Location":       a.cfg.Location,
		"KnownCompanies": known,
		"SearchResults":  digest.String(),
	})
	// The controller's per-attempt instruction rides along as extra guidance.
	return instruction + "\n\n" + prompt
}
