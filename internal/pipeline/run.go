// Package pipeline provides the high-level orchestration for discovery and analysis runs.
package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/anujpndt/bizdev-agent/internal/agents"
	"github.com/anujpndt/bizdev-agent/internal/config"
	"github.com/anujpndt/bizdev-agent/internal/db"
	"github.com/anujpndt/bizdev-agent/internal/export"
	"github.com/anujpndt/bizdev-agent/internal/llm"
	"github.com/anujpndt/bizdev-agent/internal/observability"
	"github.com/anujpndt/bizdev-agent/internal/ratelimit"
	"github.com/anujpndt/bizdev-agent/internal/search"
	"github.com/anujpndt/bizdev-agent/internal/types"
	"github.com/anujpndt/bizdev-agent/internal/workflow"
)

// RunOptions holds configuration for a discovery run
type RunOptions struct {
	Sector         string
	Location       string
	TargetCount    int
	SearchQuery    string
	OutputPath     string
	APIKey         string
	SearchAPIKey   string
	SearchEngineID string
	DatabaseURL    string
	UseBrowser     bool
	Verbose        bool
}

// persistSink fans researched records out to the CSV file and, when a
// database is connected, to the discovered_companies table. CSV failures
// are fatal; database failures only warn.
type persistSink struct {
	csv      *export.CSVWriter
	database *db.DB
	runID    uuid.UUID
	saved    int
}

func (s *persistSink) Append(ctx context.Context, record types.CompanyRecord) error {
	if err := s.csv.Append(record); err != nil {
		return err
	}
	s.saved++
	if s.database != nil && s.runID != uuid.Nil {
		if _, err := s.database.SaveCompany(ctx, s.runID, record); err != nil {
			fmt.Printf("Warning: Failed to save company to database: %v\n", err)
		}
	}
	return nil
}

// RunDiscovery orchestrates the full discovery and research workflow
func RunDiscovery(ctx context.Context, opts RunOptions) (*workflow.Summary, error) {
	printer := observability.NewPrinter(os.Stdout)

	runCfg := types.NewRunConfiguration(opts.Sector, opts.Location, opts.TargetCount)
	if opts.SearchQuery != "" {
		runCfg.SearchQuery = opts.SearchQuery
	}
	if err := config.ValidateStruct(runCfg); err != nil {
		return nil, err
	}
	if opts.Verbose {
		printer.PrintRunConfiguration(runCfg)
	}

	// Initialize database connection if configured
	var database *db.DB
	var runID uuid.UUID
	if opts.DatabaseURL != "" {
		var err error
		database, err = db.Connect(ctx, opts.DatabaseURL)
		if err != nil {
			fmt.Printf("Warning: Failed to connect to database: %v\n", err)
			fmt.Printf("Continuing without database persistence...\n")
			database = nil
		} else {
			defer database.Close()
			if err := database.EnsureSchema(ctx); err != nil {
				fmt.Printf("Warning: Failed to prepare database schema: %v\n", err)
				database.Close()
				database = nil
			} else {
				runID, err = database.CreateRun(ctx, runCfg.Sector, runCfg.Location, runCfg.TargetCount)
				if err != nil {
					fmt.Printf("Warning: Failed to create database run: %v\n", err)
				} else if opts.Verbose {
					fmt.Printf("[VERBOSE] Created database run: %s\n", runID)
				}
			}
		}
	}

	client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), opts.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	searcher, err := search.NewService(ctx, opts.SearchAPIKey, opts.SearchEngineID)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize search service: %w", err)
	}

	writer, err := export.NewCSVWriter(opts.OutputPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = writer.Close() }()

	pacer := ratelimit.New(ratelimit.DefaultMinInterval, ratelimit.DefaultMaxPerWindow)
	sink := &persistSink{csv: writer, database: database, runID: runID}

	state := workflow.NewState(runCfg)
	discoveryAgent := agents.NewDiscoveryAgent(client, searcher, state.Registry, pacer, runCfg, opts.Verbose)
	reportAgent := agents.NewReportAgent(client, searcher, pacer, runCfg.Sector, opts.UseBrowser, opts.Verbose)

	machine := workflow.NewMachine(
		workflow.NewDiscoveryController(discoveryAgent, pacer, workflow.DefaultMaxAttempts, opts.Verbose),
		workflow.NewResearchController(reportAgent, pacer, sink, opts.Verbose),
		workflow.DefaultMaxSteps,
		opts.Verbose,
	)

	fmt.Printf("Starting discovery: %s companies in %s (target: %s)\n",
		runCfg.Sector, runCfg.Location, runCfg.TargetDisplay())

	summary, err := machine.Run(ctx, state)
	if err != nil {
		if database != nil && runID != uuid.Nil {
			_ = database.CompleteRun(ctx, runID, "failed")
		}
		return nil, err
	}

	if database != nil && runID != uuid.Nil {
		_ = database.CompleteRun(ctx, runID, "completed")
	}

	printer.PrintRunSummary(summary)
	fmt.Printf("Done! %d companies written to %s\n", sink.saved, opts.OutputPath)
	return &summary, nil
}
