package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/anujpndt/bizdev-agent/internal/config"
	"github.com/anujpndt/bizdev-agent/internal/pipeline"
)

var researchCommand = &cobra.Command{
	Use:   "research",
	Short: "Discover and research companies in a sector and region",
	Long: `Runs the discovery workflow end-to-end: finds companies matching the sector and
location, generates a detailed research report for each one, and appends every
finished record to the output CSV.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runResearchCmd,
}

var (
	researchConfigPath  string
	researchSector      string
	researchLocation    string
	researchTarget      int
	researchQuery       string
	researchOutput      string
	researchAPIKey      string
	researchSearchKey   string
	researchSearchCX    string
	researchDatabaseURL string
	researchUseBrowser  bool
	researchVerbose     bool
)

func init() {
	// Config file flag (processed first)
	researchCommand.Flags().StringVar(&researchConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	researchCommand.Flags().StringVarP(&researchSector, "sector", "s", "", "Industry sector to discover (e.g. \"renewable energy\")")
	researchCommand.Flags().StringVarP(&researchLocation, "location", "l", "", "Geographic region, or \"global\" for worldwide")
	researchCommand.Flags().IntVarP(&researchTarget, "target", "t", 0, "Number of companies to find (0 = unlimited)")
	researchCommand.Flags().StringVar(&researchQuery, "query", "", "Override the derived discovery search query")
	researchCommand.Flags().StringVarP(&researchOutput, "output", "o", "", "CSV output path")
	researchCommand.Flags().BoolVar(&researchUseBrowser, "use-browser", false, "Use headless browser for SPA sites (requires Chrome)")
	researchCommand.Flags().BoolVarP(&researchVerbose, "verbose", "v", false, "Print detailed debug information")

	// API keys can be passed as flags, or read from env vars
	researchCommand.Flags().StringVar(&researchAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	researchCommand.Flags().StringVar(&researchSearchKey, "search-api-key", "", "Google Custom Search API key (optional, defaults to GOOGLE_SEARCH_API_KEY env var)")
	researchCommand.Flags().StringVar(&researchSearchCX, "search-cx", "", "Custom Search engine ID (optional, defaults to GOOGLE_SEARCH_CX env var)")

	// Database URL for run persistence
	researchCommand.Flags().StringVar(&researchDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(researchCommand)
}

func runResearchCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if researchConfigPath != "" {
		loadedCfg, err := config.LoadConfig(researchConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}
		cfg = *loadedCfg
		if researchVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", researchConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("sector") {
		cfg.Sector = researchSector
	}
	if cmd.Flags().Changed("location") {
		cfg.Location = researchLocation
	}
	if cmd.Flags().Changed("target") {
		cfg.TargetCount = researchTarget
	}
	if cmd.Flags().Changed("query") {
		cfg.SearchQuery = researchQuery
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = researchOutput
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = researchAPIKey
	}
	if cmd.Flags().Changed("search-api-key") {
		cfg.SearchAPIKey = researchSearchKey
	}
	if cmd.Flags().Changed("search-cx") {
		cfg.SearchEngineID = researchSearchCX
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = researchDatabaseURL
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = researchUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = researchVerbose
	}

	// Step 3: Apply defaults for unset values
	cfg = cfg.MergeWithDefaults(config.Config{
		Output: "research_results.csv",
	})

	// Step 4: Validate required fields
	if cfg.Sector == "" {
		return fmt.Errorf("--sector is required (via flag or config)")
	}
	if cfg.Location == "" {
		return fmt.Errorf("--location is required (via flag or config)")
	}
	if cfg.TargetCount < 0 {
		return fmt.Errorf("--target must be non-negative")
	}

	// Step 5: Credential handling
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}
	if cfg.SearchAPIKey == "" {
		cfg.SearchAPIKey = os.Getenv("GOOGLE_SEARCH_API_KEY")
	}
	if cfg.SearchEngineID == "" {
		cfg.SearchEngineID = os.Getenv("GOOGLE_SEARCH_CX")
	}
	if cfg.SearchAPIKey == "" || cfg.SearchEngineID == "" {
		return fmt.Errorf("GOOGLE_SEARCH_API_KEY and GOOGLE_SEARCH_CX environment variables (or --search-api-key and --search-cx flags) are required")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	_, err := pipeline.RunDiscovery(ctx, pipeline.RunOptions{
		Sector:         cfg.Sector,
		Location:       cfg.Location,
		TargetCount:    cfg.TargetCount,
		SearchQuery:    cfg.SearchQuery,
		OutputPath:     cfg.Output,
		APIKey:         cfg.APIKey,
		SearchAPIKey:   cfg.SearchAPIKey,
		SearchEngineID: cfg.SearchEngineID,
		DatabaseURL:    cfg.DatabaseURL,
		UseBrowser:     cfg.UseBrowser,
		Verbose:        cfg.Verbose,
	})
	return err
}
