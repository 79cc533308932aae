package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/anujpndt/bizdev-agent/internal/config"
	"github.com/anujpndt/bizdev-agent/internal/pipeline"
)

var analyzeCommand = &cobra.Command{
	Use:   "analyze",
	Short: "Score researched companies for partnership fit",
	Long: `Reads a research CSV produced by the research command, retrieves the most
relevant passages from a reference corpus for each company, and appends a
strategic partnership analysis column to the output CSV.`,
	RunE: runAnalyzeCmd,
}

var (
	analyzeConfigPath  string
	analyzeInput       string
	analyzeOutput      string
	analyzeCorpusDir   string
	analyzeAPIKey      string
	analyzeDatabaseURL string
	analyzeVerbose     bool
)

func init() {
	analyzeCommand.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	analyzeCommand.Flags().StringVarP(&analyzeInput, "input", "i", "", "Research CSV to analyze")
	analyzeCommand.Flags().StringVarP(&analyzeOutput, "output", "o", "", "CSV output path")
	analyzeCommand.Flags().StringVarP(&analyzeCorpusDir, "corpus", "c", "", "Directory of partnership corpus documents (.txt and .md)")
	analyzeCommand.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print detailed debug information")

	analyzeCommand.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	analyzeCommand.Flags().StringVar(&analyzeDatabaseURL, "db-url", "", "PostgreSQL connection URL for the pgvector index (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(analyzeCommand)
}

func runAnalyzeCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	var cfg config.Config
	if analyzeConfigPath != "" {
		loadedCfg, err := config.LoadConfig(analyzeConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}
		cfg = *loadedCfg
	}

	if cmd.Flags().Changed("corpus") {
		cfg.CorpusDir = analyzeCorpusDir
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = analyzeAPIKey
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = analyzeDatabaseURL
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = analyzeVerbose
	}

	if analyzeInput == "" {
		return fmt.Errorf("--input is required")
	}
	if analyzeOutput == "" {
		analyzeOutput = "analyzed_results.csv"
	}
	if cfg.CorpusDir == "" {
		return fmt.Errorf("--corpus is required (via flag or config)")
	}

	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	_, err := pipeline.RunAnalysis(ctx, pipeline.AnalyzeOptions{
		InputPath:   analyzeInput,
		OutputPath:  analyzeOutput,
		CorpusDir:   cfg.CorpusDir,
		APIKey:      cfg.APIKey,
		DatabaseURL: cfg.DatabaseURL,
		Verbose:     cfg.Verbose,
	})
	return err
}
